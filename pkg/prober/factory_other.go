//go:build !windows

package prober

import (
	"github.com/startmenudetection/startmenudetection/internal/config"
	"github.com/startmenudetection/startmenudetection/pkg/integrations/x11"
	"github.com/startmenudetection/startmenudetection/pkg/visibility"
)

// New connects to the X server and watches for the configured launchers.
func New(cfg *config.Config) (visibility.Prober, error) {
	p, err := x11.NewProber(cfg.Prober.LauncherClasses)
	if err != nil {
		return nil, err
	}
	return p, nil
}
