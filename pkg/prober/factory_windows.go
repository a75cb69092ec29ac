//go:build windows

package prober

import (
	"github.com/startmenudetection/startmenudetection/internal/config"
	"github.com/startmenudetection/startmenudetection/pkg/integrations/appvisibility"
	"github.com/startmenudetection/startmenudetection/pkg/visibility"
)

// New acquires the AppVisibility COM service. The returned prober must be
// used and closed on the calling goroutine.
func New(cfg *config.Config) (visibility.Prober, error) {
	p, err := appvisibility.Open()
	if err != nil {
		return nil, err
	}
	return p, nil
}
