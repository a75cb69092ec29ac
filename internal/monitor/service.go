package monitor

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/startmenudetection/startmenudetection/internal/config"
	"github.com/startmenudetection/startmenudetection/pkg/input"
	"github.com/startmenudetection/startmenudetection/pkg/visibility"
)

const (
	LabelStartScreen = "Currently showing the start screen"
	LabelDesktop     = "Currently showing normal desktop or app."
)

// FlagWriter persists a reported state. It must not fail the caller.
type FlagWriter interface {
	Write(shown bool)
}

// Service polls the prober and reports every change of launcher visibility.
type Service struct {
	config  *config.Config
	prober  visibility.Prober
	input   input.Watcher
	writer  FlagWriter
	out     io.Writer
	reports int
}

func NewService(cfg *config.Config, prober visibility.Prober, watcher input.Watcher, writer FlagWriter, out io.Writer) *Service {
	return &Service{
		config: cfg,
		prober: prober,
		input:  watcher,
		writer: writer,
		out:    out,
	}
}

// Run polls until a key is pressed, in which case it returns nil, or until
// the prober fails. The first sample is always reported; later samples only
// when they differ from the previous one.
func (s *Service) Run(ctx context.Context) error {
	log.Printf("Polling %s launcher visibility every %v", s.prober.Backend(), s.config.Monitor.PollInterval)

	firstIteration := true
	wasShown := false

	for {
		if s.input.Pending() {
			return nil
		}

		isShown, err := s.prober.IsLauncherVisible()
		if err != nil {
			return errors.Wrap(err, "failed to query launcher visibility")
		}

		if firstIteration || isShown != wasShown {
			s.report(isShown)
		}
		wasShown = isShown
		firstIteration = false

		timer := time.NewTimer(s.config.Monitor.PollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Reports returns how many transitions have been reported.
func (s *Service) Reports() int {
	return s.reports
}

func (s *Service) report(shown bool) {
	fmt.Fprintf(s.out, "%d: %s\n", s.reports, Label(shown))
	s.writer.Write(shown)
	s.reports++
}

// Label returns the console text for a visibility state.
func Label(shown bool) string {
	if shown {
		return LabelStartScreen
	}
	return LabelDesktop
}
