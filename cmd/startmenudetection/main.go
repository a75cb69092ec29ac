package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/startmenudetection/startmenudetection/internal/config"
	"github.com/startmenudetection/startmenudetection/internal/flagstore"
	"github.com/startmenudetection/startmenudetection/internal/monitor"
	"github.com/startmenudetection/startmenudetection/pkg/input"
	"github.com/startmenudetection/startmenudetection/pkg/prober"
	"github.com/startmenudetection/startmenudetection/pkg/visibility"
)

const banner = "Press the 'Any' key to quit."

func main() {
	os.Exit(run(os.Stdout, os.Stderr))
}

func run(stdout, stderr io.Writer) int {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		printError(stderr, err)
		return 1
	}
	log.Println(cfg.String())

	// The prober stays on this goroutine: COM objects belong to the
	// apartment of the thread that created them.
	p, err := prober.New(cfg)
	if err != nil {
		printError(stderr, err)
		return 1
	}
	defer p.Close()

	watcher, err := input.New()
	if err != nil {
		printError(stderr, err)
		return 1
	}
	defer watcher.Close()

	writer := flagstore.NewWriter(flagstore.Open(cfg), nil)
	svc := monitor.NewService(cfg, p, watcher, writer, stdout)

	fmt.Fprintln(stdout, banner)

	if err := svc.Run(context.Background()); err != nil {
		printError(stderr, err)
		return 1
	}

	return 0
}

// printError writes the message and, for platform failures, the status code.
func printError(w io.Writer, err error) {
	if osErr, ok := visibility.AsOSError(err); ok {
		fmt.Fprintf(w, "!%v (code %d)\n", err, osErr.Code())
		return
	}
	fmt.Fprintf(w, "!%v\n", err)
}
