// Command htmlfmt re-indents HTML documents in place.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/terawatthour/htmlfmt/internal/config"
	"github.com/terawatthour/htmlfmt/internal/logs"
	"github.com/terawatthour/htmlfmt/internal/walker"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if !errors.Is(err, walker.ErrUnformatted) {
			fmt.Fprintf(os.Stderr, "htmlfmt: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Parse(args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	logger := logs.New(logs.Options{
		Writer:  os.Stderr,
		Level:   cfg.LogLevel,
		Journal: cfg.LogJournal,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return walker.New(cfg, logger, os.Stdout).Run(ctx)
}
