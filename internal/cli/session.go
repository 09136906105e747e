package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/parley/internal/presentation/tui"
	"github.com/aretw0/parley/pkg/console"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/observability"
	"github.com/aretw0/parley/pkg/session"
)

// RunSession plays one dialogue on the console until it ends or the user quits.
func RunSession(ctx context.Context, opts RunOptions) error {
	opts = withStdio(opts)
	logger, err := createLogger(opts.Debug, opts.LogFormat)
	if err != nil {
		return err
	}

	l, err := createPlay(opts, logger, debugHooks(opts.Debug, logger))
	if err != nil {
		return err
	}

	consoleOpts := []console.Option{console.WithLogger(logger)}
	if !opts.Plain && isTerminal(opts.In, opts.Out) {
		tui.PrintBanner(opts.Out, l.play.Title)
		render, err := tui.NewRenderer(terminalWidth(opts.Out))
		if err != nil {
			logger.Warn("markdown renderer unavailable", "err", err)
		} else {
			consoleOpts = append(consoleOpts, console.WithRenderer(render))
		}
		consoleOpts = append(consoleOpts, console.WithUnavailableStyle(tui.Unavailable(opts.Out)))
	} else if l.play.Title != "" {
		fmt.Fprintf(opts.Out, "%s\n\n", l.play.Title)
	}

	completed, err := console.New(opts.In, opts.Out, consoleOpts...).Run(ctx, l.play.Runner)
	if err != nil {
		if ctx.Err() != nil {
			return nil // Exit 0 for interruptions
		}
		return err
	}

	logger.Debug("session finished", "completed", completed, "path", len(l.play.Runner.Visited()))
	if completed {
		printSystemMessage(opts.Out, "Dialogue complete.")
		if l.summary != nil {
			fmt.Fprintln(opts.Out, l.summary())
		}
	}
	return nil
}

// debugHooks logs runner events when debugging.
func debugHooks(debug bool, logger *slog.Logger) session.HookFunc {
	if !debug {
		return nil
	}
	return func(label func(domain.NodeID) string) domain.LifecycleHooks {
		return observability.LogHooks(logger, label)
	}
}

func withStdio(opts RunOptions) RunOptions {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return opts
}
