// Command mailtmpl renders, inspects and reports on email template documents.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-mailtmpl/pkg/prompt"
)

type app struct {
	cfg    config
	logger *zap.Logger
	driver prompt.Driver
	stdout io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cmd := newRootCmd(&app{cfg: cfg, stdout: os.Stdout})
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, prompt.ErrAborted) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "mailtmpl",
		Short:         "Render and document email templates",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.logger != nil {
				return nil
			}
			logger, err := newLogger(a.cfg.LogLevel)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(a.stdout)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&a.cfg.TemplateDir, "templates", a.cfg.TemplateDir, "directory of template documents")
	flags.IntVar(&a.cfg.CacheSize, "cache-size", a.cfg.CacheSize, "compiled program cache size (0 disables)")

	root.AddCommand(
		newRenderCmd(a),
		newInspectCmd(a),
		newReportCmd(a),
		newVarsCmd(a),
	)
	return root
}
