package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tipee-sa/markup/internal/server"
)

func serveCmd() *cobra.Command {
	var (
		flags   optionFlags
		addr    string
		maxBody int64
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve POST /render over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd.Flags())
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			logger.Debug("resolved options", "closingSingleTag", opts.ClosingSingleTag, "quoteStyle", opts.QuoteStyle,
				"quoteWhenRequired", opts.QuoteWhenRequired, "noReplaceQuote", opts.NoReplaceQuote)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(server.Config{
				Addr:         addr,
				Options:      opts,
				MaxBodyBytes: maxBody,
				Logger:       logger,
			}).ListenAndServe(ctx)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().Int64Var(&maxBody, "max-body", 1<<20, "maximum tree size in bytes")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}
