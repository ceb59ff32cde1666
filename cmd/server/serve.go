package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AlixSahil/Employee-onboarding-updated/internal/app/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Apply pending migrations and serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.setup()
			if err != nil {
				return fail(cmd, err)
			}
			defer func() { _ = logger.Sync() }()

			if cfg.SentryDSN != "" {
				if err := sentry.Init(sentry.ClientOptions{
					Dsn:              cfg.SentryDSN,
					Environment:      cfg.Environment,
					AttachStacktrace: true,
				}); err != nil {
					logger.Warn("sentry init failed", zap.Error(err))
				} else {
					defer sentry.Flush(2 * time.Second)
				}
			}

			ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, err := server.New(ctx, cfg, logger)
			if err != nil {
				logger.Error("startup failed", zap.Error(err))
				return fail(cmd, err)
			}
			defer app.Close()

			if err := app.Run(ctx); err != nil {
				logger.Error("server stopped with error", zap.Error(err))
				return fail(cmd, err)
			}
			logger.Info("server stopped")
			return nil
		},
	}
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
