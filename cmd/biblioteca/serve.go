package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/AntonStoeckl/biblioteca/eventstore/postgresengine"
	"github.com/AntonStoeckl/biblioteca/library/api"
	"github.com/AntonStoeckl/biblioteca/library/shell/auth"
	"github.com/AntonStoeckl/biblioteca/library/shell/config"
	"github.com/AntonStoeckl/biblioteca/library/shell/notify"
)

const (
	logMsgStarting = "starting biblioteca"
	logMsgMailer   = "sending reservation emails via SMTP"
	logMsgNoMailer = "SMTP not configured, reservation notices are only logged"
	logMsgStopped  = "biblioteca stopped"
	logMsgOTel     = "exporting metrics and traces via OTLP"

	logAttrAdapter  = "db_adapter"
	logAttrSMTPHost = "smtp_host"
	logAttrEndpoint = "otlp_endpoint"

	telemetryShutdownTimeout = 5 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API until SIGINT or SIGTERM",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context(), loadedConfig, logger)
	},
}

func serve(ctx context.Context, cfg config.Config, logger *slog.Logger) (err error) {
	if err = cfg.Validate(); err != nil {
		return err
	}

	logger.Info(logMsgStarting, logAttrAdapter, cfg.Database.Adapter)

	telemetry, err := config.NewTelemetry(ctx, cfg.Observability)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
		defer cancel()
		err = errors.Join(err, telemetry.Shutdown(shutdownCtx))
	}()

	if cfg.Observability.Enabled() {
		logger.Info(logMsgOTel, logAttrEndpoint, cfg.Observability.OTLPEndpoint)
	}

	store, err := config.OpenEventStore(ctx, cfg.Database, logger,
		postgresengine.WithMetrics(telemetry.Metrics),
		postgresengine.WithTracing(telemetry.Tracing),
	)
	if err != nil {
		return err
	}
	defer store.Close()

	if err = store.EnsureSchema(ctx); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	var notifier notify.Notifier = notify.NewLogNotifier(logger)

	if cfg.SMTP.Enabled() {
		sender := notify.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Pass)

		mailer, mailErr := notify.NewMailNotifier(sender, cfg.SMTP.From, logger)
		if mailErr != nil {
			return mailErr
		}

		logger.Info(logMsgMailer, logAttrSMTPHost, cfg.SMTP.Host)
		notifier = mailer
		g.Go(func() error { return mailer.Run(ctx) })
	} else {
		logger.Info(logMsgNoMailer)
	}

	hasher := auth.NewPasswordHasher(bcrypt.DefaultCost)

	handlers, err := api.NewHandlers(api.HandlerDependencies{
		EventStore:   store,
		Hasher:       hasher,
		Policy:       cfg.Policy.ToCore(),
		Notifier:     notifier,
		Logger:       logger,
		RetryOptions: cfg.Retry.Options(),
		Metrics:      telemetry.Metrics,
		Tracing:      telemetry.Tracing,
	})
	if err != nil {
		return err
	}

	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecretKey, cfg.Auth.TokenTTL())
	if err != nil {
		return err
	}

	server, err := api.New(api.Options{
		Addr:       cfg.HTTPAddr,
		CORSOrigin: cfg.CORSOrigin,
		Handlers:   &handlers,
		Tokens:     &tokens,
		Passwords:  hasher,
		Logger:     logger,
		Metrics:    telemetry.Metrics,
		Tracing:    telemetry.Tracing,
	})
	if err != nil {
		return err
	}

	sweeper := notify.NewSweeper(store, notifier, cfg.Policy.ToCore(), cfg.Notifications.SweepInterval(),
		notify.WithSweepLogger(logger),
	)

	g.Go(func() error { return server.Run(ctx) })
	g.Go(func() error { return sweeper.Run(ctx) })

	err = g.Wait()
	logger.Info(logMsgStopped)

	return err
}
