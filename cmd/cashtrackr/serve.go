package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cashtrackr/cashtrackr-api/internal/auth"
	"github.com/cashtrackr/cashtrackr-api/internal/config"
	"github.com/cashtrackr/cashtrackr-api/internal/mail"
	"github.com/cashtrackr/cashtrackr-api/internal/ratelimit"
	"github.com/cashtrackr/cashtrackr-api/internal/router"
	"github.com/cashtrackr/cashtrackr-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func runServe(ctx context.Context) error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)
	logger := slog.Default()

	mailer, closeMailer, err := newMailer(cfg, logger)
	if err != nil {
		return err
	}
	defer closeMailer()

	store, err := newRateLimitStore(ctx, cfg)
	if err != nil {
		return err
	}

	var authOptions []services.AuthOption
	if cfg.TestMode {
		authOptions = append(authOptions, services.WithTokenObserver(func(email, token string) {
			logger.Warn("one-time token issued", "email", email, "token", token)
		}))
	}

	engine := router.New(router.Deps{
		DB:          db,
		Logger:      logger,
		Sessions:    auth.NewSessionTokens(cfg.JWT.Secret, cfg.JWT.ExpiresIn),
		Emails:      mail.NewAuthEmails(cfg.Mail.From, cfg.Mail.FrontendURL),
		Mailer:      mailer,
		Limiter:     ratelimit.NewLimiter(store, cfg.RateLimit.Requests, cfg.RateLimit.Window),
		AuthOptions: authOptions,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting CashTrackr server", "addr", srv.Addr, "mail_driver", cfg.Mail.Driver)
		if cfg.TestMode {
			logger.Warn("TEST MODE ENABLED - one-time tokens are written to the log")
		}
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newMailer(cfg *config.Config, logger *slog.Logger) (mail.Mailer, func(), error) {
	if cfg.Mail.Driver != "amqp" {
		return mail.NewLogMailer(logger), func() {}, nil
	}

	queue, err := mail.NewQueue(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue)
	if err != nil {
		return nil, nil, err
	}
	return queue, func() { queue.Close() }, nil
}

func newRateLimitStore(ctx context.Context, cfg *config.Config) (ratelimit.Store, error) {
	if cfg.Redis.Addr == "" {
		return ratelimit.NewMemoryStore(), nil
	}

	client, err := ratelimit.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}
	return ratelimit.NewRedisStore(client), nil
}
