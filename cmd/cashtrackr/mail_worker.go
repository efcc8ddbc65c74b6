package main

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/cashtrackr/cashtrackr-api/internal/config"
	"github.com/cashtrackr/cashtrackr-api/internal/logging"
	"github.com/cashtrackr/cashtrackr-api/internal/mail"
	"github.com/spf13/cobra"
)

var mailWorkerCmd = &cobra.Command{
	Use:   "mail-worker",
	Short: "Deliver queued emails over SMTP",
	Long: `Consume confirmation and password reset emails published by the API
when MAIL_DRIVER=amqp and deliver them through the configured SMTP server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runMailWorker(ctx)
	},
}

func runMailWorker(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.New(cfg.Log.Level, cfg.Log.Format)

	queue, err := mail.NewQueue(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue)
	if err != nil {
		return err
	}
	defer queue.Close()

	sender := mail.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password)

	slog.Info("mail worker started", "queue", cfg.AMQP.Queue, "smtp", cfg.SMTP.Host+":"+cfg.SMTP.Port)
	err = queue.Consume(ctx, func(ctx context.Context, msg mail.Message) error {
		if err := sender.Send(ctx, msg); err != nil {
			return err
		}
		slog.Info("mail delivered", "to", msg.To, "subject", msg.Subject)
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
