package mail

import (
	"context"
	"encoding/json"
	"log/slog"
)

type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

func (m Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MessageFromJSON(data []byte) (Message, error) {
	var msg Message
	err := json.Unmarshal(data, &msg)
	return msg, err
}

// Mailer hands a rendered message to some transport.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer only logs outgoing mail. Used in development and tests.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.logger.InfoContext(ctx, "mail not delivered, log driver active",
		"to", msg.To,
		"subject", msg.Subject)
	return nil
}
