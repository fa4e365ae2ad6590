// Package email defines the outbound invoice delivery seam. Actual delivery
// happens through an external provider; the shipped implementation only logs
// the intent so the call sites and payload shape are exercised.
package email

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/JohnBartlett/bluejay-acct/internal/observability/logger"
)

// Message is one outbound invoice email with the rendered PDF attached.
type Message struct {
	To             string
	Subject        string
	Body           string
	Attachment     []byte
	AttachmentName string
	InvoiceID      string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender records the send without delivering anything.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) Sender {
	return &LogSender{log: log.Named("email.sender")}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.log.Info("email send skipped, no provider configured",
		zap.String("to", logger.MaskEmail(msg.To)),
		zap.String("subject", msg.Subject),
		zap.String("invoice_id", msg.InvoiceID),
		zap.Int("attachment_bytes", len(msg.Attachment)),
	)
	return nil
}

var Module = fx.Module("email.sender",
	fx.Provide(NewLogSender),
)
