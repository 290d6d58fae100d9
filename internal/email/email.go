package email

import (
	"context"

	"github.com/Domenick1991/tablebook/internal/kafka"
	"go.uber.org/zap"
)

// Sender delivers booking notifications. The transport is a stub; the
// worker only needs the hand-off point.
type Sender struct {
	logger *zap.Logger
}

func NewSender(logger *zap.Logger) *Sender {
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.logger.Info("send email",
		zap.String("to", event.Email),
		zap.String("type", event.Type),
		zap.String("session", event.SessionName),
		zap.Int("guests", event.Guests))
	return nil
}
