package auth

import (
	"context"

	"fashion-storefront/internal/logging"
	"go.uber.org/zap"
)

// CodeSender delivers a sign-in code to a phone number.
type CodeSender interface {
	Send(ctx context.Context, phone, code string) error
}

// LogSender writes codes to the log instead of sending an SMS.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logging.OrNop(logger)}
}

func (s *LogSender) Send(_ context.Context, phone, code string) error {
	s.logger.Info("auth: sign-in code issued", zap.String("phone", phone), zap.String("code", code))
	return nil
}
