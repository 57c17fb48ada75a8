package handlers

import (
	"context"
	"log/slog"

	"github.com/iudanet/niplan/internal/phone"
)

// OTPSender доставляет одноразовый код пользователю
type OTPSender interface {
	SendOTP(ctx context.Context, phoneNumber, code string) error
}

// LogSender пишет код в лог вместо отправки в WhatsApp.
// Используется локальным сервером, где доставка не нужна.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender создает LogSender
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// SendOTP implements OTPSender
func (s *LogSender) SendOTP(ctx context.Context, phoneNumber, code string) error {
	s.logger.InfoContext(ctx, "otp issued",
		slog.String("phone", phone.Mask(phoneNumber)),
		slog.String("code", code),
	)
	return nil
}
