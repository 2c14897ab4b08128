package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/hugh/otp-auth/internal/mail"
)

type Handler struct {
	mailer mail.Dispatcher
	logger *slog.Logger
}

func NewHandler(mailer mail.Dispatcher, logger *slog.Logger) *Handler {
	return &Handler{
		mailer: mailer,
		logger: logger,
	}
}

func (h *Handler) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeWelcomeEmail, h.HandleWelcomeEmail)
}

func (h *Handler) HandleWelcomeEmail(ctx context.Context, t *asynq.Task) error {
	var payload WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.Email == "" {
		return fmt.Errorf("welcome email without recipient: %w", asynq.SkipRetry)
	}

	if err := h.mailer.SendWelcome(ctx, payload.Email, payload.Name); err != nil {
		h.logger.Error("welcome email failed", "to", payload.Email, "error", err)
		return err
	}

	h.logger.Info("welcome email delivered", "to", payload.Email)
	return nil
}
