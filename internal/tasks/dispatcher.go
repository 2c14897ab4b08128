package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hugh/otp-auth/internal/mail"
	"github.com/hugh/otp-auth/pkg/queue"
)

// Enqueuer is the part of *asynq.Client the dispatcher needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueuedDispatcher hands welcome mail to the worker and sends OTP mail
// inline, since the caller reports OTP delivery to the user.
type QueuedDispatcher struct {
	next     mail.Dispatcher
	enqueuer Enqueuer
	logger   *slog.Logger
}

var _ mail.Dispatcher = (*QueuedDispatcher)(nil)

func NewQueuedDispatcher(next mail.Dispatcher, enqueuer Enqueuer, logger *slog.Logger) *QueuedDispatcher {
	return &QueuedDispatcher{next: next, enqueuer: enqueuer, logger: logger}
}

// SendWelcome enqueues the message. If redis is unreachable it falls back
// to sending directly.
func (d *QueuedDispatcher) SendWelcome(ctx context.Context, to, name string) error {
	task, err := NewWelcomeEmailTask(WelcomeEmailPayload{Email: to, Name: name})
	if err != nil {
		return err
	}

	info, err := d.enqueuer.EnqueueContext(ctx, task,
		asynq.Queue(queue.QueueMail),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		d.logger.WarnContext(ctx, "enqueue welcome email failed, sending inline", "to", to, "error", err)
		return d.next.SendWelcome(ctx, to, name)
	}

	d.logger.DebugContext(ctx, "welcome email queued", "to", to, "task_id", info.ID)
	return nil
}

func (d *QueuedDispatcher) SendVerifyOTP(ctx context.Context, to, otp string) error {
	return d.next.SendVerifyOTP(ctx, to, otp)
}

func (d *QueuedDispatcher) SendResetOTP(ctx context.Context, to, otp string) error {
	return d.next.SendResetOTP(ctx, to, otp)
}
