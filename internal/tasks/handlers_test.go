package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/hugh/otp-auth/internal/testutil"
	"github.com/hugh/otp-auth/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	f.opts = append(f.opts, opts)
	return &asynq.TaskInfo{ID: "task-1", Type: task.Type(), Queue: queue.QueueMail}, nil
}

func TestNewWelcomeEmailTask(t *testing.T) {
	task, err := NewWelcomeEmailTask(WelcomeEmailPayload{Email: "a@example.com", Name: "Ada"})
	require.NoError(t, err)

	assert.Equal(t, TypeWelcomeEmail, task.Type())
	assert.JSONEq(t, `{"email":"a@example.com","name":"Ada"}`, string(task.Payload()))
}

func TestHandleWelcomeEmail(t *testing.T) {
	mailer := &testutil.FakeMailer{}
	handler := NewHandler(mailer, testutil.DiscardLogger())

	task, err := NewWelcomeEmailTask(WelcomeEmailPayload{Email: "a@example.com", Name: "Ada"})
	require.NoError(t, err)

	require.NoError(t, handler.HandleWelcomeEmail(context.Background(), task))

	sent, ok := mailer.Last("welcome")
	require.True(t, ok)
	assert.Equal(t, "a@example.com", sent.To)
	assert.Equal(t, "Ada", sent.Value)
}

func TestHandleWelcomeEmail_InvalidPayload(t *testing.T) {
	handler := NewHandler(&testutil.FakeMailer{}, testutil.DiscardLogger())

	err := handler.HandleWelcomeEmail(context.Background(), asynq.NewTask(TypeWelcomeEmail, []byte("not json")))
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = handler.HandleWelcomeEmail(context.Background(), asynq.NewTask(TypeWelcomeEmail, []byte(`{"name":"x"}`)))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleWelcomeEmail_SendFailureRetries(t *testing.T) {
	sendErr := errors.New("smtp timeout")
	handler := NewHandler(&testutil.FakeMailer{Err: sendErr}, testutil.DiscardLogger())

	task, err := NewWelcomeEmailTask(WelcomeEmailPayload{Email: "a@example.com"})
	require.NoError(t, err)

	err = handler.HandleWelcomeEmail(context.Background(), task)
	assert.ErrorIs(t, err, sendErr)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestQueuedDispatcher_WelcomeIsQueued(t *testing.T) {
	mailer := &testutil.FakeMailer{}
	enq := &fakeEnqueuer{}
	d := NewQueuedDispatcher(mailer, enq, testutil.DiscardLogger())

	require.NoError(t, d.SendWelcome(context.Background(), "a@example.com", "Ada"))

	require.Len(t, enq.tasks, 1)
	assert.Equal(t, TypeWelcomeEmail, enq.tasks[0].Type())
	var queueName interface{}
	for _, opt := range enq.opts[0] {
		if opt.Type() == asynq.QueueOpt {
			queueName = opt.Value()
		}
	}
	assert.Equal(t, queue.QueueMail, queueName)
	assert.Empty(t, mailer.Sent)
}

func TestQueuedDispatcher_EnqueueFailureSendsInline(t *testing.T) {
	mailer := &testutil.FakeMailer{}
	d := NewQueuedDispatcher(mailer, &fakeEnqueuer{err: errors.New("redis down")}, testutil.DiscardLogger())

	require.NoError(t, d.SendWelcome(context.Background(), "a@example.com", "Ada"))

	_, ok := mailer.Last("welcome")
	assert.True(t, ok)
}

func TestQueuedDispatcher_OTPMailIsInline(t *testing.T) {
	mailer := &testutil.FakeMailer{}
	enq := &fakeEnqueuer{}
	d := NewQueuedDispatcher(mailer, enq, testutil.DiscardLogger())

	require.NoError(t, d.SendVerifyOTP(context.Background(), "a@example.com", "123456"))
	require.NoError(t, d.SendResetOTP(context.Background(), "a@example.com", "654321"))

	assert.Empty(t, enq.tasks)
	verify, ok := mailer.Last("verify")
	require.True(t, ok)
	assert.Equal(t, "123456", verify.Value)
	reset, ok := mailer.Last("reset")
	require.True(t, ok)
	assert.Equal(t, "654321", reset.Value)
}
