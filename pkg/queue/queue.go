package queue

import (
	"github.com/hibiken/asynq"
	"github.com/hugh/otp-auth/pkg/config"
)

// QueueMail holds outgoing e-mail tasks.
const QueueMail = "mail"

func NewClient(cfg *config.RedisConfig) *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
	})
}

func NewServer(cfg *config.RedisConfig, concurrency int) *asynq.Server {
	if concurrency <= 0 {
		concurrency = 10
	}

	return asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Addr(),
			Password: cfg.Password,
		},
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				QueueMail: 6,
				"default": 3,
			},
		},
	)
}
