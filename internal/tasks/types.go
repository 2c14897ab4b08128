package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeWelcomeEmail = "mail:welcome"
)

// WelcomeEmailPayload carries what the welcome template needs
type WelcomeEmailPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func NewWelcomeEmailTask(payload WelcomeEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeWelcomeEmail, data), nil
}
