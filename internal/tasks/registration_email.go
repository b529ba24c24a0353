package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/mramadan/socialmedia/internal/email"
)

// RegistrationEmailTask sends a confirmation email to a newly registered user.
type RegistrationEmailTask struct {
	Email           string `json:"email"`
	ConfirmationURL string `json:"confirmation_url"`
}

// Config returns the queue configuration for registration email tasks.
func (t RegistrationEmailTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "registration_email",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     1 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// RegistrationEmailProcessor creates a processor function for RegistrationEmailTask.
// The processor needs a mailer to deliver the confirmation message.
func RegistrationEmailProcessor(mailer email.Mailer) backlite.QueueProcessor[RegistrationEmailTask] {
	return func(ctx context.Context, task RegistrationEmailTask) error {
		if mailer == nil {
			return fmt.Errorf("mailer not configured")
		}

		if err := email.SendRegistrationEmail(ctx, mailer, task.Email, task.ConfirmationURL); err != nil {
			return fmt.Errorf("send registration email to %s: %w", task.Email, err)
		}

		log.Printf("[TASK] Sent registration email to %s", task.Email)
		return nil
	}
}

// NewRegistrationEmailQueue creates a backlite queue for registration email tasks.
func NewRegistrationEmailQueue(mailer email.Mailer) backlite.Queue {
	return backlite.NewQueue(RegistrationEmailProcessor(mailer))
}
