package notifier

import (
	"context"
	"fmt"

	"github.com/gdg-garage/pulse-events/internal/models"
)

// Dispatcher delivers a text message to a phone number.
type Dispatcher interface {
	Dispatch(ctx context.Context, to, message string) error
}

// Announcer posts editor activity to a staff channel.
type Announcer interface {
	NotifyEventPublished(editor models.User, event models.Event) error
	NotifyEventUpdated(editor models.User, event models.Event) error
	NotifyEventDeleted(editor models.User, event models.Event) error
}

// Nop drops every message. Used when no SMS function is configured.
type Nop struct{}

func (Nop) Dispatch(context.Context, string, string) error { return nil }

func RegistrationMessage(event models.Event) string {
	return fmt.Sprintf("✅ You are registered for %s on %s at %s. See you there!",
		event.Title, event.EventDate.Format("January 02, 2006"), event.TimeStart)
}

func ReminderMessage(event models.Event) string {
	msg := fmt.Sprintf("⏰ Reminder: %s is tomorrow, %s at %s", event.Title, event.EventDate.Format("January 02, 2006"), event.TimeStart)
	if event.Location != "" {
		msg += " (" + event.Location + ")"
	}
	return msg + "."
}
