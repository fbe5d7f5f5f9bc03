// Package registration decides whether a caller may RSVP to an event and
// performs the registration.
package registration

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gdg-garage/pulse-events/internal/models"
	"github.com/gdg-garage/pulse-events/internal/notifier"
	"go.uber.org/zap"
)

// Directory is the slice of the event store the workflow needs.
type Directory interface {
	HasRegistration(ctx context.Context, userID uint, eventID string) (bool, error)
	CreateRegistration(ctx context.Context, rsvp *models.RSVP) error
}

// Caller identifies who is registering. It is passed in explicitly rather than
// read from session state.
type Caller struct {
	UserID uint
	Role   models.Role
	Email  string
	Phone  string
}

type Confirmation struct {
	EventID string `json:"event_id"`
}

type Workflow struct {
	directory  Directory
	dispatcher notifier.Dispatcher
	logger     *zap.Logger

	pending sync.WaitGroup
}

func NewWorkflow(directory Directory, dispatcher notifier.Dispatcher, logger *zap.Logger) *Workflow {
	if dispatcher == nil {
		dispatcher = notifier.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{directory: directory, dispatcher: dispatcher, logger: logger}
}

// AttemptRegistration checks, in order, the caller's role, an existing RSVP and
// the capacity of event, then writes the RSVP. The capacity check uses the
// event as given; unless the directory enforces capacity on write, concurrent
// callers can both pass it.
//
// On success an SMS confirmation is started in the background when the caller
// has a phone number. Its outcome never affects the result.
func (w *Workflow) AttemptRegistration(ctx context.Context, caller Caller, event models.Event) (*Confirmation, error) {
	if caller.Role != models.RoleStudent {
		return nil, models.ErrIneligibleRole
	}

	registered, err := w.directory.HasRegistration(ctx, caller.UserID, event.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}
	if registered {
		return nil, models.ErrAlreadyRegistered
	}

	if event.IsFull() {
		return nil, models.ErrEventFull
	}

	rsvp := &models.RSVP{
		UserID:  caller.UserID,
		EventID: event.ID,
		Email:   caller.Email,
	}
	if err := w.directory.CreateRegistration(ctx, rsvp); err != nil {
		if errors.Is(err, models.ErrAlreadyRegistered) || errors.Is(err, models.ErrEventFull) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}

	w.logger.Info("registration created",
		zap.Uint("user_id", caller.UserID),
		zap.String("event_id", event.ID),
	)

	if caller.Phone != "" {
		w.notify(ctx, caller.Phone, notifier.RegistrationMessage(event), event.ID)
	}

	return &Confirmation{EventID: event.ID}, nil
}

func (w *Workflow) notify(ctx context.Context, to, message, eventID string) {
	// The request context ends with the response; the SMS must outlive it.
	ctx = context.WithoutCancel(ctx)

	w.pending.Add(1)
	go func() {
		defer w.pending.Done()
		if err := w.dispatcher.Dispatch(ctx, to, message); err != nil {
			w.logger.Warn("registration confirmation not sent",
				zap.String("event_id", eventID),
				zap.Error(fmt.Errorf("%w: %v", models.ErrNotificationDispatchFailed, err)),
			)
		}
	}()
}

// Wait blocks until every background confirmation has finished.
func (w *Workflow) Wait() {
	w.pending.Wait()
}
