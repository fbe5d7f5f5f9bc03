package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/pulse-events/internal/auth"
	"github.com/gdg-garage/pulse-events/internal/models"
)

// domainError maps domain failures onto HTTP errors. Unknown errors are
// treated as the store being unreachable.
func domainError(err error) error {
	switch {
	case errors.Is(err, models.ErrIneligibleRole):
		return huma.Error403Forbidden("Only students can register for events")
	case errors.Is(err, models.ErrAlreadyRegistered):
		return huma.Error409Conflict("You are already registered for this event")
	case errors.Is(err, models.ErrEventFull):
		return huma.Error409Conflict("This event is full")
	case errors.Is(err, models.ErrCapacityBelowParticipants):
		return huma.Error422UnprocessableEntity("max_participants cannot be lower than the current number of participants")
	case errors.Is(err, models.ErrEventNotFound):
		return huma.Error404NotFound("Event not found")
	case errors.Is(err, models.ErrRegistrationNotFound):
		return huma.Error404NotFound("Registration not found")
	case errors.Is(err, models.ErrUserNotFound):
		return huma.Error401Unauthorized("Unknown user")
	default:
		return huma.Error503ServiceUnavailable("Service temporarily unavailable, please try again")
	}
}

func currentIdentity(ctx context.Context, authHandler *auth.AuthHandler) (*auth.Identity, error) {
	userID, ok := auth.UserIDFrom(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	identity, err := authHandler.Resolve(ctx, userID)
	if err != nil {
		return nil, domainError(err)
	}
	return identity, nil
}

func requireEditor(ctx context.Context, authHandler *auth.AuthHandler) (*auth.Identity, error) {
	identity, err := currentIdentity(ctx, authHandler)
	if err != nil {
		return nil, err
	}
	if identity.Role != models.RoleEditor {
		return nil, huma.Error403Forbidden("Editor role required")
	}
	return identity, nil
}
