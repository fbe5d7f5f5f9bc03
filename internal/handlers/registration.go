package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/pulse-events/internal/auth"
	"github.com/gdg-garage/pulse-events/internal/database"
	"github.com/gdg-garage/pulse-events/internal/models"
	"github.com/gdg-garage/pulse-events/internal/registration"
	"go.uber.org/zap"
)

type RegistrationHandler struct {
	directory *database.Directory
	workflow  *registration.Workflow
	auth      *auth.AuthHandler
	logger    *zap.Logger
}

func NewRegistrationHandler(directory *database.Directory, workflow *registration.Workflow, authHandler *auth.AuthHandler, logger *zap.Logger) *RegistrationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationHandler{
		directory: directory,
		workflow:  workflow,
		auth:      authHandler,
		logger:    logger,
	}
}

type RSVPResponse struct {
	Body struct {
		EventID string `json:"event_id"`
		Message string `json:"message"`
	}
}

// HandleRSVP registers the calling student for an event.
func (h *RegistrationHandler) HandleRSVP(ctx context.Context, input *EventIDInput) (*RSVPResponse, error) {
	identity, err := currentIdentity(ctx, h.auth)
	if err != nil {
		return nil, err
	}

	event, err := h.directory.GetEvent(ctx, input.ID)
	if err != nil {
		return nil, domainError(err)
	}

	confirmation, err := h.workflow.AttemptRegistration(ctx, identity.Caller(), *event)
	if err != nil {
		h.logger.Debug("registration rejected",
			zap.Uint("user_id", identity.User.ID),
			zap.String("event_id", event.ID),
			zap.Error(err),
		)
		return nil, domainError(err)
	}

	resp := &RSVPResponse{}
	resp.Body.EventID = confirmation.EventID
	resp.Body.Message = "Registration confirmed"
	return resp, nil
}

type ConfirmationInput struct {
	EventID string `path:"event_id"`
}

type ConfirmationResponse struct {
	Body struct {
		EventID      string    `json:"event_id"`
		Title        string    `json:"title"`
		EventDate    time.Time `json:"event_date"`
		TimeStart    string    `json:"time_start"`
		TimeEnd      string    `json:"time_end"`
		Location     string    `json:"location"`
		AmountToPay  float64   `json:"amount_to_pay"`
		Email        string    `json:"email"`
		RegisteredAt time.Time `json:"registered_at"`
	}
}

func (h *RegistrationHandler) HandleConfirmation(ctx context.Context, input *ConfirmationInput) (*ConfirmationResponse, error) {
	identity, err := currentIdentity(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	if identity.Role != models.RoleStudent {
		return nil, huma.Error403Forbidden("Only students have registrations")
	}

	rsvp, err := h.directory.GetRegistration(ctx, identity.User.ID, input.EventID)
	if err != nil {
		return nil, domainError(err)
	}
	event, err := h.directory.GetEvent(ctx, input.EventID)
	if err != nil {
		return nil, domainError(err)
	}

	resp := &ConfirmationResponse{}
	resp.Body.EventID = event.ID
	resp.Body.Title = event.Title
	resp.Body.EventDate = event.EventDate
	resp.Body.TimeStart = event.TimeStart
	resp.Body.TimeEnd = event.TimeEnd
	resp.Body.Location = event.Location
	resp.Body.AmountToPay = event.AmountToPay
	resp.Body.Email = rsvp.Email
	resp.Body.RegisteredAt = rsvp.CreatedAt
	return resp, nil
}

type RegistrationView struct {
	EventID      string    `json:"event_id"`
	Title        string    `json:"title"`
	EventDate    time.Time `json:"event_date"`
	TimeStart    string    `json:"time_start"`
	Location     string    `json:"location"`
	RegisteredAt time.Time `json:"registered_at"`
}

type RegistrationListResponse struct {
	Body struct {
		Registrations []RegistrationView `json:"registrations"`
	}
}

// HandleList returns the caller's RSVPs, newest first.
func (h *RegistrationHandler) HandleList(ctx context.Context, input *struct{}) (*RegistrationListResponse, error) {
	identity, err := currentIdentity(ctx, h.auth)
	if err != nil {
		return nil, err
	}

	rsvps, err := h.directory.ListRegistrationsByUser(ctx, identity.User.ID)
	if err != nil {
		return nil, domainError(err)
	}
	ids := make([]string, 0, len(rsvps))
	for _, r := range rsvps {
		ids = append(ids, r.EventID)
	}
	events, err := h.directory.ListEventsByIDs(ctx, ids)
	if err != nil {
		return nil, domainError(err)
	}
	byID := make(map[string]models.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}

	resp := &RegistrationListResponse{}
	resp.Body.Registrations = make([]RegistrationView, 0, len(rsvps))
	for _, r := range rsvps {
		e, ok := byID[r.EventID]
		if !ok {
			continue
		}
		resp.Body.Registrations = append(resp.Body.Registrations, RegistrationView{
			EventID:      e.ID,
			Title:        e.Title,
			EventDate:    e.EventDate,
			TimeStart:    e.TimeStart,
			Location:     e.Location,
			RegisteredAt: r.CreatedAt,
		})
	}
	return resp, nil
}
