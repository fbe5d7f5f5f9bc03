package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/pulse-events/internal/auth"
	"github.com/gdg-garage/pulse-events/internal/database"
	"github.com/gdg-garage/pulse-events/internal/listing"
	"github.com/gdg-garage/pulse-events/internal/models"
	"github.com/gdg-garage/pulse-events/internal/notifier"
	"go.uber.org/zap"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type EventHandler struct {
	directory *database.Directory
	auth      *auth.AuthHandler
	announcer notifier.Announcer
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

// NewEventHandler serves event discovery and editor management. announcer may
// be nil when no Discord channel is configured.
func NewEventHandler(directory *database.Directory, authHandler *auth.AuthHandler, announcer notifier.Announcer, loc *time.Location, logger *zap.Logger) *EventHandler {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventHandler{
		directory: directory,
		auth:      authHandler,
		announcer: announcer,
		loc:       loc,
		now:       time.Now,
		logger:    logger,
	}
}

type SearchInput struct {
	Q string `query:"q" doc:"Case-insensitive match on title, category or tags"`
}

type EventListResponse struct {
	Body struct {
		Events []models.Event `json:"events"`
	}
}

func (h *EventHandler) HandleList(ctx context.Context, input *SearchInput) (*EventListResponse, error) {
	events, err := h.directory.ListEvents(ctx)
	if err != nil {
		return nil, domainError(err)
	}
	resp := &EventListResponse{}
	resp.Body.Events = nonNil(listing.Search(events, input.Q))
	return resp, nil
}

type FeedResponse struct {
	Body struct {
		Today    []models.Event `json:"today"`
		Upcoming []models.Event `json:"upcoming"`
		MyEvents []models.Event `json:"my_events"`
	}
}

// HandleFeed returns the student home view: today's events, later events and
// the events the caller holds an RSVP for.
func (h *EventHandler) HandleFeed(ctx context.Context, input *SearchInput) (*FeedResponse, error) {
	identity, err := currentIdentity(ctx, h.auth)
	if err != nil {
		return nil, err
	}

	events, err := h.directory.ListEvents(ctx)
	if err != nil {
		return nil, domainError(err)
	}

	// The search only narrows the date tabs; my_events always lists every RSVP.
	resp := &FeedResponse{}
	resp.Body.Today, resp.Body.Upcoming = listing.Partition(listing.Search(events, input.Q), h.now().In(h.loc))
	resp.Body.MyEvents = []models.Event{}

	if identity.Role == models.RoleStudent {
		rsvps, err := h.directory.ListRegistrationsByUser(ctx, identity.User.ID)
		if err != nil {
			return nil, domainError(err)
		}
		registered := make(map[string]bool, len(rsvps))
		for _, r := range rsvps {
			registered[r.EventID] = true
		}
		for _, e := range events {
			if registered[e.ID] {
				resp.Body.MyEvents = append(resp.Body.MyEvents, e)
			}
		}
	}
	return resp, nil
}

type EventIDInput struct {
	ID string `path:"id" doc:"Event identifier"`
}

type EventDetailResponse struct {
	Body struct {
		Event         models.Event `json:"event"`
		IsFull        bool         `json:"is_full"`
		HasRegistered bool         `json:"has_registered"`
		CanRegister   bool         `json:"can_register"`
	}
}

func (h *EventHandler) HandleGet(ctx context.Context, input *EventIDInput) (*EventDetailResponse, error) {
	identity, err := currentIdentity(ctx, h.auth)
	if err != nil {
		return nil, err
	}

	event, err := h.directory.GetEvent(ctx, input.ID)
	if err != nil {
		return nil, domainError(err)
	}

	resp := &EventDetailResponse{}
	resp.Body.Event = *event
	resp.Body.IsFull = event.IsFull()

	if identity.Role == models.RoleStudent {
		registered, err := h.directory.HasRegistration(ctx, identity.User.ID, event.ID)
		if err != nil {
			return nil, domainError(err)
		}
		resp.Body.HasRegistered = registered
		resp.Body.CanRegister = !registered && !resp.Body.IsFull
	}
	return resp, nil
}

type EventFields struct {
	Title           string   `json:"title" minLength:"1" doc:"Event title"`
	Description     string   `json:"description,omitempty"`
	Category        string   `json:"category,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	EventDate       string   `json:"event_date" doc:"Date of the event (YYYY-MM-DD)"`
	TimeStart       string   `json:"time_start" doc:"Start time (HH:MM)"`
	TimeEnd         string   `json:"time_end" doc:"End time (HH:MM)"`
	Location        string   `json:"location" minLength:"1"`
	MaxParticipants int      `json:"max_participants" minimum:"1"`
	AmountToPay     float64  `json:"amount_to_pay,omitempty" minimum:"0" doc:"Fee, 0 for free events"`
	ImageURL        string   `json:"image_url,omitempty"`
}

type CreateEventInput struct {
	Body EventFields
}

type UpdateEventInput struct {
	ID   string `path:"id"`
	Body EventFields
}

type EventResponse struct {
	Body models.Event
}

func (h *EventHandler) HandleCreate(ctx context.Context, input *CreateEventInput) (*EventResponse, error) {
	editor, err := requireEditor(ctx, h.auth)
	if err != nil {
		return nil, err
	}

	event := &models.Event{CreatedBy: editor.User.ID}
	if err := h.apply(event, input.Body); err != nil {
		return nil, err
	}
	if err := h.directory.CreateEvent(ctx, event); err != nil {
		return nil, domainError(err)
	}

	h.logger.Info("event created", zap.String("event_id", event.ID), zap.Uint("editor_id", editor.User.ID))
	h.announce("published", func(a notifier.Announcer) error { return a.NotifyEventPublished(editor.User, *event) })

	return &EventResponse{Body: *event}, nil
}

func (h *EventHandler) HandleUpdate(ctx context.Context, input *UpdateEventInput) (*EventResponse, error) {
	editor, event, err := h.ownedEvent(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.apply(event, input.Body); err != nil {
		return nil, err
	}
	if err := h.directory.UpdateEvent(ctx, event); err != nil {
		return nil, domainError(err)
	}

	h.logger.Info("event updated", zap.String("event_id", event.ID), zap.Uint("editor_id", editor.User.ID))
	h.announce("updated", func(a notifier.Announcer) error { return a.NotifyEventUpdated(editor.User, *event) })

	return &EventResponse{Body: *event}, nil
}

type MessageResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *EventHandler) HandleDelete(ctx context.Context, input *EventIDInput) (*MessageResponse, error) {
	editor, event, err := h.ownedEvent(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if err := h.directory.DeleteEvent(ctx, event.ID); err != nil {
		return nil, domainError(err)
	}

	h.logger.Info("event deleted", zap.String("event_id", event.ID), zap.Uint("editor_id", editor.User.ID))
	h.announce("deleted", func(a notifier.Announcer) error { return a.NotifyEventDeleted(editor.User, *event) })

	resp := &MessageResponse{}
	resp.Body.Message = "Event deleted"
	return resp, nil
}

// HandleEditorList lists the events owned by the calling editor.
func (h *EventHandler) HandleEditorList(ctx context.Context, input *struct{}) (*EventListResponse, error) {
	editor, err := requireEditor(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	events, err := h.directory.ListEventsByOwner(ctx, editor.User.ID)
	if err != nil {
		return nil, domainError(err)
	}
	resp := &EventListResponse{}
	resp.Body.Events = nonNil(events)
	return resp, nil
}

func (h *EventHandler) ownedEvent(ctx context.Context, id string) (*auth.Identity, *models.Event, error) {
	editor, err := requireEditor(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	event, err := h.directory.GetEvent(ctx, id)
	if err != nil {
		return nil, nil, domainError(err)
	}
	if event.CreatedBy != editor.User.ID {
		return nil, nil, huma.Error403Forbidden("You can only manage your own events")
	}
	return editor, event, nil
}

// apply validates fields and copies them onto event.
func (h *EventHandler) apply(event *models.Event, f EventFields) error {
	title := strings.TrimSpace(f.Title)
	location := strings.TrimSpace(f.Location)
	if title == "" || location == "" || f.EventDate == "" || f.TimeStart == "" || f.TimeEnd == "" {
		return huma.Error400BadRequest("title, event_date, time_start, time_end and location are required")
	}

	date, err := time.Parse(dateLayout, f.EventDate)
	if err != nil {
		return huma.Error400BadRequest("event_date must be formatted as YYYY-MM-DD")
	}
	if date.Before(listing.Day(h.now().In(h.loc))) {
		return huma.Error400BadRequest("event_date cannot be in the past")
	}
	if _, err := time.Parse(timeLayout, f.TimeStart); err != nil {
		return huma.Error400BadRequest("time_start must be formatted as HH:MM")
	}
	if _, err := time.Parse(timeLayout, f.TimeEnd); err != nil {
		return huma.Error400BadRequest("time_end must be formatted as HH:MM")
	}
	if f.MaxParticipants < 1 {
		return huma.Error400BadRequest("max_participants must be at least 1")
	}
	if f.AmountToPay < 0 {
		return huma.Error400BadRequest("amount_to_pay cannot be negative")
	}

	tags := make([]string, 0, len(f.Tags))
	for _, tag := range f.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	event.Title = title
	event.Description = strings.TrimSpace(f.Description)
	event.Category = strings.TrimSpace(f.Category)
	event.Tags = tags
	event.EventDate = date
	event.TimeStart = f.TimeStart
	event.TimeEnd = f.TimeEnd
	event.Location = location
	event.MaxParticipants = f.MaxParticipants
	event.AmountToPay = f.AmountToPay
	event.ImageURL = strings.TrimSpace(f.ImageURL)
	return nil
}

func (h *EventHandler) announce(action string, post func(notifier.Announcer) error) {
	if h.announcer == nil {
		return
	}
	if err := post(h.announcer); err != nil {
		h.logger.Warn("failed to announce event change", zap.String("action", action), zap.Error(err))
	}
}

func nonNil(events []models.Event) []models.Event {
	if events == nil {
		return []models.Event{}
	}
	return events
}
