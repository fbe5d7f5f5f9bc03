package handlers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/pulse-events/internal/auth"
	"github.com/gdg-garage/pulse-events/internal/config"
	"github.com/gdg-garage/pulse-events/internal/database"
	"github.com/gdg-garage/pulse-events/internal/models"
	"github.com/gdg-garage/pulse-events/internal/registration"
	"gorm.io/gorm"
)

// today is the fixed "now" of every handler test.
var today = time.Date(2030, time.January, 10, 9, 0, 0, 0, time.UTC)

type recordingDispatcher struct {
	mu   sync.Mutex
	sent []string
}

func (d *recordingDispatcher) Dispatch(_ context.Context, to, message string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, to+": "+message)
	return nil
}

func (d *recordingDispatcher) messages() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.sent...)
}

type testEnv struct {
	db           *gorm.DB
	directory    *database.Directory
	auth         *auth.AuthHandler
	workflow     *registration.Workflow
	dispatcher   *recordingDispatcher
	events       *EventHandler
	registration *RegistrationHandler
	profiles     *ProfileHandler
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	env := &testEnv{db: db, dispatcher: &recordingDispatcher{}}
	env.directory = database.NewDirectory(db, true)
	env.auth = auth.NewAuthHandler(&config.Config{JWTSecret: "test-secret"}, db, nil, nil)
	env.workflow = registration.NewWorkflow(env.directory, env.dispatcher, nil)
	env.events = NewEventHandler(env.directory, env.auth, nil, time.UTC, nil)
	env.events.now = func() time.Time { return today }
	env.registration = NewRegistrationHandler(env.directory, env.workflow, env.auth, nil)
	env.profiles = NewProfileHandler(db)
	return env
}

func (env *testEnv) user(t *testing.T, discordID string, role models.Role, phone string) context.Context {
	t.Helper()
	user := models.User{DiscordID: discordID, Username: discordID, Email: discordID + "@example.com"}
	user.Profile.FullName = discordID
	user.Profile.PhoneNumber = phone
	if err := env.db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if role != models.RoleNone {
		if err := env.auth.SetRole(context.Background(), user.ID, role); err != nil {
			t.Fatalf("failed to set role: %v", err)
		}
	}
	return context.WithValue(context.Background(), auth.UserIDKey, user.ID)
}

func (env *testEnv) event(t *testing.T, editorCtx context.Context, date string, max int) models.Event {
	t.Helper()
	input := &CreateEventInput{Body: validFields(date)}
	input.Body.MaxParticipants = max
	resp, err := env.events.HandleCreate(editorCtx, input)
	if err != nil {
		t.Fatalf("HandleCreate returned error: %v", err)
	}
	return resp.Body
}

func validFields(date string) EventFields {
	return EventFields{
		Title:           "Go Workshop",
		Description:     "Hands-on session",
		Category:        "Tech",
		Tags:            []string{" golang ", "", "backend"},
		EventDate:       date,
		TimeStart:       "14:00",
		TimeEnd:         "16:00",
		Location:        "Lab 3",
		MaxParticipants: 50,
	}
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()
	var se huma.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected HTTP %d error, got %v", want, err)
	}
	if se.GetStatus() != want {
		t.Fatalf("expected HTTP %d, got %d (%v)", want, se.GetStatus(), err)
	}
}
