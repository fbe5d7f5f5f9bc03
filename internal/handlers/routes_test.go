package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gdg-garage/pulse-events/internal/auth"
	"github.com/gdg-garage/pulse-events/internal/models"
	"github.com/go-chi/chi/v5"
)

func TestRoutes(t *testing.T) {
	env := setupEnv(t)
	editorCtx := env.user(t, "editor-1", models.RoleEditor, "")
	studentCtx := env.user(t, "student-1", models.RoleStudent, "")
	event := env.event(t, editorCtx, "2030-01-12", 1)

	r := chi.NewRouter()
	api := humatest.Wrap(t, RegisterRoutes(r, env.auth, env.events, env.registration, env.profiles))

	studentID, _ := auth.UserIDFrom(studentCtx)
	token, err := env.auth.GenerateToken(studentID)
	if err != nil {
		t.Fatal(err)
	}
	bearer := "Authorization: Bearer " + token

	t.Run("Health", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
		if rr.Code != http.StatusOK || rr.Body.String() != "OK" {
			t.Errorf("unexpected health response: %d %q", rr.Code, rr.Body.String())
		}
	})

	t.Run("RequiresAuth", func(t *testing.T) {
		resp := api.Get("/events")
		if resp.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", resp.Code)
		}
	})

	t.Run("ListEvents", func(t *testing.T) {
		resp := api.Get("/events", bearer)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
		}
		if !strings.Contains(resp.Body.String(), event.ID) {
			t.Errorf("expected event in body: %s", resp.Body.String())
		}
	})

	t.Run("RSVP", func(t *testing.T) {
		resp := api.Post("/events/"+event.ID+"/rsvp", bearer)
		if resp.Code >= 300 {
			t.Fatalf("expected success, got %d: %s", resp.Code, resp.Body.String())
		}

		resp = api.Post("/events/"+event.ID+"/rsvp", bearer)
		if resp.Code != http.StatusConflict {
			t.Errorf("expected 409 on repeat, got %d", resp.Code)
		}
	})

	t.Run("Confirmation", func(t *testing.T) {
		resp := api.Get("/registrations/"+event.ID+"/confirmation", "Cookie: "+auth.CookieName+"="+token)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
		}
		if !strings.Contains(resp.Body.String(), "Go Workshop") {
			t.Errorf("expected title in confirmation: %s", resp.Body.String())
		}
	})

	t.Run("StudentCannotCreate", func(t *testing.T) {
		resp := api.Post("/events", bearer, map[string]any{
			"title":            "Hackathon",
			"event_date":       "2030-01-20",
			"time_start":       "09:00",
			"time_end":         "18:00",
			"location":         "Main Hall",
			"max_participants": 30,
		})
		if resp.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d: %s", resp.Code, resp.Body.String())
		}
	})
}
