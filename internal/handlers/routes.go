package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/gdg-garage/pulse-events/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func secured(o *huma.Operation) {
	o.Security = []map[string][]string{{"cookieAuth": {}}, {"bearerAuth": {}}}
}

func RegisterRoutes(r chi.Router, authHandler *auth.AuthHandler, eventHandler *EventHandler, registrationHandler *RegistrationHandler, profileHandler *ProfileHandler) huma.API {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Initialize Huma API
	config := huma.DefaultConfig("Pulse Events API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: auth.CookieName,
		},
		"bearerAuth": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	api := humachi.New(r, config)
	api.UseMiddleware(authHandler.Middleware(api))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Auth routes
	r.Get("/auth/discord/login", authHandler.HandleLogin)
	r.Get("/auth/discord/callback", authHandler.HandleCallback)

	// Protected routes
	huma.Get(api, "/me", authHandler.HandleMe, secured)
	huma.Get(api, "/profile", profileHandler.HandleGet, secured)
	huma.Put(api, "/profile", profileHandler.HandleUpdate, secured)

	huma.Get(api, "/events", eventHandler.HandleList, secured)
	huma.Get(api, "/events/feed", eventHandler.HandleFeed, secured)
	huma.Get(api, "/events/{id}", eventHandler.HandleGet, secured)
	huma.Post(api, "/events", eventHandler.HandleCreate, secured)
	huma.Put(api, "/events/{id}", eventHandler.HandleUpdate, secured)
	huma.Delete(api, "/events/{id}", eventHandler.HandleDelete, secured)
	huma.Get(api, "/editor/events", eventHandler.HandleEditorList, secured)

	huma.Post(api, "/events/{id}/rsvp", registrationHandler.HandleRSVP, secured)
	huma.Get(api, "/registrations", registrationHandler.HandleList, secured)
	huma.Get(api, "/registrations/{event_id}/confirmation", registrationHandler.HandleConfirmation, secured)

	return api
}
