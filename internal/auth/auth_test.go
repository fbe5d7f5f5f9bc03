package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/pulse-events/internal/config"
	"github.com/gdg-garage/pulse-events/internal/database"
	"github.com/gdg-garage/pulse-events/internal/models"
	"gorm.io/gorm"
)

func setupHandler(t *testing.T) (*AuthHandler, *gorm.DB) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	cfg := &config.Config{JWTSecret: "test-secret"}
	return NewAuthHandler(cfg, db, nil, nil), db
}

func createUser(t *testing.T, db *gorm.DB, discordID string) models.User {
	t.Helper()
	user := models.User{
		DiscordID: discordID,
		Username:  "testuser",
		Email:     "test@example.com",
		Avatar:    "avatar_url",
	}
	user.Profile.FullName = "Test User"
	user.Profile.PhoneNumber = "+15550100"
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestHandleMe(t *testing.T) {
	handler, db := setupHandler(t)
	user := createUser(t, db, "123456")
	if err := handler.SetRole(context.Background(), user.ID, models.RoleStudent); err != nil {
		t.Fatalf("SetRole: %v", err)
	}

	t.Run("Authenticated", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), UserIDKey, user.ID)
		resp, err := handler.HandleMe(ctx, &struct{}{})
		if err != nil {
			t.Fatalf("HandleMe returned error: %v", err)
		}

		if resp.Body.Username != user.Username {
			t.Errorf("expected username %s, got %s", user.Username, resp.Body.Username)
		}
		if resp.Body.Email != user.Email {
			t.Errorf("expected email %s, got %s", user.Email, resp.Body.Email)
		}
		if resp.Body.Role != models.RoleStudent {
			t.Errorf("expected role student, got %s", resp.Body.Role)
		}
		if !resp.Body.ProfileComplete {
			t.Error("expected profile to be complete")
		}
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		_, err := handler.HandleMe(context.Background(), &struct{}{})
		var se huma.StatusError
		if !errors.As(err, &se) || se.GetStatus() != 401 {
			t.Fatalf("expected 401, got %v", err)
		}
	})

	t.Run("UnknownUser", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), UserIDKey, uint(999))
		_, err := handler.HandleMe(ctx, &struct{}{})
		var se huma.StatusError
		if !errors.As(err, &se) || se.GetStatus() != 404 {
			t.Fatalf("expected 404, got %v", err)
		}
	})
}

func TestRoles(t *testing.T) {
	handler, db := setupHandler(t)
	ctx := context.Background()

	t.Run("NoRoleIsNone", func(t *testing.T) {
		user := createUser(t, db, "none-1")
		role, err := handler.RoleOf(ctx, user.ID)
		if err != nil {
			t.Fatal(err)
		}
		if role != models.RoleNone {
			t.Errorf("expected none, got %s", role)
		}
	})

	t.Run("SyncWithoutDiscordDefaultsToStudent", func(t *testing.T) {
		user := createUser(t, db, "sync-1")
		role, err := handler.SyncRole(ctx, user)
		if err != nil {
			t.Fatal(err)
		}
		if role != models.RoleStudent {
			t.Errorf("expected student, got %s", role)
		}
		ok, err := handler.HasRole(ctx, user.ID, models.RoleStudent)
		if err != nil || !ok {
			t.Errorf("expected stored student role, got %v, %v", ok, err)
		}
	})

	t.Run("SyncKeepsExistingEditor", func(t *testing.T) {
		user := createUser(t, db, "sync-2")
		if err := handler.SetRole(ctx, user.ID, models.RoleEditor); err != nil {
			t.Fatal(err)
		}
		role, err := handler.SyncRole(ctx, user)
		if err != nil {
			t.Fatal(err)
		}
		if role != models.RoleEditor {
			t.Errorf("expected editor to be kept, got %s", role)
		}
	})

	t.Run("SetRoleOverwrites", func(t *testing.T) {
		user := createUser(t, db, "set-1")
		if err := handler.SetRole(ctx, user.ID, models.RoleEditor); err != nil {
			t.Fatal(err)
		}
		if err := handler.SetRole(ctx, user.ID, models.RoleStudent); err != nil {
			t.Fatal(err)
		}
		var count int64
		db.Model(&models.UserRole{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected one role row, got %d", count)
		}
		role, _ := handler.RoleOf(ctx, user.ID)
		if role != models.RoleStudent {
			t.Errorf("expected student, got %s", role)
		}
	})

	t.Run("ResolveBuildsCaller", func(t *testing.T) {
		user := createUser(t, db, "resolve-1")
		if err := handler.SetRole(ctx, user.ID, models.RoleStudent); err != nil {
			t.Fatal(err)
		}
		identity, err := handler.Resolve(ctx, user.ID)
		if err != nil {
			t.Fatal(err)
		}
		caller := identity.Caller()
		if caller.UserID != user.ID || caller.Role != models.RoleStudent {
			t.Errorf("unexpected caller %+v", caller)
		}
		if caller.Email != "test@example.com" || caller.Phone != "+15550100" {
			t.Errorf("expected contact details on caller, got %+v", caller)
		}
	})

	t.Run("ResolveUnknownUser", func(t *testing.T) {
		if _, err := handler.Resolve(ctx, 4242); !errors.Is(err, models.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}
