package auth

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/pulse-events/internal/models"
)

type MeResponse struct {
	Body struct {
		ID              uint           `json:"id"`
		Username        string         `json:"username"`
		Email           string         `json:"email"`
		Avatar          string         `json:"avatar"`
		Role            models.Role    `json:"role"`
		ProfileComplete bool           `json:"profile_complete"`
		Profile         models.Profile `json:"profile"`
	}
}

func (h *AuthHandler) HandleMe(ctx context.Context, input *struct{}) (*MeResponse, error) {
	userID, ok := UserIDFrom(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	identity, err := h.Resolve(ctx, userID)
	if errors.Is(err, models.ErrUserNotFound) {
		return nil, huma.Error404NotFound("User not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load user")
	}

	resp := &MeResponse{}
	resp.Body.ID = identity.User.ID
	resp.Body.Username = identity.User.Username
	resp.Body.Email = identity.User.Email
	resp.Body.Avatar = identity.User.Avatar
	resp.Body.Role = identity.Role
	resp.Body.ProfileComplete = identity.User.Profile.Complete()
	resp.Body.Profile = identity.User.Profile
	return resp, nil
}
