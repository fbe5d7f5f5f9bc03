package auth

import (
	"context"
	"errors"
	"slices"

	"github.com/gdg-garage/pulse-events/internal/models"
	"github.com/gdg-garage/pulse-events/internal/registration"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Identity is an authenticated user together with their role.
type Identity struct {
	User models.User
	Role models.Role
}

func (i Identity) Caller() registration.Caller {
	return registration.Caller{
		UserID: i.User.ID,
		Role:   i.Role,
		Email:  i.User.Email,
		Phone:  i.User.PhoneNumber,
	}
}

// Resolve loads the user behind userID and their role.
func (h *AuthHandler) Resolve(ctx context.Context, userID uint) (*Identity, error) {
	var user models.User
	err := h.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	role, err := h.RoleOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Identity{User: user, Role: role}, nil
}

// RoleOf returns RoleNone for users without a role row.
func (h *AuthHandler) RoleOf(ctx context.Context, userID uint) (models.Role, error) {
	var roles []models.UserRole
	if err := h.db.WithContext(ctx).Where("user_id = ?", userID).Limit(1).Find(&roles).Error; err != nil {
		return models.RoleNone, err
	}
	if len(roles) == 0 {
		return models.RoleNone, nil
	}
	return models.ParseRole(string(roles[0].Role)), nil
}

func (h *AuthHandler) HasRole(ctx context.Context, userID uint, role models.Role) (bool, error) {
	current, err := h.RoleOf(ctx, userID)
	if err != nil {
		return false, err
	}
	return current == role, nil
}

func (h *AuthHandler) SetRole(ctx context.Context, userID uint, role models.Role) error {
	var ur models.UserRole
	return h.db.WithContext(ctx).
		Where(models.UserRole{UserID: userID}).
		Assign(models.UserRole{Role: role}).
		FirstOrCreate(&ur).Error
}

// SyncRole derives the role from the Discord guild: holders of the editor role
// become editors, everyone else is a student. If Discord cannot be asked, an
// existing role is kept.
func (h *AuthHandler) SyncRole(ctx context.Context, user models.User) (models.Role, error) {
	current, err := h.RoleOf(ctx, user.ID)
	if err != nil {
		return models.RoleNone, err
	}

	role := models.RoleStudent
	if h.canCheckEditors() {
		isEditor, err := h.CheckRole(user.DiscordID, h.cfg.DiscordEditorRoleID)
		switch {
		case err != nil:
			h.logger.Warn("failed to check discord editor role", zap.Uint("user_id", user.ID), zap.Error(err))
			if current != models.RoleNone {
				role = current
			}
		case isEditor:
			role = models.RoleEditor
		}
	} else if current != models.RoleNone {
		role = current
	}

	if role != current {
		if err := h.SetRole(ctx, user.ID, role); err != nil {
			return models.RoleNone, err
		}
	}
	return role, nil
}

func (h *AuthHandler) canCheckEditors() bool {
	return h.session != nil && h.cfg.DiscordGuildID != "" && h.cfg.DiscordEditorRoleID != ""
}

// CheckRole reports whether the guild member holds the given Discord role.
func (h *AuthHandler) CheckRole(discordUserID, roleID string) (bool, error) {
	member, err := h.session.GuildMember(h.cfg.DiscordGuildID, discordUserID)
	if err != nil {
		return false, err
	}
	return slices.Contains(member.Roles, roleID), nil
}
