package handlers

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/pulse-events/internal/auth"
	"github.com/gdg-garage/pulse-events/internal/models"
	"gorm.io/gorm"
)

type ProfileHandler struct {
	db *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

type ProfileResponse struct {
	Body struct {
		Profile  models.Profile `json:"profile"`
		Complete bool           `json:"complete"`
	}
}

type UpdateProfileInput struct {
	Body struct {
		FullName            string     `json:"full_name" minLength:"1"`
		UniversityName      string     `json:"university_name,omitempty"`
		UniversityLocation  string     `json:"university_location,omitempty"`
		DegreeProgram       string     `json:"degree_program,omitempty"`
		YearOfStudy         string     `json:"year_of_study,omitempty" enum:"1st Year,2nd Year,3rd Year,4th Year,Graduate"`
		GraduationDate      *time.Time `json:"graduation_date,omitempty"`
		LanguageProficiency []string   `json:"language_proficiency,omitempty"`
		PhoneNumber         string     `json:"phone_number,omitempty" doc:"Used for SMS confirmations and reminders"`
	}
}

func (h *ProfileHandler) HandleGet(ctx context.Context, input *struct{}) (*ProfileResponse, error) {
	user, err := h.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return profileResponse(user.Profile), nil
}

func (h *ProfileHandler) HandleUpdate(ctx context.Context, input *UpdateProfileInput) (*ProfileResponse, error) {
	user, err := h.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	body := input.Body
	if strings.TrimSpace(body.FullName) == "" {
		return nil, huma.Error400BadRequest("full_name is required")
	}
	if body.YearOfStudy != "" && !slices.Contains(models.YearsOfStudy, body.YearOfStudy) {
		return nil, huma.Error400BadRequest("year_of_study must be one of " + strings.Join(models.YearsOfStudy, ", "))
	}

	languages := make([]string, 0, len(body.LanguageProficiency))
	for _, l := range body.LanguageProficiency {
		if l = strings.TrimSpace(l); l != "" {
			languages = append(languages, l)
		}
	}

	user.Profile = models.Profile{
		FullName:            strings.TrimSpace(body.FullName),
		UniversityName:      strings.TrimSpace(body.UniversityName),
		UniversityLocation:  strings.TrimSpace(body.UniversityLocation),
		DegreeProgram:       strings.TrimSpace(body.DegreeProgram),
		YearOfStudy:         body.YearOfStudy,
		GraduationDate:      body.GraduationDate,
		LanguageProficiency: languages,
		PhoneNumber:         strings.TrimSpace(body.PhoneNumber),
	}
	if err := h.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to save profile")
	}
	return profileResponse(user.Profile), nil
}

func (h *ProfileHandler) currentUser(ctx context.Context) (*models.User, error) {
	userID, ok := auth.UserIDFrom(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	var user models.User
	err := h.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, huma.Error404NotFound("User not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load user")
	}
	return &user, nil
}

func profileResponse(p models.Profile) *ProfileResponse {
	resp := &ProfileResponse{}
	resp.Body.Profile = p
	resp.Body.Complete = p.Complete()
	return resp
}
