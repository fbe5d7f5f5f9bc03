package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event.EventDate is a calendar date stored as midnight UTC.
type Event struct {
	ID                  string    `json:"id" gorm:"primaryKey"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
	Title               string    `json:"title"`
	Description         string    `json:"description,omitempty"`
	Category            string    `json:"category,omitempty"`
	Tags                []string  `json:"tags" gorm:"serializer:json"`
	EventDate           time.Time `json:"event_date" gorm:"index"`
	TimeStart           string    `json:"time_start"`
	TimeEnd             string    `json:"time_end"`
	Location            string    `json:"location"`
	MaxParticipants     int       `json:"max_participants"`
	CurrentParticipants int       `json:"current_participants"`
	AmountToPay         float64   `json:"amount_to_pay"`
	ImageURL            string    `json:"image_url,omitempty"`
	CreatedBy           uint      `json:"created_by" gorm:"index"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

func (e Event) IsFull() bool {
	return e.CurrentParticipants >= e.MaxParticipants
}

// Date builds the stored representation of a calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
