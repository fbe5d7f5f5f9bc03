package models

import "time"

// RSVP is a student's registration for one event. Rows are never updated.
type RSVP struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_rsvp_user_event;not null"`
	EventID   string    `json:"event_id" gorm:"uniqueIndex:idx_rsvp_user_event;index;not null"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (RSVP) TableName() string {
	return "rsvps"
}

// ReminderLog records that the day-before reminder went out for an RSVP.
type ReminderLog struct {
	ID     uint `gorm:"primarykey"`
	RSVPID uint `gorm:"column:rsvp_id;uniqueIndex"`
	SentAt time.Time
}
