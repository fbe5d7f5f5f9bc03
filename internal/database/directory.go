package database

import (
	"context"
	"errors"
	"time"

	"github.com/gdg-garage/pulse-events/internal/models"
	"gorm.io/gorm"
)

// Directory is the store behind events and their registrations. It owns the
// current_participants counter: every registration write bumps it in the same
// transaction as the insert.
type Directory struct {
	db     *gorm.DB
	strict bool
}

// NewDirectory returns a Directory. With strict set, the counter increment is
// conditional on remaining capacity and a full event rejects the insert.
func NewDirectory(db *gorm.DB, strict bool) *Directory {
	return &Directory{db: db, strict: strict}
}

func (d *Directory) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	err := d.db.WithContext(ctx).Where("id = ?", id).Take(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (d *Directory) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := d.db.WithContext(ctx).Order("event_date asc, time_start asc").Find(&events).Error
	return events, err
}

func (d *Directory) ListEventsByOwner(ctx context.Context, editorID uint) ([]models.Event, error) {
	var events []models.Event
	err := d.db.WithContext(ctx).Where("created_by = ?", editorID).
		Order("event_date asc, time_start asc").Find(&events).Error
	return events, err
}

func (d *Directory) ListEventsByIDs(ctx context.Context, ids []string) ([]models.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var events []models.Event
	err := d.db.WithContext(ctx).Where("id IN ?", ids).
		Order("event_date asc, time_start asc").Find(&events).Error
	return events, err
}

func (d *Directory) CreateEvent(ctx context.Context, event *models.Event) error {
	event.CurrentParticipants = 0
	return d.db.WithContext(ctx).Create(event).Error
}

// UpdateEvent writes the editable fields of event. The participant counter is
// left alone so a stale copy cannot roll it back, and the update only applies
// while max_participants stays at or above the stored counter.
func (d *Directory) UpdateEvent(ctx context.Context, event *models.Event) error {
	res := d.db.WithContext(ctx).Model(event).
		Where("current_participants <= ?", event.MaxParticipants).
		Select("title", "description", "category", "tags", "event_date", "time_start",
			"time_end", "location", "max_participants", "amount_to_pay", "image_url").
		Updates(event)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := d.db.WithContext(ctx).Model(&models.Event{}).Where("id = ?", event.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return models.ErrEventNotFound
	}
	return models.ErrCapacityBelowParticipants
}

// DeleteEvent removes the event together with its RSVPs and reminder logs.
func (d *Directory) DeleteEvent(ctx context.Context, id string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rsvpIDs := tx.Model(&models.RSVP{}).Select("id").Where("event_id = ?", id)
		if err := tx.Where("rsvp_id IN (?)", rsvpIDs).Delete(&models.ReminderLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.RSVP{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Event{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrEventNotFound
		}
		return nil
	})
}

func (d *Directory) HasRegistration(ctx context.Context, userID uint, eventID string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&models.RSVP{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).Count(&count).Error
	return count > 0, err
}

func (d *Directory) GetRegistration(ctx context.Context, userID uint, eventID string) (*models.RSVP, error) {
	var rsvp models.RSVP
	err := d.db.WithContext(ctx).Where("user_id = ? AND event_id = ?", userID, eventID).Take(&rsvp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrRegistrationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rsvp, nil
}

// CreateRegistration inserts rsvp and bumps the event counter atomically.
// A uniqueness violation is reported as ErrAlreadyRegistered; in strict mode
// a full event is reported as ErrEventFull and nothing is written.
func (d *Directory) CreateRegistration(ctx context.Context, rsvp *models.RSVP) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rsvp).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return models.ErrAlreadyRegistered
			}
			return err
		}

		q := tx.Model(&models.Event{}).Where("id = ?", rsvp.EventID)
		if d.strict {
			q = q.Where("current_participants < max_participants")
		}
		res := q.UpdateColumn("current_participants", gorm.Expr("current_participants + 1"))
		if res.Error != nil {
			return res.Error
		}
		if d.strict && res.RowsAffected == 0 {
			return models.ErrEventFull
		}
		return nil
	})
}

func (d *Directory) ListRegistrationsByUser(ctx context.Context, userID uint) ([]models.RSVP, error) {
	var rsvps []models.RSVP
	err := d.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&rsvps).Error
	return rsvps, err
}

type ReminderCandidate struct {
	RSVPID    uint      `gorm:"column:rsvp_id"`
	Phone     string    `gorm:"column:phone"`
	Title     string    `gorm:"column:title"`
	EventDate time.Time `gorm:"column:event_date"`
	TimeStart string    `gorm:"column:time_start"`
	Location  string    `gorm:"column:location"`
}

// ReminderCandidates lists RSVPs for events dated in [from, to) whose holder has a
// phone number and has not been reminded yet.
func (d *Directory) ReminderCandidates(ctx context.Context, from, to time.Time) ([]ReminderCandidate, error) {
	var out []ReminderCandidate
	err := d.db.WithContext(ctx).Table("rsvps").
		Select("rsvps.id AS rsvp_id, users.phone_number AS phone, events.title, events.event_date, events.time_start, events.location").
		Joins("JOIN events ON events.id = rsvps.event_id").
		Joins("JOIN users ON users.id = rsvps.user_id AND users.deleted_at IS NULL").
		Joins("LEFT JOIN reminder_logs ON reminder_logs.rsvp_id = rsvps.id").
		Where("events.event_date >= ? AND events.event_date < ?", from, to).
		Where("users.phone_number <> ''").
		Where("reminder_logs.id IS NULL").
		Order("rsvps.id").
		Scan(&out).Error
	return out, err
}

func (d *Directory) MarkReminderSent(ctx context.Context, rsvpID uint) error {
	err := d.db.WithContext(ctx).Create(&models.ReminderLog{RSVPID: rsvpID, SentAt: time.Now()}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}
