// Package listing filters and partitions event lists for the discovery views.
package listing

import (
	"strings"
	"time"

	"github.com/gdg-garage/pulse-events/internal/models"
)

// Search keeps events whose title, category or any tag contains q, ignoring case.
// An empty query keeps everything.
func Search(events []models.Event, q string) []models.Event {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return events
	}

	matched := make([]models.Event, 0, len(events))
	for _, e := range events {
		if matches(e, q) {
			matched = append(matched, e)
		}
	}
	return matched
}

func matches(e models.Event, q string) bool {
	if strings.Contains(strings.ToLower(e.Title), q) || strings.Contains(strings.ToLower(e.Category), q) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Partition splits events into those on the calendar day of now and those on a
// later day. Past events are dropped. Order is preserved.
func Partition(events []models.Event, now time.Time) (today, upcoming []models.Event) {
	today = []models.Event{}
	upcoming = []models.Event{}
	day := Day(now)
	for _, e := range events {
		switch eventDay := models.Date(e.EventDate.UTC().Date()); {
		case eventDay.Equal(day):
			today = append(today, e)
		case eventDay.After(day):
			upcoming = append(upcoming, e)
		}
	}
	return today, upcoming
}

// Day is the calendar day of t in t's location, as stored on events.
func Day(t time.Time) time.Time {
	return models.Date(t.Date())
}
