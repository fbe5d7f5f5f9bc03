package registration

import (
	"context"
	"sync"

	"github.com/gdg-garage/pulse-events/internal/models"
)

type rsvpKey struct {
	userID  uint
	eventID string
}

type fakeDirectory struct {
	mu        sync.Mutex
	rsvps     map[rsvpKey]models.RSVP
	lookupErr error
	writeErr  error
	writes    int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{rsvps: map[rsvpKey]models.RSVP{}}
}

func (d *fakeDirectory) HasRegistration(_ context.Context, userID uint, eventID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.lookupErr != nil {
		return false, d.lookupErr
	}
	_, ok := d.rsvps[rsvpKey{userID, eventID}]
	return ok, nil
}

func (d *fakeDirectory) CreateRegistration(_ context.Context, rsvp *models.RSVP) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.writes++
	if d.writeErr != nil {
		return d.writeErr
	}
	key := rsvpKey{rsvp.UserID, rsvp.EventID}
	if _, ok := d.rsvps[key]; ok {
		return models.ErrAlreadyRegistered
	}
	d.rsvps[key] = *rsvp
	return nil
}

func (d *fakeDirectory) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.rsvps)
}

type sentMessage struct {
	to      string
	message string
	// number of RSVPs the directory held when the dispatch started
	rsvpsAtDispatch int
}

type fakeDispatcher struct {
	mu        sync.Mutex
	directory *fakeDirectory
	sent      []sentMessage
	err       error
	release   chan struct{}
}

func (d *fakeDispatcher) Dispatch(ctx context.Context, to, message string) error {
	seen := 0
	if d.directory != nil {
		seen = d.directory.count()
	}
	if d.release != nil {
		<-d.release
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, sentMessage{to: to, message: message, rsvpsAtDispatch: seen})
	return d.err
}

func (d *fakeDispatcher) messages() []sentMessage {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]sentMessage(nil), d.sent...)
}
