package notify

import (
	"context"
	"time"

	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/shell"
)

// NewlyReady returns the reservations of bookID that are ready after appended but were not before.
func NewlyReady(
	history core.DomainEvents,
	appended core.DomainEvents,
	bookID core.BookIDString,
	at time.Time,
	policy core.Policy,
) []core.Reservation {

	before := core.ProjectCirculation(history, bookID, at, policy)
	after := core.ProjectCirculation(append(append(core.DomainEvents{}, history...), appended...), bookID, at, policy)

	var ready []core.Reservation
	for _, r := range after.Held {
		if previous, ok := before.Reservations[r.ReservationID]; ok && previous.Status == core.ReservationStatusReady {
			continue
		}

		ready = append(ready, *r)
	}

	return ready
}

// NotifyReaders looks up the readers of the ready reservations and sends one notice each.
func NotifyReaders(
	ctx context.Context,
	eventStore shell.QueriesEvents,
	notifier Notifier,
	bookTitle string,
	ready []core.Reservation,
) error {

	if notifier == nil || len(ready) == 0 {
		return nil
	}

	predicates := make([]eventstore.FilterPredicate, 0, len(ready))
	for _, r := range ready {
		predicates = append(predicates, eventstore.P("UserID", r.ReaderID))
	}

	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.UserRegisteredEventType, core.UserProfileUpdatedEventType).
		AndAnyPredicateOf(predicates[0], predicates[1:]...).
		Finalize()

	history, _, err := shell.LoadHistory(ctx, eventStore, filter)
	if err != nil {
		return err
	}

	type contact struct {
		email string
		name  string
	}

	contacts := make(map[core.UserIDString]contact)
	for _, event := range history {
		switch e := event.(type) {
		case core.UserRegistered:
			contacts[e.UserID] = contact{email: e.Email, name: e.Profile.DisplayName()}
		case core.UserProfileUpdated:
			if c, ok := contacts[e.UserID]; ok {
				c.name = e.Profile.DisplayName()
				contacts[e.UserID] = c
			}
		}
	}

	for _, r := range ready {
		c := contacts[r.ReaderID]
		notifier.NotifyReservationReady(ctx, ReservationReadyNotice{
			ReaderID:  r.ReaderID,
			Email:     c.email,
			Name:      c.name,
			BookTitle: bookTitle,
			ReadyAt:   r.ReadyAt,
			ExpiresAt: r.ExpiresAt,
		})
	}

	return nil
}
