// Package helper contains fixtures and arrange/assert helpers shared by the feature tests.
package helper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/eventstore/memoryengine"
	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/shell"
)

func GivenUniqueID(t testing.TB) string {
	id, err := uuid.NewV7()
	require.NoError(t, err, "error in arranging test data")

	return id.String()
}

// GivenMemoryEventStore returns an empty in-memory event store.
func GivenMemoryEventStore() memoryengine.EventStore {
	return memoryengine.NewEventStore()
}

func ToStorable(t testing.TB, domainEvent core.DomainEvent) eventstore.StorableEvent {
	storableEvent, err := shell.StorableEventFrom(domainEvent, shell.EventMetadata{})
	require.NoError(t, err, "error in arranging test data")

	return storableEvent
}

// GivenEventsWereAppended appends events unconditionally.
func GivenEventsWereAppended(t testing.TB, es shell.EventStore, events ...core.DomainEvent) {
	t.Helper()

	ctx := context.Background()
	filter := eventstore.BuildEventFilter().MatchingAnyEvent()

	_, maxSequenceNumber, err := es.Query(ctx, filter)
	require.NoError(t, err, "error in arranging test data")

	storableEvents := make(eventstore.StorableEvents, 0, len(events))
	for _, event := range events {
		storableEvents = append(storableEvents, ToStorable(t, event))
	}

	require.NoError(t, es.Append(ctx, filter, maxSequenceNumber, storableEvents...), "error in arranging test data")
}

// AllEvents returns every event in the store, in append order.
func AllEvents(t testing.TB, es shell.QueriesEvents) core.DomainEvents {
	t.Helper()

	storableEvents, _, err := es.Query(context.Background(), eventstore.BuildEventFilter().MatchingAnyEvent())
	require.NoError(t, err)

	history, err := shell.DomainEventsFrom(storableEvents)
	require.NoError(t, err)

	return history
}

// EventsOfType returns the events of type E, in append order.
func EventsOfType[E core.DomainEvent](t testing.TB, es shell.QueriesEvents) []E {
	t.Helper()

	var matching []E
	for _, event := range AllEvents(t, es) {
		if e, ok := event.(E); ok {
			matching = append(matching, e)
		}
	}

	return matching
}

/*** fixtures ***/

func FixtureReaderRegistered(readerID string, email string, at time.Time) core.UserRegistered {
	return core.BuildUserRegistered(
		readerID,
		email,
		"$2a$04$fixture",
		core.RoleReader,
		core.Profile{FirstName: "Ana", PaternalSurname: "Ruiz", MaternalSurname: "Soto"},
		at,
	)
}

func FixtureLibrarianRegistered(librarianID string, at time.Time) core.UserRegistered {
	return core.BuildUserRegistered(
		librarianID,
		librarianID+"@biblioteca.test",
		"$2a$04$fixture",
		core.RoleLibrarian,
		core.Profile{FirstName: "Luis", PaternalSurname: "Pérez"},
		at,
	)
}

func FixtureBookAdded(bookID string, copies int, at time.Time) core.BookAddedToCatalog {
	return core.BuildBookAddedToCatalog(
		bookID,
		"isbn-"+bookID,
		"Cien años de soledad",
		[]string{"Gabriel García Márquez"},
		[]string{"Novela"},
		copies,
		at,
	)
}

func FixtureLoanRequested(requestID string, readerID string, at time.Time, bookIDs ...string) core.LoanRequested {
	return core.BuildLoanRequested(requestID, readerID, bookIDs, at)
}

func FixtureLoanStarted(requestID string, readerID string, bookID string, at time.Time, policy core.Policy) core.LoanStarted {
	return core.BuildLoanStarted(core.LoanIDFor(requestID, bookID), requestID, readerID, bookID, at.Add(policy.LoanPeriod), at)
}

func FixtureReservationPlaced(reservationID string, readerID string, bookID string, at time.Time) core.ReservationPlaced {
	return core.BuildReservationPlaced(reservationID, readerID, bookID, at)
}
