package readmodel

import (
	"context"
	"slices"

	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/shell"
)

// ReaderEventTypes are the event types that carry a ReaderID.
func ReaderEventTypes() []string {
	return []string{
		core.LoanRequestedEventType,
		core.LoanRequestApprovedEventType,
		core.LoanRequestRejectedEventType,
		core.LoanStartedEventType,
		core.LoanRenewedEventType,
		core.BookReturnedEventType,
		core.FineAssessedEventType,
		core.FinePaidEventType,
		core.FineWaivedEventType,
		core.ReservationPlacedEventType,
		core.ReservationCanceledEventType,
	}
}

// BuildReaderFilter selects the user events of the reader and every event that carries their ReaderID.
func BuildReaderFilter(readerID core.UserIDString) eventstore.Filter {
	userEventTypes := UserEventTypes()
	readerEventTypes := ReaderEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(userEventTypes[0], userEventTypes[1:]...).
		AndAnyPredicateOf(eventstore.P("UserID", readerID)).
		OrMatching().
		AnyEventTypeOf(readerEventTypes[0], readerEventTypes[1:]...).
		AndAnyPredicateOf(eventstore.P("ReaderID", readerID)).
		Finalize()
}

// BuildBooksFilter selects the circulation of the given books, renewals included.
func BuildBooksFilter(bookIDs []core.BookIDString) eventstore.Filter {
	predicates := make([]eventstore.FilterPredicate, 0, len(bookIDs))
	for _, bookID := range bookIDs {
		predicates = append(predicates, eventstore.P("BookID", bookID))
	}

	eventTypes := append(core.CirculationEventTypes(), core.LoanRenewedEventType)

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(eventTypes[0], eventTypes[1:]...).
		AndAnyPredicateOf(predicates[0], predicates[1:]...).
		Finalize()
}

// BookIDsTouchedBy returns the books the reader requested, borrowed or reserved.
func BookIDsTouchedBy(history core.DomainEvents) []core.BookIDString {
	var bookIDs []core.BookIDString

	add := func(bookID core.BookIDString) {
		if !slices.Contains(bookIDs, bookID) {
			bookIDs = append(bookIDs, bookID)
		}
	}

	for _, event := range history {
		switch e := event.(type) {
		case core.LoanRequested:
			for _, bookID := range e.BookIDs {
				add(bookID)
			}
		case core.LoanStarted:
			add(e.BookID)
		case core.ReservationPlaced:
			add(e.BookID)
		}
	}

	return bookIDs
}

// LoadReaderHistory loads the events of the reader merged with the circulation of the books they touched,
// ordered by sequence number. Queue positions and hold expiry depend on the events of other readers,
// so the circulation is needed in full.
func LoadReaderHistory(
	ctx context.Context,
	eventStore shell.QueriesEvents,
	readerID core.UserIDString,
) (core.DomainEvents, error) {

	readerEvents, _, err := eventStore.Query(ctx, BuildReaderFilter(readerID))
	if err != nil {
		return nil, err
	}

	readerHistory, err := shell.DomainEventsFrom(readerEvents)
	if err != nil {
		return nil, err
	}

	bookIDs := BookIDsTouchedBy(readerHistory)
	if len(bookIDs) == 0 {
		return readerHistory, nil
	}

	bookEvents, _, err := eventStore.Query(ctx, BuildBooksFilter(bookIDs))
	if err != nil {
		return nil, err
	}

	merged := mergeBySequence(readerEvents, bookEvents)

	return shell.DomainEventsFrom(merged)
}

// mergeBySequence merges two query results ordered by sequence number and drops events present in both.
func mergeBySequence(a, b eventstore.StorableEvents) eventstore.StorableEvents {
	merged := make(eventstore.StorableEvents, 0, len(a)+len(b))
	i, j := 0, 0

	for i < len(a) && j < len(b) {
		switch {
		case a[i].SequenceNumber < b[j].SequenceNumber:
			merged = append(merged, a[i])
			i++
		case a[i].SequenceNumber > b[j].SequenceNumber:
			merged = append(merged, b[j])
			j++
		default:
			merged = append(merged, a[i])
			i++
			j++
		}
	}

	merged = append(merged, a[i:]...)

	return append(merged, b[j:]...)
}
