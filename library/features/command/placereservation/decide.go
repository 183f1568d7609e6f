package placereservation

import (
	"fmt"
	"slices"

	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	msgBookNotFound        = "Libro no encontrado"
	msgBookOnLoan          = "Ya tiene este libro en préstamo"
	msgCopiesAvailable     = "El libro tiene copias disponibles, solicite un préstamo"
	msgTooManyReservations = "No puede tener más de %d reservas activas"
)

// Decide determines whether the reader can queue for the book.
//
// Business Rules:
//
//	GIVEN: a book in the catalog without free copies
//	WHEN: PlaceReservation command is received
//	THEN: ReservationPlaced event is generated, the reader joins the end of the queue
//	ERROR: "Libro no encontrado" if the book is not in the catalog
//	ERROR: PlacingReservationFailed if the reader has the book on loan
//	ERROR: PlacingReservationFailed if the book has a free copy
//	ERROR: PlacingReservationFailed if the reader reached the maximum of active reservations
//	IDEMPOTENCY: If the reservation exists or the reader already waits for or holds the book, no event generated
func Decide(history core.DomainEvents, command Command, policy core.Policy) core.DecisionResult {
	c := core.ProjectCirculation(history, command.BookID, command.OccurredAt, policy)

	if !c.InCatalog {
		return core.RejectedDecision(core.NotFound(msgBookNotFound))
	}

	if _, exists := c.Reservations[command.ReservationID]; exists {
		return core.IdempotentDecision()
	}

	if _, active := c.ActiveReservationOf(command.ReaderID); active {
		return core.IdempotentDecision()
	}

	if c.HasActiveLoanOf(command.ReaderID) {
		return failed(command, core.Conflict(msgBookOnLoan))
	}

	if c.FreeCopies() > 0 {
		return failed(command, core.Conflict(msgCopiesAvailable))
	}

	if countActiveReservations(history, command, policy) >= policy.MaxActiveReservations {
		return failed(command, core.Conflict(fmt.Sprintf(msgTooManyReservations, policy.MaxActiveReservations)))
	}

	return core.SuccessDecision(
		core.BuildReservationPlaced(command.ReservationID, command.ReaderID, command.BookID, command.OccurredAt),
	)
}

func failed(command Command, err error) core.DecisionResult {
	return core.ErrorDecision(
		core.BuildPlacingReservationFailed(
			command.ReservationID,
			command.ReaderID,
			command.BookID,
			err.Error(),
			command.OccurredAt,
		),
		err,
	)
}

func countActiveReservations(history core.DomainEvents, command Command, policy core.Policy) int {
	count := 0

	for _, bookID := range ReservedBookIDs(history, command.ReaderID) {
		c := core.ProjectCirculation(history, bookID, command.OccurredAt, policy)
		if _, active := c.ActiveReservationOf(command.ReaderID); active {
			count++
		}
	}

	return count
}

// ReservedBookIDs returns the books the reader ever placed a reservation for, in order of first placement.
func ReservedBookIDs(history core.DomainEvents, readerID core.UserIDString) []core.BookIDString {
	var bookIDs []core.BookIDString

	for _, event := range history {
		if e, ok := event.(core.ReservationPlaced); ok && e.ReaderID == readerID && !slices.Contains(bookIDs, e.BookID) {
			bookIDs = append(bookIDs, e.BookID)
		}
	}

	return bookIDs
}

// BuildReaderFilter selects the reservations of the reader.
func BuildReaderFilter(readerID core.UserIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.ReservationPlacedEventType, core.ReservationCanceledEventType).
		AndAnyPredicateOf(eventstore.P("ReaderID", readerID)).
		Finalize()
}

// BuildEventFilter selects the reservations of the reader and the circulation of the given books.
func BuildEventFilter(readerID core.UserIDString, bookIDs []core.BookIDString) eventstore.Filter {
	bookPredicates := make([]eventstore.FilterPredicate, 0, len(bookIDs))
	for _, bookID := range bookIDs {
		bookPredicates = append(bookPredicates, eventstore.P("BookID", bookID))
	}

	readerItem := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.ReservationPlacedEventType, core.ReservationCanceledEventType).
		AndAnyPredicateOf(eventstore.P("ReaderID", readerID))

	if len(bookPredicates) == 0 {
		return readerItem.Finalize()
	}

	circulationEventTypes := core.CirculationEventTypes()

	return readerItem.
		OrMatching().
		AnyEventTypeOf(circulationEventTypes[0], circulationEventTypes[1:]...).
		AndAnyPredicateOf(bookPredicates[0], bookPredicates[1:]...).
		Finalize()
}
