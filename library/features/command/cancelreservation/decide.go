package cancelreservation

import (
	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	msgReservationNotFound = "Reserva no encontrada"
	msgReservationClosed   = "La reserva ya no está activa"
)

// Decide determines whether the reservation can be canceled.
//
// Business Rules:
//
//	GIVEN: a waiting or ready reservation of the reader
//	WHEN: CancelReservation command is received
//	THEN: ReservationCanceled event is generated
//	ERROR: "Reserva no encontrada" if the reservation does not exist or belongs to another reader
//	ERROR: "La reserva ya no está activa" if the reservation was completed or expired
//	IDEMPOTENCY: If the reservation was already canceled, no event generated (no-op)
func Decide(history core.DomainEvents, command Command, policy core.Policy) core.DecisionResult {
	bookID := BookIDOfReservation(history, command.ReservationID)
	c := core.ProjectCirculation(history, bookID, command.OccurredAt, policy)

	r, found := c.Reservations[command.ReservationID]
	if !found || r.ReaderID != command.ReaderID {
		return core.RejectedDecision(core.NotFound(msgReservationNotFound))
	}

	switch r.Status {
	case core.ReservationStatusCanceled:
		return core.IdempotentDecision()
	case core.ReservationStatusCompleted, core.ReservationStatusExpired:
		return core.RejectedDecision(core.InvalidState(msgReservationClosed))
	}

	return core.SuccessDecision(
		core.BuildReservationCanceled(command.ReservationID, command.ReaderID, bookID, command.OccurredAt),
	)
}

// BookIDOfReservation returns the book of the reservation, empty if it is unknown.
func BookIDOfReservation(history core.DomainEvents, reservationID core.ReservationIDString) core.BookIDString {
	for _, event := range history {
		if e, ok := event.(core.ReservationPlaced); ok && e.ReservationID == reservationID {
			return e.BookID
		}
	}

	return ""
}

// BuildReservationFilter selects the placement of one reservation.
func BuildReservationFilter(reservationID core.ReservationIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.ReservationPlacedEventType).
		AndAnyPredicateOf(eventstore.P("ReservationID", reservationID)).
		Finalize()
}

// BuildEventFilter selects the circulation of the reserved book.
func BuildEventFilter(reservationID core.ReservationIDString, bookID core.BookIDString) eventstore.Filter {
	if bookID == "" {
		return BuildReservationFilter(reservationID)
	}

	circulationEventTypes := core.CirculationEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(circulationEventTypes[0], circulationEventTypes[1:]...).
		AndAnyPredicateOf(eventstore.P("BookID", bookID)).
		Finalize()
}
