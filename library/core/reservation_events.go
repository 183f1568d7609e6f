package core

import "time"

const (
	ReservationPlacedEventType   = "ReservationPlaced"
	ReservationCanceledEventType = "ReservationCanceled"
)

// ReservationPlaced puts a reader at the end of the queue of a book without free copies.
type ReservationPlaced struct {
	ReservationID ReservationIDString
	ReaderID      UserIDString
	BookID        BookIDString
	OccurredAt    OccurredAtTS
}

// BuildReservationPlaced creates a new ReservationPlaced event.
func BuildReservationPlaced(reservationID ReservationIDString, readerID UserIDString, bookID BookIDString, occurredAt time.Time) ReservationPlaced {
	return ReservationPlaced{
		ReservationID: reservationID,
		ReaderID:      readerID,
		BookID:        bookID,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e ReservationPlaced) EventType() string {
	return ReservationPlacedEventType
}

func (e ReservationPlaced) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ReservationPlaced) IsErrorEvent() bool {
	return false
}

// ReservationCanceled takes a reservation out of the queue or releases its held copy.
type ReservationCanceled struct {
	ReservationID ReservationIDString
	ReaderID      UserIDString
	BookID        BookIDString
	OccurredAt    OccurredAtTS
}

// BuildReservationCanceled creates a new ReservationCanceled event.
func BuildReservationCanceled(reservationID ReservationIDString, readerID UserIDString, bookID BookIDString, occurredAt time.Time) ReservationCanceled {
	return ReservationCanceled{
		ReservationID: reservationID,
		ReaderID:      readerID,
		BookID:        bookID,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e ReservationCanceled) EventType() string {
	return ReservationCanceledEventType
}

func (e ReservationCanceled) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ReservationCanceled) IsErrorEvent() bool {
	return false
}
