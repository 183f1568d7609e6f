package readmodel

import (
	"cmp"
	"slices"
	"time"

	"github.com/AntonStoeckl/biblioteca/library/core"
)

// ReaderReservation is a reservation of the reader together with the queue it waits in.
type ReaderReservation struct {
	core.Reservation
	Position    int // 1-based while waiting, 0 otherwise
	QueueLength int
}

// ReservationsOf projects every reservation readerID ever placed, oldest first.
// The history must contain the full circulation of the reserved books.
func ReservationsOf(
	history core.DomainEvents,
	readerID core.UserIDString,
	at time.Time,
	policy core.Policy,
) []ReaderReservation {

	var reservations []ReaderReservation

	for _, bookID := range BookIDsTouchedBy(history) {
		c := core.ProjectCirculation(history, bookID, at, policy)

		for _, r := range c.Reservations {
			if r.ReaderID != readerID {
				continue
			}

			position, total := c.QueuePosition(r.ReservationID)
			reservations = append(reservations, ReaderReservation{
				Reservation: *r,
				Position:    position,
				QueueLength: total,
			})
		}
	}

	slices.SortFunc(reservations, func(a, b ReaderReservation) int {
		return cmp.Or(a.PlacedAt.Compare(b.PlacedAt), cmp.Compare(a.ReservationID, b.ReservationID))
	})

	return reservations
}
