package readerreservations

import (
	"fmt"
	"slices"
	"time"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/query/internal/readmodel"
)

// Project lists the reservations of one reader, newest first.
//
// Query Logic:
//
//	GIVEN: The history of a reader merged with the circulation of the books they touched
//	WHEN: ReaderReservations query is executed
//	THEN: ReaderReservations is returned
//	INCLUDES: waiting reservations with their queue position, ready ones with the pickup deadline,
//	          closed ones with their final state
func Project(history core.DomainEvents, query Query, policy core.Policy) ReaderReservations {
	books := readmodel.Books(history)
	result := ReaderReservations{Reservations: []Reservation{}}

	for _, r := range readmodel.ReservationsOf(history, query.ReaderID, query.At, policy) {
		entry := Reservation{
			ID:             r.ReservationID,
			Libro:          readmodel.BookOrUnknown(books, r.BookID),
			FechaReserva:   r.PlacedAt,
			Estado:         r.Status,
			PosicionEnCola: r.Position,
			TotalEnCola:    r.QueueLength,
		}

		if r.Position > 0 {
			entry.PersonasDelante = r.Position - 1
		}

		if !r.ReadyAt.IsZero() {
			readyAt, expiresAt := r.ReadyAt, r.ExpiresAt
			entry.FechaDisponible = &readyAt
			entry.FechaLimiteRecogida = &expiresAt
			entry.FechaExpiracion = &expiresAt
		}

		if r.Status == core.ReservationStatusReady {
			entry.TiempoRestanteRecogida = remaining(r.ExpiresAt.Sub(query.At))
		}

		if r.IsActive() {
			result.Active++
		}

		result.Reservations = append(result.Reservations, entry)
	}

	slices.Reverse(result.Reservations)

	return result
}

// remaining renders the time left to pick up a held copy, rounded down to hours.
func remaining(d time.Duration) string {
	hours := int(d.Hours())
	days, hours := hours/24, hours%24

	switch {
	case days > 0:
		return fmt.Sprintf("%d días %d horas", days, hours)
	case hours > 0:
		return fmt.Sprintf("%d horas", hours)
	default:
		return "menos de una hora"
	}
}
