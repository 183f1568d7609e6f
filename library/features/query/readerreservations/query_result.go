package readerreservations

import (
	"time"

	"github.com/AntonStoeckl/biblioteca/library/features/query/internal/readmodel"
)

// Reservation is one reservation of the reader.
type Reservation struct {
	ID                     string            `json:"id"`
	Libro                  readmodel.BookRef `json:"libro"`
	FechaReserva           time.Time         `json:"fechaReserva"`
	Estado                 string            `json:"estado"`
	PosicionEnCola         int               `json:"posicionEnCola"`
	TotalEnCola            int               `json:"totalEnCola"`
	PersonasDelante        int               `json:"personasDelante"`
	FechaDisponible        *time.Time        `json:"fechaDisponible"`
	FechaLimiteRecogida    *time.Time        `json:"fechaLimiteRecogida"`
	FechaExpiracion        *time.Time        `json:"fechaExpiracion"`
	TiempoRestanteRecogida string            `json:"tiempoRestanteRecogida"`
}

// ReaderReservations is the query result.
type ReaderReservations struct {
	Reservations []Reservation
	Active       int
}
