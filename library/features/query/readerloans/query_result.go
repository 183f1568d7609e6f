package readerloans

import (
	"time"

	"github.com/AntonStoeckl/biblioteca/library/features/query/internal/readmodel"
)

// ActiveLoan is a loan the reader holds right now.
type ActiveLoan struct {
	ID                  string            `json:"id"`
	Libro               readmodel.BookRef `json:"libro"`
	FechaPrestamo       time.Time         `json:"fechaPrestamo"`
	FechaVencimiento    time.Time         `json:"fechaVencimiento"`
	DiasRestantes       int               `json:"diasRestantes"`
	RenovacionesUsadas  int               `json:"renovacionesUsadas"`
	RenovacionesMaximas int               `json:"renovacionesMaximas"`
	PuedeRenovar        bool              `json:"puedeRenovar"`
	Estado              string            `json:"estado"`
	MultaAcumulada      float64           `json:"multaAcumulada"`
}

// HistoryEntry is a loan, or one book of a request that did not lead to a loan.
type HistoryEntry struct {
	ID                  string            `json:"id"`
	Libro               readmodel.BookRef `json:"libro"`
	FechaPrestamo       time.Time         `json:"fechaPrestamo"`
	FechaDevolucion     *time.Time        `json:"fechaDevolucion"`
	FechaDevolucionReal *time.Time        `json:"fechaDevolucionReal"`
	Estado              string            `json:"estado"`
	DiasRetraso         int               `json:"diasRetraso"`
	Multa               float64           `json:"multa"`
	Renovaciones        int               `json:"renovaciones"`
}

// ReaderLoans is the query result.
type ReaderLoans struct {
	Active  []ActiveLoan
	History []HistoryEntry
}
