package readerfines

import (
	"time"

	"github.com/AntonStoeckl/biblioteca/library/features/query/internal/readmodel"
)

// LateReturnDescription describes every fine, the library only fines late returns.
const LateReturnDescription = "Multa por devolución tardía"

// Fine is one fine of the reader.
type Fine struct {
	ID               string            `json:"id"`
	PrestamoID       string            `json:"prestamoId"`
	Libro            readmodel.BookRef `json:"libro"`
	FechaVencimiento time.Time         `json:"fechaVencimiento"`
	FechaDevolucion  time.Time         `json:"fechaDevolucion"`
	DiasRetraso      int               `json:"diasRetraso"`
	MontoMulta       float64           `json:"montoMulta"`
	Estado           string            `json:"estado"`
	FechaGeneracion  time.Time         `json:"fechaGeneracion"`
	FechaPago        *time.Time        `json:"fechaPago"`
	Descripcion      string            `json:"descripcion"`
}

// ReaderFines is the query result.
type ReaderFines struct {
	Fines          []Fine
	TotalPendiente float64
}
