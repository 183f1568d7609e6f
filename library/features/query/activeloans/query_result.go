package activeloans

import (
	"time"

	"github.com/AntonStoeckl/biblioteca/library/features/query/internal/readmodel"
)

// Loan is one active loan.
type Loan struct {
	ID               string            `json:"id"`
	Usuario          readmodel.UserRef `json:"usuario"`
	Libro            readmodel.BookRef `json:"libro"`
	FechaPrestamo    time.Time         `json:"fechaPrestamo"`
	FechaVencimiento time.Time         `json:"fechaVencimiento"`
	DiasRestantes    int               `json:"diasRestantes"`
	Estado           string            `json:"estado"`
	Renovaciones     int               `json:"renovaciones"`
	MultaAcumulada   float64           `json:"multaAcumulada"`
}

// ActiveLoans is the query result.
type ActiveLoans struct {
	Loans   []Loan
	Count   int
	Overdue int
}
