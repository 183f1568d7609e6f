package pendingfines

import (
	"time"

	"github.com/AntonStoeckl/biblioteca/library/features/query/internal/readmodel"
)

// Fine is one fine as librarians see it.
type Fine struct {
	ID              string            `json:"id"`
	Monto           float64           `json:"monto"`
	FechaGeneracion time.Time         `json:"fechaGeneracion"`
	Estado          string            `json:"estado"`
	DiasRetraso     int               `json:"diasRetraso"`
	Usuario         readmodel.UserRef `json:"usuario"`
	Libro           readmodel.BookRef `json:"libro"`
	IDPrestamo      string            `json:"idPrestamo"`
}

// Fines is the query result.
type Fines struct {
	Fines          []Fine
	Count          int
	TotalPendiente float64
}
