package pendingloanrequests

import (
	"time"

	"github.com/AntonStoeckl/biblioteca/library/features/query/internal/readmodel"
)

// Request is one pending loan request.
type Request struct {
	ID             string              `json:"id"`
	Usuario        readmodel.UserRef   `json:"usuario"`
	FechaSolicitud time.Time           `json:"fechaSolicitud"`
	Estado         string              `json:"estado"`
	Libros         []readmodel.BookRef `json:"libros"`
}

// PendingLoanRequests is the query result.
type PendingLoanRequests struct {
	Requests []Request
	Count    int
}
