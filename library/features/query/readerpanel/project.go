package readerpanel

import (
	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/query/internal/readmodel"
)

const (
	msgUserNotFound = "Usuario no encontrado"
)

// Project summarizes the history of one reader.
//
// Query Logic:
//
//	GIVEN: The history of a reader merged with the circulation of the books they touched
//	WHEN: ReaderPanel query is executed
//	THEN: Summary is returned
//	INCLUDES: loans not returned yet, pending fines, waiting and ready reservations, all loans ever started
//	ERROR: "Usuario no encontrado" if the reader is not registered
func Project(history core.DomainEvents, query Query, policy core.Policy) (Summary, error) {
	user, found := readmodel.Users(history)[query.ReaderID]
	if !found {
		return Summary{}, core.NotFound(msgUserNotFound)
	}

	summary := Summary{NombreCompleto: user.Nombre}

	for _, loan := range readmodel.OfReader(readmodel.Loans(history), query.ReaderID) {
		summary.TotalPrestados++
		if !loan.Returned {
			summary.PrestamosActivos++
		}
	}

	for _, fine := range readmodel.OfReader(readmodel.Fines(history), query.ReaderID) {
		if fine.IsPending() {
			summary.MultasActivas++
		}
	}

	for _, reservation := range readmodel.ReservationsOf(history, query.ReaderID, query.At, policy) {
		if reservation.IsActive() {
			summary.ReservasPendientes++
		}
	}

	return summary, nil
}
