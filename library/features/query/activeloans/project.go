package activeloans

import (
	"slices"

	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/query/internal/readmodel"
)

// Project lists the loans that were not returned yet, the ones due first on top.
//
// Query Logic:
//
//	GIVEN: All loans with their renewals and returns, users and books
//	WHEN: ActiveLoans query is executed
//	THEN: ActiveLoans is returned ordered by due date
//	INCLUDES: status, days remaining and the fine the loan would cost if returned at At
//	EXCLUDES: returned loans
func Project(history core.DomainEvents, query Query, policy core.Policy) ActiveLoans {
	books := readmodel.Books(history)
	users := readmodel.Users(history)
	result := ActiveLoans{Loans: []Loan{}}

	for _, loan := range readmodel.Loans(history) {
		if loan.Returned {
			continue
		}

		status := policy.ActiveLoanStatus(loan.DueAt, query.At)
		if status == core.LoanStatusOverdue {
			result.Overdue++
		}

		result.Loans = append(result.Loans, Loan{
			ID:               loan.LoanID,
			Usuario:          readmodel.UserOrUnknown(users, loan.ReaderID),
			Libro:            readmodel.BookOrUnknown(books, loan.BookID),
			FechaPrestamo:    loan.StartedAt,
			FechaVencimiento: loan.DueAt,
			DiasRestantes:    policy.DaysRemaining(loan.DueAt, query.At),
			Estado:           status,
			Renovaciones:     loan.Renewals,
			MultaAcumulada:   policy.FineFor(policy.DaysOverdue(loan.DueAt, query.At)),
		})
	}

	slices.SortStableFunc(result.Loans, func(a, b Loan) int {
		return a.FechaVencimiento.Compare(b.FechaVencimiento)
	})

	result.Count = len(result.Loans)

	return result
}

// BuildEventFilter selects all loans and the users and books they refer to.
func BuildEventFilter() eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.LoanStartedEventType,
			core.LoanRenewedEventType,
			core.BookReturnedEventType,
			core.UserRegisteredEventType,
			core.UserProfileUpdatedEventType,
			core.BookAddedToCatalogEventType,
		).
		Finalize()
}
