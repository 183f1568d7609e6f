package core

import (
	"github.com/AntonStoeckl/biblioteca/eventstore"
)

// BuildLoanFilter selects the start of one loan.
func BuildLoanFilter(loanID LoanIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(LoanStartedEventType).
		AndAnyPredicateOf(eventstore.P("LoanID", loanID)).
		Finalize()
}

// BuildLoanCirculationFilter selects the circulation of the lent book, including renewals.
// It falls back to BuildLoanFilter when the book is not known yet.
func BuildLoanCirculationFilter(loanID LoanIDString, bookID BookIDString) eventstore.Filter {
	if bookID == "" {
		return BuildLoanFilter(loanID)
	}

	eventTypes := append(CirculationEventTypes(), LoanRenewedEventType)

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(eventTypes[0], eventTypes[1:]...).
		AndAnyPredicateOf(eventstore.P("BookID", bookID)).
		Finalize()
}

// BookIDOfLoan returns the book of the loan, empty if the loan is unknown.
func BookIDOfLoan(history DomainEvents, loanID LoanIDString) BookIDString {
	for _, event := range history {
		if e, ok := event.(LoanStarted); ok && e.LoanID == loanID {
			return e.BookID
		}
	}

	return ""
}
