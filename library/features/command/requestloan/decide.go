package requestloan

import (
	"fmt"

	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	msgNoBooks          = "Debe seleccionar al menos un libro"
	msgReaderNotFound   = "Usuario no encontrado"
	msgBookNotFound     = "Libro no encontrado"
	msgPendingFines     = "Tiene multas pendientes. Debe pagarlas antes de solicitar un préstamo"
	msgBookAlreadyTaken = "Ya tiene el libro '%s' en préstamo o en una solicitud pendiente"
	msgTooManyBooks     = "No puede tener más de %d libros prestados o solicitados"
)

type book struct {
	title     string
	inCatalog bool
}

type state struct {
	readerRegistered bool
	requestExists    bool
	pendingRequests  map[core.RequestIDString][]core.BookIDString
	activeLoans      map[core.LoanIDString]core.BookIDString
	pendingFines     map[core.FineIDString]bool
	books            map[core.BookIDString]book
}

// booksOut is the set of books the reader has on loan or in a pending request.
func (s state) booksOut() map[core.BookIDString]bool {
	out := make(map[core.BookIDString]bool)

	for _, bookID := range s.activeLoans {
		out[bookID] = true
	}

	for _, bookIDs := range s.pendingRequests {
		for _, bookID := range bookIDs {
			out[bookID] = true
		}
	}

	return out
}

// countOut counts loans and requested books, a book requested twice counts twice.
func (s state) countOut() int {
	count := len(s.activeLoans)

	for _, bookIDs := range s.pendingRequests {
		count += len(bookIDs)
	}

	return count
}

// Decide determines whether the reader may request the books.
//
// Business Rules:
//
//	GIVEN: a registered reader and books in the catalog
//	WHEN: RequestLoan command is received
//	THEN: LoanRequested event is generated
//	ERROR: "Debe seleccionar al menos un libro" if no book was selected
//	ERROR: "Usuario no encontrado" if the reader is not registered
//	ERROR: "Libro no encontrado" if a book is not in the catalog
//	ERROR: RequestingLoanFailed if the reader has pending fines
//	ERROR: RequestingLoanFailed if a book is already on loan to the reader or requested by them
//	ERROR: RequestingLoanFailed if loans plus requested books would exceed the maximum
//	IDEMPOTENCY: If the request was already made, no event generated (no-op)
func Decide(history core.DomainEvents, command Command, policy core.Policy) core.DecisionResult {
	if len(command.BookIDs) == 0 {
		return core.RejectedDecision(core.InvalidInput(msgNoBooks))
	}

	s := project(history, command)

	if s.requestExists {
		return core.IdempotentDecision()
	}

	if !s.readerRegistered {
		return core.RejectedDecision(core.NotFound(msgReaderNotFound))
	}

	for _, bookID := range command.BookIDs {
		if !s.books[bookID].inCatalog {
			return core.RejectedDecision(core.NotFound(msgBookNotFound))
		}
	}

	if len(s.pendingFines) > 0 {
		return failed(command, core.Conflict(msgPendingFines))
	}

	booksOut := s.booksOut()
	for _, bookID := range command.BookIDs {
		if booksOut[bookID] {
			return failed(command, core.Conflict(fmt.Sprintf(msgBookAlreadyTaken, s.books[bookID].title)))
		}
	}

	if s.countOut()+len(command.BookIDs) > policy.MaxBooksOut {
		return failed(command, core.Conflict(fmt.Sprintf(msgTooManyBooks, policy.MaxBooksOut)))
	}

	return core.SuccessDecision(
		core.BuildLoanRequested(command.RequestID, command.ReaderID, command.BookIDs, command.OccurredAt),
	)
}

func failed(command Command, err error) core.DecisionResult {
	return core.ErrorDecision(
		core.BuildRequestingLoanFailed(command.RequestID, command.ReaderID, err.Error(), command.OccurredAt),
		err,
	)
}

func project(history core.DomainEvents, command Command) state {
	s := state{
		pendingRequests: make(map[core.RequestIDString][]core.BookIDString),
		activeLoans:     make(map[core.LoanIDString]core.BookIDString),
		pendingFines:    make(map[core.FineIDString]bool),
		books:           make(map[core.BookIDString]book),
	}

	for _, event := range history {
		switch e := event.(type) {
		case core.UserRegistered:
			s.readerRegistered = s.readerRegistered || e.UserID == command.ReaderID

		case core.LoanRequested:
			if e.RequestID == command.RequestID {
				s.requestExists = true
			}
			s.pendingRequests[e.RequestID] = e.BookIDs

		case core.LoanRequestApproved:
			delete(s.pendingRequests, e.RequestID)

		case core.LoanRequestRejected:
			delete(s.pendingRequests, e.RequestID)

		case core.LoanStarted:
			s.activeLoans[e.LoanID] = e.BookID

		case core.BookReturned:
			delete(s.activeLoans, e.LoanID)

		case core.FineAssessed:
			s.pendingFines[e.FineID] = true

		case core.FinePaid:
			delete(s.pendingFines, e.FineID)

		case core.FineWaived:
			delete(s.pendingFines, e.FineID)

		case core.BookAddedToCatalog:
			s.books[e.BookID] = book{title: e.Title, inCatalog: true}

		case core.BookRemovedFromCatalog:
			b := s.books[e.BookID]
			b.inCatalog = false
			s.books[e.BookID] = b
		}
	}

	return s
}

// BuildEventFilter selects the reader, everything that happened to their requests, loans and fines,
// and the catalog entries of the requested books.
func BuildEventFilter(readerID core.UserIDString, bookIDs []core.BookIDString) eventstore.Filter {
	bookPredicates := make([]eventstore.FilterPredicate, 0, len(bookIDs))
	for _, bookID := range bookIDs {
		bookPredicates = append(bookPredicates, eventstore.P("BookID", bookID))
	}

	builder := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.UserRegisteredEventType).
		AndAnyPredicateOf(eventstore.P("UserID", readerID)).
		OrMatching().
		AnyEventTypeOf(
			core.LoanRequestedEventType,
			core.LoanRequestApprovedEventType,
			core.LoanRequestRejectedEventType,
			core.LoanStartedEventType,
			core.BookReturnedEventType,
			core.FineAssessedEventType,
			core.FinePaidEventType,
			core.FineWaivedEventType,
		).
		AndAnyPredicateOf(eventstore.P("ReaderID", readerID))

	if len(bookPredicates) == 0 {
		return builder.Finalize()
	}

	return builder.
		OrMatching().
		AnyEventTypeOf(core.BookAddedToCatalogEventType, core.BookRemovedFromCatalogEventType).
		AndAnyPredicateOf(bookPredicates[0], bookPredicates[1:]...).
		Finalize()
}
