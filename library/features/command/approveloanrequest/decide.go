package approveloanrequest

import (
	"fmt"

	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	msgRequestNotFound = "Solicitud no encontrada"
	msgNotPending      = "La solicitud no está en estado pendiente"
	msgNoCopyAvailable = "Libro '%s' no tiene copias disponibles."
)

const (
	requestPending  = "pending"
	requestApproved = "approved"
	requestRejected = "rejected"
)

// Request is the projected state of a loan request.
type Request struct {
	RequestID core.RequestIDString
	ReaderID  core.UserIDString
	BookIDs   []core.BookIDString
	status    string
}

// ProjectRequest replays the events of one loan request. The second return value is false if it was never made.
func ProjectRequest(history core.DomainEvents, requestID core.RequestIDString) (Request, bool) {
	var request Request
	found := false

	for _, event := range history {
		switch e := event.(type) {
		case core.LoanRequested:
			if e.RequestID == requestID {
				request = Request{RequestID: e.RequestID, ReaderID: e.ReaderID, BookIDs: e.BookIDs, status: requestPending}
				found = true
			}

		case core.LoanRequestApproved:
			if e.RequestID == requestID {
				request.status = requestApproved
			}

		case core.LoanRequestRejected:
			if e.RequestID == requestID {
				request.status = requestRejected
			}
		}
	}

	return request, found
}

// Decide determines whether the loan request can be approved.
//
// Business Rules:
//
//	GIVEN: a pending loan request
//	WHEN: ApproveLoanRequest command is received
//	THEN: LoanRequestApproved and one LoanStarted per requested book are generated
//	ERROR: "Solicitud no encontrada" if the request does not exist
//	ERROR: "La solicitud no está en estado pendiente" if the request was rejected
//	ERROR: ApprovingLoanRequestFailed if a book has neither a free copy nor a copy held for the reader
//	IDEMPOTENCY: If the request was already approved, no event generated (no-op)
func Decide(history core.DomainEvents, command Command, policy core.Policy) core.DecisionResult {
	request, found := ProjectRequest(history, command.RequestID)

	if !found {
		return core.RejectedDecision(core.NotFound(msgRequestNotFound))
	}

	switch request.status {
	case requestApproved:
		return core.IdempotentDecision()
	case requestRejected:
		return core.RejectedDecision(core.InvalidState(msgNotPending))
	}

	loans := make(core.DomainEvents, 0, len(request.BookIDs))

	for _, bookID := range request.BookIDs {
		c := core.ProjectCirculation(history, bookID, command.OccurredAt, policy)
		_, held := c.HeldFor(request.ReaderID)

		if !c.InCatalog || (!held && c.FreeCopies() <= 0) {
			err := core.Conflict(fmt.Sprintf(msgNoCopyAvailable, c.Title))

			return core.ErrorDecision(
				core.BuildApprovingLoanRequestFailed(command.RequestID, command.ApprovedBy, err.Error(), command.OccurredAt),
				err,
			)
		}

		loans = append(loans, core.BuildLoanStarted(
			core.LoanIDFor(request.RequestID, bookID),
			request.RequestID,
			request.ReaderID,
			bookID,
			command.OccurredAt.Add(policy.LoanPeriod),
			command.OccurredAt,
		))
	}

	return core.SuccessDecision(
		core.BuildLoanRequestApproved(command.RequestID, request.ReaderID, command.ApprovedBy, command.OccurredAt),
		loans...,
	)
}

// BuildRequestFilter selects the events of one loan request.
func BuildRequestFilter(requestID core.RequestIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.LoanRequestedEventType,
			core.LoanRequestApprovedEventType,
			core.LoanRequestRejectedEventType,
		).
		AndAnyPredicateOf(eventstore.P("RequestID", requestID)).
		Finalize()
}

// BuildEventFilter selects the loan request and the circulation of the requested books.
func BuildEventFilter(requestID core.RequestIDString, bookIDs []core.BookIDString) eventstore.Filter {
	requestItem := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.LoanRequestedEventType,
			core.LoanRequestApprovedEventType,
			core.LoanRequestRejectedEventType,
		).
		AndAnyPredicateOf(eventstore.P("RequestID", requestID))

	if len(bookIDs) == 0 {
		return requestItem.Finalize()
	}

	bookPredicates := make([]eventstore.FilterPredicate, 0, len(bookIDs))
	for _, bookID := range bookIDs {
		bookPredicates = append(bookPredicates, eventstore.P("BookID", bookID))
	}

	circulationEventTypes := core.CirculationEventTypes()

	return requestItem.
		OrMatching().
		AnyEventTypeOf(circulationEventTypes[0], circulationEventTypes[1:]...).
		AndAnyPredicateOf(bookPredicates[0], bookPredicates[1:]...).
		Finalize()
}
