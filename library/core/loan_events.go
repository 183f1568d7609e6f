package core

import "time"

const (
	LoanRequestedEventType       = "LoanRequested"
	LoanRequestApprovedEventType = "LoanRequestApproved"
	LoanRequestRejectedEventType = "LoanRequestRejected"
	LoanStartedEventType         = "LoanStarted"
	LoanRenewedEventType         = "LoanRenewed"
	BookReturnedEventType        = "BookReturned"
)

// LoanRequested represents a reader asking for one or more books. A librarian decides on it.
type LoanRequested struct {
	RequestID  RequestIDString
	ReaderID   UserIDString
	BookIDs    []BookIDString
	OccurredAt OccurredAtTS
}

// BuildLoanRequested creates a new LoanRequested event.
func BuildLoanRequested(requestID RequestIDString, readerID UserIDString, bookIDs []BookIDString, occurredAt time.Time) LoanRequested {
	return LoanRequested{
		RequestID:  requestID,
		ReaderID:   readerID,
		BookIDs:    bookIDs,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e LoanRequested) EventType() string {
	return LoanRequestedEventType
}

func (e LoanRequested) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e LoanRequested) IsErrorEvent() bool {
	return false
}

// LoanRequestApproved is always followed by one LoanStarted per requested book, appended atomically.
type LoanRequestApproved struct {
	RequestID  RequestIDString
	ReaderID   UserIDString
	ApprovedBy UserIDString
	OccurredAt OccurredAtTS
}

// BuildLoanRequestApproved creates a new LoanRequestApproved event.
func BuildLoanRequestApproved(requestID RequestIDString, readerID UserIDString, approvedBy UserIDString, occurredAt time.Time) LoanRequestApproved {
	return LoanRequestApproved{
		RequestID:  requestID,
		ReaderID:   readerID,
		ApprovedBy: approvedBy,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e LoanRequestApproved) EventType() string {
	return LoanRequestApprovedEventType
}

func (e LoanRequestApproved) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e LoanRequestApproved) IsErrorEvent() bool {
	return false
}

// LoanRequestRejected closes a request without lending anything.
type LoanRequestRejected struct {
	RequestID  RequestIDString
	ReaderID   UserIDString
	RejectedBy UserIDString
	OccurredAt OccurredAtTS
}

// BuildLoanRequestRejected creates a new LoanRequestRejected event.
func BuildLoanRequestRejected(requestID RequestIDString, readerID UserIDString, rejectedBy UserIDString, occurredAt time.Time) LoanRequestRejected {
	return LoanRequestRejected{
		RequestID:  requestID,
		ReaderID:   readerID,
		RejectedBy: rejectedBy,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e LoanRequestRejected) EventType() string {
	return LoanRequestRejectedEventType
}

func (e LoanRequestRejected) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e LoanRequestRejected) IsErrorEvent() bool {
	return false
}

// LoanStarted represents one copy of a book handed to a reader.
type LoanStarted struct {
	LoanID     LoanIDString
	RequestID  RequestIDString
	ReaderID   UserIDString
	BookID     BookIDString
	DueAt      time.Time
	OccurredAt OccurredAtTS
}

// BuildLoanStarted creates a new LoanStarted event.
func BuildLoanStarted(
	loanID LoanIDString,
	requestID RequestIDString,
	readerID UserIDString,
	bookID BookIDString,
	dueAt time.Time,
	occurredAt time.Time,
) LoanStarted {

	return LoanStarted{
		LoanID:     loanID,
		RequestID:  requestID,
		ReaderID:   readerID,
		BookID:     bookID,
		DueAt:      ToOccurredAt(dueAt),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e LoanStarted) EventType() string {
	return LoanStartedEventType
}

func (e LoanStarted) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e LoanStarted) IsErrorEvent() bool {
	return false
}

// LoanRenewed moves the due date of an active loan. Renewal counts the renewals including this one.
type LoanRenewed struct {
	LoanID     LoanIDString
	ReaderID   UserIDString
	BookID     BookIDString
	DueAt      time.Time
	Renewal    int
	OccurredAt OccurredAtTS
}

// BuildLoanRenewed creates a new LoanRenewed event.
func BuildLoanRenewed(
	loanID LoanIDString,
	readerID UserIDString,
	bookID BookIDString,
	dueAt time.Time,
	renewal int,
	occurredAt time.Time,
) LoanRenewed {

	return LoanRenewed{
		LoanID:     loanID,
		ReaderID:   readerID,
		BookID:     bookID,
		DueAt:      ToOccurredAt(dueAt),
		Renewal:    renewal,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e LoanRenewed) EventType() string {
	return LoanRenewedEventType
}

func (e LoanRenewed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e LoanRenewed) IsErrorEvent() bool {
	return false
}

// BookReturned ends a loan.
type BookReturned struct {
	LoanID     LoanIDString
	ReaderID   UserIDString
	BookID     BookIDString
	ReceivedBy UserIDString
	OccurredAt OccurredAtTS
}

// BuildBookReturned creates a new BookReturned event.
func BuildBookReturned(
	loanID LoanIDString,
	readerID UserIDString,
	bookID BookIDString,
	receivedBy UserIDString,
	occurredAt time.Time,
) BookReturned {

	return BookReturned{
		LoanID:     loanID,
		ReaderID:   readerID,
		BookID:     bookID,
		ReceivedBy: receivedBy,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e BookReturned) EventType() string {
	return BookReturnedEventType
}

func (e BookReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e BookReturned) IsErrorEvent() bool {
	return false
}
