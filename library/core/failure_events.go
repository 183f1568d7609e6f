package core

import "time"

const (
	RequestingLoanFailedEventType       = "RequestingLoanFailed"
	ApprovingLoanRequestFailedEventType = "ApprovingLoanRequestFailed"
	RenewingLoanFailedEventType         = "RenewingLoanFailed"
	PlacingReservationFailedEventType   = "PlacingReservationFailed"
)

// RequestingLoanFailed records a loan request refused by the rules.
type RequestingLoanFailed struct {
	EntityID    RequestIDString
	ReaderID    UserIDString
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildRequestingLoanFailed creates a new RequestingLoanFailed event.
func BuildRequestingLoanFailed(requestID RequestIDString, readerID UserIDString, failureInfo string, occurredAt time.Time) RequestingLoanFailed {
	return RequestingLoanFailed{
		EntityID:    requestID,
		ReaderID:    readerID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e RequestingLoanFailed) EventType() string {
	return RequestingLoanFailedEventType
}

func (e RequestingLoanFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e RequestingLoanFailed) IsErrorEvent() bool {
	return true
}

// ApprovingLoanRequestFailed records an approval refused by the rules, mostly for lack of copies.
type ApprovingLoanRequestFailed struct {
	EntityID    RequestIDString
	ApprovedBy  UserIDString
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildApprovingLoanRequestFailed creates a new ApprovingLoanRequestFailed event.
func BuildApprovingLoanRequestFailed(requestID RequestIDString, approvedBy UserIDString, failureInfo string, occurredAt time.Time) ApprovingLoanRequestFailed {
	return ApprovingLoanRequestFailed{
		EntityID:    requestID,
		ApprovedBy:  approvedBy,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e ApprovingLoanRequestFailed) EventType() string {
	return ApprovingLoanRequestFailedEventType
}

func (e ApprovingLoanRequestFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ApprovingLoanRequestFailed) IsErrorEvent() bool {
	return true
}

// RenewingLoanFailed records a renewal refused by the rules.
type RenewingLoanFailed struct {
	EntityID    LoanIDString
	ReaderID    UserIDString
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildRenewingLoanFailed creates a new RenewingLoanFailed event.
func BuildRenewingLoanFailed(loanID LoanIDString, readerID UserIDString, failureInfo string, occurredAt time.Time) RenewingLoanFailed {
	return RenewingLoanFailed{
		EntityID:    loanID,
		ReaderID:    readerID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e RenewingLoanFailed) EventType() string {
	return RenewingLoanFailedEventType
}

func (e RenewingLoanFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e RenewingLoanFailed) IsErrorEvent() bool {
	return true
}

// PlacingReservationFailed records a reservation refused by the rules.
type PlacingReservationFailed struct {
	EntityID    ReservationIDString
	ReaderID    UserIDString
	BookID      BookIDString
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildPlacingReservationFailed creates a new PlacingReservationFailed event.
func BuildPlacingReservationFailed(
	reservationID ReservationIDString,
	readerID UserIDString,
	bookID BookIDString,
	failureInfo string,
	occurredAt time.Time,
) PlacingReservationFailed {

	return PlacingReservationFailed{
		EntityID:    reservationID,
		ReaderID:    readerID,
		BookID:      bookID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e PlacingReservationFailed) EventType() string {
	return PlacingReservationFailedEventType
}

func (e PlacingReservationFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e PlacingReservationFailed) IsErrorEvent() bool {
	return true
}
