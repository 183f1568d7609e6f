package core

import "time"

const (
	FineAssessedEventType = "FineAssessed"
	FinePaidEventType     = "FinePaid"
	FineWaivedEventType   = "FineWaived"
)

// FineAssessed is appended together with the BookReturned of a late return.
type FineAssessed struct {
	FineID      FineIDString
	LoanID      LoanIDString
	ReaderID    UserIDString
	BookID      BookIDString
	Amount      float64
	DaysOverdue int
	OccurredAt  OccurredAtTS
}

// BuildFineAssessed creates a new FineAssessed event.
func BuildFineAssessed(
	fineID FineIDString,
	loanID LoanIDString,
	readerID UserIDString,
	bookID BookIDString,
	amount float64,
	daysOverdue int,
	occurredAt time.Time,
) FineAssessed {

	return FineAssessed{
		FineID:      fineID,
		LoanID:      loanID,
		ReaderID:    readerID,
		BookID:      bookID,
		Amount:      RoundMoney(amount),
		DaysOverdue: daysOverdue,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e FineAssessed) EventType() string {
	return FineAssessedEventType
}

func (e FineAssessed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e FineAssessed) IsErrorEvent() bool {
	return false
}

// FinePaid settles a pending fine.
type FinePaid struct {
	FineID      FineIDString
	ReaderID    UserIDString
	ProcessedBy UserIDString
	OccurredAt  OccurredAtTS
}

// BuildFinePaid creates a new FinePaid event.
func BuildFinePaid(fineID FineIDString, readerID UserIDString, processedBy UserIDString, occurredAt time.Time) FinePaid {
	return FinePaid{
		FineID:      fineID,
		ReaderID:    readerID,
		ProcessedBy: processedBy,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e FinePaid) EventType() string {
	return FinePaidEventType
}

func (e FinePaid) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e FinePaid) IsErrorEvent() bool {
	return false
}

// FineWaived cancels a pending fine without payment.
type FineWaived struct {
	FineID      FineIDString
	ReaderID    UserIDString
	ProcessedBy UserIDString
	OccurredAt  OccurredAtTS
}

// BuildFineWaived creates a new FineWaived event.
func BuildFineWaived(fineID FineIDString, readerID UserIDString, processedBy UserIDString, occurredAt time.Time) FineWaived {
	return FineWaived{
		FineID:      fineID,
		ReaderID:    readerID,
		ProcessedBy: processedBy,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e FineWaived) EventType() string {
	return FineWaivedEventType
}

func (e FineWaived) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e FineWaived) IsErrorEvent() bool {
	return false
}
