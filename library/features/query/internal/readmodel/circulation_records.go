package readmodel

import (
	"time"

	"github.com/AntonStoeckl/biblioteca/library/core"
)

// Fine states.
const (
	FineStatusPending = "pendiente"
	FineStatusPaid    = "pagada"
	FineStatusWaived  = "condonada"
)

// Request states.
const (
	RequestStatusPending  = "pendiente"
	RequestStatusApproved = "aprobada"
	RequestStatusRejected = "rechazada"
)

// Loan is one loan with its renewals and, once returned, its return.
type Loan struct {
	LoanID     core.LoanIDString
	RequestID  core.RequestIDString
	ReaderID   core.UserIDString
	BookID     core.BookIDString
	StartedAt  time.Time
	DueAt      time.Time
	Renewals   int
	Returned   bool
	ReturnedAt time.Time
}

// Fine is one assessed fine.
type Fine struct {
	FineID      core.FineIDString
	LoanID      core.LoanIDString
	ReaderID    core.UserIDString
	BookID      core.BookIDString
	Amount      float64
	DaysOverdue int
	Status      string
	AssessedAt  time.Time
	ClosedAt    time.Time
}

// IsPending is true until the fine is paid or waived.
func (f Fine) IsPending() bool {
	return f.Status == FineStatusPending
}

// Request is one loan request.
type Request struct {
	RequestID   core.RequestIDString
	ReaderID    core.UserIDString
	BookIDs     []core.BookIDString
	Status      string
	RequestedAt time.Time
	DecidedAt   time.Time
}

// Loans returns all loans in the order they started.
func Loans(history core.DomainEvents) []*Loan {
	var loans []*Loan
	byID := make(map[core.LoanIDString]*Loan)

	for _, event := range history {
		switch e := event.(type) {
		case core.LoanStarted:
			if _, exists := byID[e.LoanID]; exists {
				continue
			}

			l := &Loan{
				LoanID:    e.LoanID,
				RequestID: e.RequestID,
				ReaderID:  e.ReaderID,
				BookID:    e.BookID,
				StartedAt: e.OccurredAt,
				DueAt:     e.DueAt,
			}
			byID[e.LoanID] = l
			loans = append(loans, l)

		case core.LoanRenewed:
			if l, ok := byID[e.LoanID]; ok {
				l.DueAt = e.DueAt
				l.Renewals = e.Renewal
			}

		case core.BookReturned:
			if l, ok := byID[e.LoanID]; ok {
				l.Returned = true
				l.ReturnedAt = e.OccurredAt
			}
		}
	}

	return loans
}

// Fines returns all fines in the order they were assessed.
func Fines(history core.DomainEvents) []*Fine {
	var fines []*Fine
	byID := make(map[core.FineIDString]*Fine)

	closeFine := func(fineID core.FineIDString, status string, at time.Time) {
		if f, ok := byID[fineID]; ok && f.IsPending() {
			f.Status = status
			f.ClosedAt = at
		}
	}

	for _, event := range history {
		switch e := event.(type) {
		case core.FineAssessed:
			if _, exists := byID[e.FineID]; exists {
				continue
			}

			f := &Fine{
				FineID:      e.FineID,
				LoanID:      e.LoanID,
				ReaderID:    e.ReaderID,
				BookID:      e.BookID,
				Amount:      e.Amount,
				DaysOverdue: e.DaysOverdue,
				Status:      FineStatusPending,
				AssessedAt:  e.OccurredAt,
			}
			byID[e.FineID] = f
			fines = append(fines, f)

		case core.FinePaid:
			closeFine(e.FineID, FineStatusPaid, e.OccurredAt)

		case core.FineWaived:
			closeFine(e.FineID, FineStatusWaived, e.OccurredAt)
		}
	}

	return fines
}

// Requests returns all loan requests in the order they were made.
func Requests(history core.DomainEvents) []*Request {
	var requests []*Request
	byID := make(map[core.RequestIDString]*Request)

	decide := func(requestID core.RequestIDString, status string, at time.Time) {
		if r, ok := byID[requestID]; ok && r.Status == RequestStatusPending {
			r.Status = status
			r.DecidedAt = at
		}
	}

	for _, event := range history {
		switch e := event.(type) {
		case core.LoanRequested:
			if _, exists := byID[e.RequestID]; exists {
				continue
			}

			r := &Request{
				RequestID:   e.RequestID,
				ReaderID:    e.ReaderID,
				BookIDs:     e.BookIDs,
				Status:      RequestStatusPending,
				RequestedAt: e.OccurredAt,
			}
			byID[e.RequestID] = r
			requests = append(requests, r)

		case core.LoanRequestApproved:
			decide(e.RequestID, RequestStatusApproved, e.OccurredAt)

		case core.LoanRequestRejected:
			decide(e.RequestID, RequestStatusRejected, e.OccurredAt)
		}
	}

	return requests
}

// OfReader keeps the records of readerID.
func OfReader[T interface{ Reader() core.UserIDString }](records []T, readerID core.UserIDString) []T {
	var kept []T

	for _, r := range records {
		if r.Reader() == readerID {
			kept = append(kept, r)
		}
	}

	return kept
}

func (l *Loan) Reader() core.UserIDString { return l.ReaderID }

func (f *Fine) Reader() core.UserIDString { return f.ReaderID }

func (r *Request) Reader() core.UserIDString { return r.ReaderID }
