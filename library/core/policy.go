package core

import "time"

// Policy holds the circulation rules of the library.
type Policy struct {
	LoanPeriod            time.Duration
	MaxRenewals           int
	FinePerDay            float64
	PickupWindow          time.Duration
	MaxBooksOut           int
	MaxActiveReservations int
	DueSoonThreshold      time.Duration
}

// DefaultPolicy returns the rules the library runs with unless configured otherwise.
func DefaultPolicy() Policy {
	return Policy{
		LoanPeriod:            15 * 24 * time.Hour,
		MaxRenewals:           2,
		FinePerDay:            5.0,
		PickupWindow:          3 * 24 * time.Hour,
		MaxBooksOut:           5,
		MaxActiveReservations: 5,
		DueSoonThreshold:      3 * 24 * time.Hour,
	}
}

// DaysOverdue is the number of started days after dueAt, zero if "at" is not after dueAt.
func (p Policy) DaysOverdue(dueAt time.Time, at time.Time) int {
	if !at.After(dueAt) {
		return 0
	}

	return DaysBetweenCeil(dueAt, at)
}

// FineFor is the fine for a loan that is daysOverdue days late.
func (p Policy) FineFor(daysOverdue int) float64 {
	if daysOverdue <= 0 {
		return 0
	}

	return RoundMoney(float64(daysOverdue) * p.FinePerDay)
}

// Loan states as shown to readers and librarians.
const (
	LoanStatusActive   = "activo"
	LoanStatusDueSoon  = "por_vencer"
	LoanStatusOverdue  = "vencido"
	LoanStatusReturned = "devuelto"
)

// ActiveLoanStatus derives the status of a loan that was not returned yet.
func (p Policy) ActiveLoanStatus(dueAt time.Time, now time.Time) string {
	switch {
	case now.After(dueAt):
		return LoanStatusOverdue
	case dueAt.Sub(now) <= p.DueSoonThreshold:
		return LoanStatusDueSoon
	default:
		return LoanStatusActive
	}
}

// DaysRemaining is the number of started days until dueAt. Once overdue it is the
// negated DaysOverdue, so the first late day reports -1 just like the fine counts it.
func (p Policy) DaysRemaining(dueAt time.Time, now time.Time) int {
	if now.After(dueAt) {
		return -p.DaysOverdue(dueAt, now)
	}

	return DaysBetweenCeil(now, dueAt)
}
