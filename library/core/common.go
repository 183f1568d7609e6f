package core

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

type (
	UserIDString        = string
	BookIDString        = string
	RequestIDString     = string
	LoanIDString        = string
	FineIDString        = string
	ReservationIDString = string
	ISBNString          = string
	RoleString          = string
	OccurredAtTS        = time.Time
)

const (
	RoleReader    RoleString = "Lector"
	RoleLibrarian RoleString = "Bibliotecario"
	RoleAdmin     RoleString = "Administrador"
)

// IsValidRole reports whether role is one of the three known roles.
func IsValidRole(role RoleString) bool {
	switch role {
	case RoleReader, RoleLibrarian, RoleAdmin:
		return true
	default:
		return false
	}
}

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}

// NormalizeEmail lower-cases and trims an email address so it can be compared.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// LoanIDFor derives the id of the loan that approving requestID starts for bookID.
// Derived ids keep Decide pure and make retried approvals produce identical events.
func LoanIDFor(requestID RequestIDString, bookID BookIDString) LoanIDString {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("loan/"+requestID+"/"+bookID)).String()
}

// FineIDFor derives the id of the fine assessed when loanID is returned late.
func FineIDFor(loanID LoanIDString) FineIDString {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("fine/"+loanID)).String()
}

// DaysBetweenCeil returns the number of started 24h periods from "from" to "to", negative if to is before from.
func DaysBetweenCeil(from time.Time, to time.Time) int {
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}

// RoundMoney rounds an amount to cents.
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
