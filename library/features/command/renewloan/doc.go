// Package renewloan implements the Renew Loan use case: a reader extends the due date of an active loan.
package renewloan
