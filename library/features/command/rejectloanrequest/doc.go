// Package rejectloanrequest implements the Reject Loan Request use case.
package rejectloanrequest
