// Package requestloan implements the Request Loan use case: a reader asks for one or more books.
//
// The consistency boundary spans the reader (registration, requests, loans, fines) and the catalog entries of the
// requested books, so a concurrent return, fine or removal invalidates the decision.
package requestloan
