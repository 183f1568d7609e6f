// Package approveloanrequest implements the Approve Loan Request use case.
//
// The handler queries in two phases: the request first, to learn its reader and books, then the request together
// with the circulation of every requested book. The second filter is the consistency boundary of the append.
package approveloanrequest
