// Package readerloans implements the loans view of a reader: the loans they currently hold and
// their full history, including loan requests that were not approved.
//
// For every active loan it derives the days remaining, the fine accumulated so far and whether the
// reader may renew it right now. Renewing requires that the loan is not overdue, that renewals are
// left and that nobody is waiting for the book.
package readerloans
