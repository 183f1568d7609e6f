// Package adjustbookcopies implements the Adjust Book Copies use case.
//
// Raising the number of copies can make waiting reservations ready for pickup. Those readers are notified
// after the append succeeded.
package adjustbookcopies
