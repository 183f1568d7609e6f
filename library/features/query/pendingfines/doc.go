// Package pendingfines implements the list of fines librarians can mark as paid or waive.
package pendingfines
