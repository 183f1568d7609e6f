// Package processfine implements the Process Fine use case: a fine is paid or waived.
//
// Librarians may do both. Readers may only pay their own fines.
package processfine
