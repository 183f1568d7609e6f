// Package core contains the domain of the library: the events of user administration,
// the catalog and circulation (loan requests, loans, fines and reservations), the
// decision result type shared by all command features and the circulation projection
// which derives copies, loans and the reservation queue of one book from its history.
//
// Everything in here is pure: no I/O, no clock. Time always comes in as a parameter.
package core
