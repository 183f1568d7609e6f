// Package readerreservations implements the reservations view of a reader.
//
// Waiting reservations show their place in the queue. Ready reservations show since when the copy
// is held and how long is left to pick it up. Expiry is evaluated at query time, so a hold whose
// pickup window ended shows as expired even though no event recorded it.
package readerreservations
