// Package cancelreservation implements the Cancel Reservation use case.
//
// Canceling a ready reservation releases the held copy to the next reader in the queue, who is notified after
// the append succeeded.
package cancelreservation
