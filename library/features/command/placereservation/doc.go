// Package placereservation implements the Place Reservation use case: a reader queues for a book without free copies.
//
// The handler queries in two phases: the reservations of the reader first, to learn the books they are queued for,
// then the circulation of those books and of the requested one. The active reservations of the reader are counted
// across all of them.
package placereservation
