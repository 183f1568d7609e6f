package placereservation

import (
	"time"

	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	commandType = "PlaceReservation"
)

// Command represents the intent of a reader to queue for a book.
type Command struct {
	ReservationID core.ReservationIDString
	ReaderID      core.UserIDString
	BookID        core.BookIDString
	OccurredAt    core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	reservationID core.ReservationIDString,
	readerID core.UserIDString,
	bookID core.BookIDString,
	occurredAt time.Time,
) Command {

	return Command{
		ReservationID: reservationID,
		ReaderID:      readerID,
		BookID:        bookID,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
