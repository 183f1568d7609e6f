package adjustbookcopies

import (
	"time"

	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	commandType = "AdjustBookCopies"
)

// Command represents the intent to set the number of physical copies of a book.
type Command struct {
	BookID     core.BookIDString
	Copies     int
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID core.BookIDString, copies int, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		Copies:     copies,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
