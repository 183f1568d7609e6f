package requestloan

import (
	"slices"
	"time"

	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	commandType = "RequestLoan"
)

// Command represents the intent of a reader to borrow books.
type Command struct {
	RequestID  core.RequestIDString
	ReaderID   core.UserIDString
	BookIDs    []core.BookIDString
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command. Book ids are de-duplicated, keeping their order.
func BuildCommand(
	requestID core.RequestIDString,
	readerID core.UserIDString,
	bookIDs []core.BookIDString,
	occurredAt time.Time,
) Command {

	distinct := make([]core.BookIDString, 0, len(bookIDs))
	for _, bookID := range bookIDs {
		if bookID != "" && !slices.Contains(distinct, bookID) {
			distinct = append(distinct, bookID)
		}
	}

	return Command{
		RequestID:  requestID,
		ReaderID:   readerID,
		BookIDs:    distinct,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
