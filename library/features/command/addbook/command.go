package addbook

import (
	"strings"
	"time"

	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	commandType = "AddBook"
)

// Command represents the intent to add a book to the catalog.
type Command struct {
	BookID     core.BookIDString
	ISBN       core.ISBNString
	Title      string
	Authors    []string
	Genres     []string
	Copies     int
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command. Blank authors and genres are dropped.
func BuildCommand(
	bookID core.BookIDString,
	isbn core.ISBNString,
	title string,
	authors []string,
	genres []string,
	copies int,
	occurredAt time.Time,
) Command {

	return Command{
		BookID:     bookID,
		ISBN:       strings.TrimSpace(isbn),
		Title:      strings.TrimSpace(title),
		Authors:    cleanNames(authors),
		Genres:     cleanNames(genres),
		Copies:     copies,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

func cleanNames(names []string) []string {
	cleaned := make([]string, 0, len(names))

	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}

	return cleaned
}
