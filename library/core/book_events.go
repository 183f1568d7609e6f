package core

import "time"

const (
	BookAddedToCatalogEventType     = "BookAddedToCatalog"
	BookCopiesAdjustedEventType     = "BookCopiesAdjusted"
	BookRemovedFromCatalogEventType = "BookRemovedFromCatalog"
)

// BookAddedToCatalog represents a title entering the catalog with a number of physical copies.
type BookAddedToCatalog struct {
	BookID     BookIDString
	ISBN       ISBNString
	Title      string
	Authors    []string
	Genres     []string
	Copies     int
	OccurredAt OccurredAtTS
}

// BuildBookAddedToCatalog creates a new BookAddedToCatalog event.
func BuildBookAddedToCatalog(
	bookID BookIDString,
	isbn ISBNString,
	title string,
	authors []string,
	genres []string,
	copies int,
	occurredAt time.Time,
) BookAddedToCatalog {

	return BookAddedToCatalog{
		BookID:     bookID,
		ISBN:       isbn,
		Title:      title,
		Authors:    authors,
		Genres:     genres,
		Copies:     copies,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e BookAddedToCatalog) EventType() string {
	return BookAddedToCatalogEventType
}

func (e BookAddedToCatalog) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e BookAddedToCatalog) IsErrorEvent() bool {
	return false
}

// BookCopiesAdjusted sets the total number of physical copies of a book.
type BookCopiesAdjusted struct {
	BookID     BookIDString
	Copies     int
	OccurredAt OccurredAtTS
}

// BuildBookCopiesAdjusted creates a new BookCopiesAdjusted event.
func BuildBookCopiesAdjusted(bookID BookIDString, copies int, occurredAt time.Time) BookCopiesAdjusted {
	return BookCopiesAdjusted{
		BookID:     bookID,
		Copies:     copies,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e BookCopiesAdjusted) EventType() string {
	return BookCopiesAdjustedEventType
}

func (e BookCopiesAdjusted) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e BookCopiesAdjusted) IsErrorEvent() bool {
	return false
}

// BookRemovedFromCatalog represents a title leaving the catalog. The ISBN becomes free again.
type BookRemovedFromCatalog struct {
	BookID     BookIDString
	ISBN       ISBNString
	OccurredAt OccurredAtTS
}

// BuildBookRemovedFromCatalog creates a new BookRemovedFromCatalog event.
func BuildBookRemovedFromCatalog(bookID BookIDString, isbn ISBNString, occurredAt time.Time) BookRemovedFromCatalog {
	return BookRemovedFromCatalog{
		BookID:     bookID,
		ISBN:       isbn,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e BookRemovedFromCatalog) EventType() string {
	return BookRemovedFromCatalogEventType
}

func (e BookRemovedFromCatalog) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e BookRemovedFromCatalog) IsErrorEvent() bool {
	return false
}
