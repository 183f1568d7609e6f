package catalog

import (
	"cmp"
	"slices"

	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/query/internal/readmodel"
)

// Project builds the catalog from the circulation history.
//
// Query Logic:
//
//	GIVEN: The circulation events of all books
//	WHEN: Catalog query is executed
//	THEN: Catalog is returned with one entry per book in the catalog, sorted by title
//	INCLUDES: copies, copies available for a new loan, queue length, authors and genres
//	EXCLUDES: Books removed from the catalog
func Project(history core.DomainEvents, query Query, policy core.Policy) Catalog {
	var bookIDs []core.BookIDString

	for _, event := range history {
		if e, ok := event.(core.BookAddedToCatalog); ok && !slices.Contains(bookIDs, e.BookID) {
			bookIDs = append(bookIDs, e.BookID)
		}
	}

	circulations := make([]core.Circulation, 0, len(bookIDs))
	for _, bookID := range bookIDs {
		c := core.ProjectCirculation(history, bookID, query.At, policy)
		if c.InCatalog {
			circulations = append(circulations, c)
		}
	}

	genres := namedRefs(circulations, func(c core.Circulation) []string { return c.Genres })
	authors := namedRefs(circulations, func(c core.Circulation) []string { return c.Authors })

	books := make([]Book, 0, len(circulations))
	for _, c := range circulations {
		books = append(books, Book{
			ID:          c.BookID,
			Nombre:      c.Title,
			ISBN:        c.ISBN,
			Cantidad:    c.Copies,
			Disponibles: c.AvailableCopies(),
			EnCola:      len(c.Queue),
			Autores:     pick(authors, c.Authors),
			Generos:     pick(genres, c.Genres),
			Portada:     readmodel.CoverPlaceholder,
			Rating:      DefaultRating,
		})
	}

	slices.SortStableFunc(books, func(a, b Book) int {
		return cmp.Or(cmp.Compare(a.Nombre, b.Nombre), cmp.Compare(a.ID, b.ID))
	})

	return Catalog{
		Books:   books,
		Genres:  genres,
		Authors: authors,
		Count:   len(books),
	}
}

// namedRefs collects the distinct names in sorted order and numbers them from 1.
func namedRefs(circulations []core.Circulation, namesOf func(core.Circulation) []string) []NamedRef {
	var names []string

	for _, c := range circulations {
		for _, name := range namesOf(c) {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}

	slices.Sort(names)

	refs := make([]NamedRef, 0, len(names))
	for i, name := range names {
		refs = append(refs, NamedRef{ID: i + 1, Nombre: name})
	}

	return refs
}

func pick(refs []NamedRef, names []string) []NamedRef {
	picked := make([]NamedRef, 0, len(names))

	for _, name := range names {
		idx := slices.IndexFunc(refs, func(r NamedRef) bool { return r.Nombre == name })
		if idx >= 0 {
			picked = append(picked, refs[idx])
		}
	}

	return picked
}

// BuildEventFilter selects the circulation events of all books.
func BuildEventFilter() eventstore.Filter {
	eventTypes := core.CirculationEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(eventTypes[0], eventTypes[1:]...).
		Finalize()
}
