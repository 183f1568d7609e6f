package readmodel

import (
	"strings"

	"github.com/AntonStoeckl/biblioteca/library/core"
)

// CoverPlaceholder is the image shown for every book, there are no covers yet.
const CoverPlaceholder = "/placeholder.svg"

// BookRef is a book as nested into loans, fines, reservations and requests.
type BookRef struct {
	ID     core.BookIDString `json:"id"`
	Titulo string            `json:"titulo"`
	Nombre string            `json:"nombre"`
	Autor  string            `json:"autor"`
	ISBN   core.ISBNString   `json:"isbn"`
	Imagen string            `json:"imagen"`
}

// UserRef is a user as nested into requests, loans and fines.
type UserRef struct {
	ID     core.UserIDString `json:"id"`
	Nombre string            `json:"nombre"`
	Email  string            `json:"email"`
}

// Books returns a reference for every book that was ever added, removed ones included.
func Books(history core.DomainEvents) map[core.BookIDString]BookRef {
	books := make(map[core.BookIDString]BookRef)

	for _, event := range history {
		if e, ok := event.(core.BookAddedToCatalog); ok {
			books[e.BookID] = BookRef{
				ID:     e.BookID,
				Titulo: e.Title,
				Nombre: e.Title,
				Autor:  strings.Join(e.Authors, ", "),
				ISBN:   e.ISBN,
				Imagen: CoverPlaceholder,
			}
		}
	}

	return books
}

// BookOrUnknown returns the reference of bookID, or a reference carrying only the id.
func BookOrUnknown(books map[core.BookIDString]BookRef, bookID core.BookIDString) BookRef {
	if b, ok := books[bookID]; ok {
		return b
	}

	return BookRef{ID: bookID, Imagen: CoverPlaceholder}
}

// Users returns a reference for every registered user, with the latest profile.
func Users(history core.DomainEvents) map[core.UserIDString]UserRef {
	users := make(map[core.UserIDString]UserRef)

	for _, event := range history {
		switch e := event.(type) {
		case core.UserRegistered:
			users[e.UserID] = UserRef{ID: e.UserID, Nombre: e.Profile.DisplayName(), Email: e.Email}

		case core.UserProfileUpdated:
			if u, ok := users[e.UserID]; ok {
				u.Nombre = e.Profile.DisplayName()
				users[e.UserID] = u
			}
		}
	}

	return users
}

// UserOrUnknown returns the reference of userID, or "Desconocido" placeholders.
func UserOrUnknown(users map[core.UserIDString]UserRef, userID core.UserIDString) UserRef {
	if u, ok := users[userID]; ok {
		return u
	}

	return UserRef{ID: userID, Nombre: "Desconocido", Email: "Desconocido"}
}

// UserEventTypes are the event types that define a user.
func UserEventTypes() []string {
	return []string{
		core.UserRegisteredEventType,
		core.UserProfileUpdatedEventType,
		core.UserRoleChangedEventType,
	}
}
