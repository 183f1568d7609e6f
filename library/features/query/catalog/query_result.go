package catalog

import (
	"github.com/AntonStoeckl/biblioteca/library/core"
)

// DefaultRating is shown for every book until readers can rate them.
const DefaultRating = 4.5

// NamedRef is a genre or an author as the catalog filters list them.
type NamedRef struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

// Book is one entry of the catalog.
type Book struct {
	ID          core.BookIDString `json:"id"`
	Nombre      string            `json:"nombre"`
	ISBN        core.ISBNString   `json:"isbn"`
	Cantidad    int               `json:"cantidad"`
	Disponibles int               `json:"disponibles"`
	EnCola      int               `json:"enCola"`
	Autores     []NamedRef        `json:"autores"`
	Generos     []NamedRef        `json:"generos"`
	Portada     string            `json:"portada"`
	Rating      float64           `json:"rating"`
}

// Catalog is the query result.
type Catalog struct {
	Books   []Book
	Genres  []NamedRef
	Authors []NamedRef
	Count   int
}

// FindBook returns the catalog entry of bookID.
func (c Catalog) FindBook(bookID core.BookIDString) (Book, bool) {
	for _, b := range c.Books {
		if b.ID == bookID {
			return b, true
		}
	}

	return Book{}, false
}
