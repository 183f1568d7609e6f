package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AntonStoeckl/biblioteca/library/features/query/catalog"
)

const (
	msgBooksFailed   = "Error al obtener los libros"
	msgGenresFailed  = "Error al obtener los géneros"
	msgAuthorsFailed = "Error al obtener los autores"
	msgBookNotFound  = "Libro no encontrado"
)

func (s *Server) loadCatalog(w http.ResponseWriter, r *http.Request, fallbackMessage string) (catalog.Catalog, bool) {
	result, err := s.handlers.Catalog.Handle(r.Context(), catalog.BuildQuery(s.now()))
	if err != nil {
		s.writeError(w, r, err, fallbackMessage)
		return catalog.Catalog{}, false
	}

	return result, true
}

func (s *Server) listBooks(w http.ResponseWriter, r *http.Request) {
	result, ok := s.loadCatalog(w, r, msgBooksFailed)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, orEmpty(result.Books))
}

func (s *Server) listGenres(w http.ResponseWriter, r *http.Request) {
	result, ok := s.loadCatalog(w, r, msgGenresFailed)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, orEmpty(result.Genres))
}

func (s *Server) listAuthors(w http.ResponseWriter, r *http.Request) {
	result, ok := s.loadCatalog(w, r, msgAuthorsFailed)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, orEmpty(result.Authors))
}

func (s *Server) getBook(w http.ResponseWriter, r *http.Request) {
	result, ok := s.loadCatalog(w, r, msgBooksFailed)
	if !ok {
		return
	}

	book, found := result.FindBook(chi.URLParam(r, "id"))
	if !found {
		writeMessage(w, http.StatusNotFound, msgBookNotFound)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

// orEmpty makes nil slices render as [] instead of null.
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}

	return items
}
