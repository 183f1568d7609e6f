// Package addbook implements the Add Book use case: a librarian adds a title with its copies to the catalog.
package addbook
