// Package activeloans implements the list of all loans not returned yet, as librarians see it
// when receiving returned books.
package activeloans
