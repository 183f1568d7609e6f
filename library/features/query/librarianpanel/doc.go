// Package librarianpanel implements the summary shown on the librarian dashboard.
package librarianpanel
