// Package readmodel holds the small views and loaders that several query features share:
// book and user references as they appear nested in query results, and the history of one reader.
package readmodel
