// Package readerfines implements the list of fines of a reader with the loan each fine belongs to.
package readerfines
