// Package removebook implements the Remove Book use case. Active reservations of a removed book are canceled.
package removebook
