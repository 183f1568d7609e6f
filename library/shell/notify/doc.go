// Package notify tells readers that a reserved book is waiting for them.
package notify
