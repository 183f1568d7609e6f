// Package registeredusers implements the user list of the administration area.
package registeredusers
