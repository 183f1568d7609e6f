// Package registeruser implements the Register User use case.
//
// Anyone may register as a reader. Administrators may register users with any role.
// The email address identifies a user and must be unique.
package registeruser
