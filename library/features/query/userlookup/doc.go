// Package userlookup finds one user by id or by email, with the credentials needed to log in
// and the current profile and role.
//
// Looking up by email takes two reads: the registration carrying the email yields the user id,
// then all events of that user are loaded.
package userlookup
