// Package auth issues and verifies the access tokens of the HTTP API and hashes passwords.
package auth
