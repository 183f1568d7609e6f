// Package updateprofile implements the Update Profile use case: a user replaces their personal data.
package updateprofile
