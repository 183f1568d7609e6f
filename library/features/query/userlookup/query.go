package userlookup

import (
	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	queryType = "UserLookup"
)

// Query represents the intent to find one user. Email is used when UserID is empty.
type Query struct {
	UserID core.UserIDString
	Email  string
}

// BuildByIDQuery creates a Query for the user with userID.
func BuildByIDQuery(userID core.UserIDString) Query {
	return Query{
		UserID: userID,
	}
}

// BuildByEmailQuery creates a Query for the user registered with email.
func BuildByEmailQuery(email string) Query {
	return Query{
		Email: core.NormalizeEmail(email),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
