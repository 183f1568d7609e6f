package readerpanel

import (
	"time"

	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	queryType = "ReaderPanel"
)

// Query represents the intent to summarize the activity of a reader as of At.
type Query struct {
	ReaderID core.UserIDString
	At       time.Time
}

// BuildQuery creates a new Query.
func BuildQuery(readerID core.UserIDString, at time.Time) Query {
	return Query{
		ReaderID: readerID,
		At:       at,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
