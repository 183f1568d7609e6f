package readerfines

import (
	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	queryType = "ReaderFines"
)

// Query represents the intent to list the fines of a reader.
type Query struct {
	ReaderID core.UserIDString
}

// BuildQuery creates a new Query.
func BuildQuery(readerID core.UserIDString) Query {
	return Query{
		ReaderID: readerID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
