package librarianpanel

import "time"

const (
	queryType = "LibrarianPanel"
)

// Query represents the intent to summarize the library as of At.
type Query struct {
	At time.Time
}

// BuildQuery creates a new Query.
func BuildQuery(at time.Time) Query {
	return Query{
		At: at,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
