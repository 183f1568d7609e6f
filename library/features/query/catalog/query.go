package catalog

import "time"

const (
	queryType = "Catalog"
)

// Query represents the intent to look at the catalog as of At.
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
