package activeloans

import "time"

const (
	queryType = "ActiveLoans"
)

// Query represents the intent to list the active loans as of At.
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
