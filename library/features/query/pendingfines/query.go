package pendingfines

const (
	queryType = "PendingFines"
)

// Query represents the intent to list the fines. IncludeClosed adds paid and waived fines.
type Query struct {
	IncludeClosed bool
}

// BuildQuery creates a new Query.
func BuildQuery(includeClosed bool) Query {
	return Query{
		IncludeClosed: includeClosed,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
