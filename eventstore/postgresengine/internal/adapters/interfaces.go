package adapters

import "context"

// DBAdapter defines the database operations needed by the event store.
type DBAdapter interface {
	// Query runs a read statement. readFromReplica is honoured when a replica is configured.
	Query(ctx context.Context, readFromReplica bool, query string, args ...any) (DBRows, error)

	// Exec runs a statement outside an explicit transaction.
	Exec(ctx context.Context, query string, args ...any) (DBResult, error)

	// ExecLocked runs a statement inside a transaction that first takes the transaction scoped
	// advisory lock lockKey. Appends use it so the max sequence check sees all committed rows.
	ExecLocked(ctx context.Context, lockKey int64, query string, args ...any) (DBResult, error)
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}

const advisoryLockStatement = "SELECT pg_advisory_xact_lock($1)"
