package postgresengine

import (
	"database/sql"
	"regexp"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/biblioteca/eventstore"
)

var validTableName = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,62}$`)

// Logger interface for SQL query logging, operational information, warnings, and error reporting.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option defines a functional option for configuring EventStore.
type Option func(*EventStore) error

// WithTableName sets the table name for the EventStore.
// Only lower case identifiers are accepted since the name is interpolated into DDL.
func WithTableName(tableName string) Option {
	return func(es *EventStore) error {
		if tableName == "" {
			return eventstore.ErrEmptyEventsTableName
		}

		if !validTableName.MatchString(tableName) {
			return ErrInvalidEventsTableName
		}

		es.eventTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the EventStore.
//
// Debug level: SQL statements with execution timing
// Info level: event counts, durations, concurrency conflicts
// Warn level: non-critical issues like cleanup failures
// Error level: failures that abort the operation.
func WithLogger(logger Logger) Option {
	return func(es *EventStore) error {
		es.logger = logger
		return nil
	}
}

// WithMetrics records the duration, event counts and failures of Query and Append.
func WithMetrics(collector eventstore.MetricsCollector) Option {
	return func(es *EventStore) error {
		es.metrics = collector
		return nil
	}
}

// WithTracing wraps every Query and Append in a span.
func WithTracing(collector eventstore.TracingCollector) Option {
	return func(es *EventStore) error {
		es.tracing = collector
		return nil
	}
}

// WithPGXReplica configures a read replica used for queries with eventual consistency.
// It only has an effect on stores created with NewEventStoreFromPGXPool.
func WithPGXReplica(replica *pgxpool.Pool) Option {
	return func(es *EventStore) error {
		es.pgxReplica = replica
		return nil
	}
}

// WithSQLReplica is WithPGXReplica for stores created with NewEventStoreFromSQLDB.
func WithSQLReplica(replica *sql.DB) Option {
	return func(es *EventStore) error {
		es.sqlReplica = replica
		return nil
	}
}

// WithSQLXReplica is WithPGXReplica for stores created with NewEventStoreFromSQLX.
func WithSQLXReplica(replica *sqlx.DB) Option {
	return func(es *EventStore) error {
		es.sqlxReplica = replica
		return nil
	}
}
