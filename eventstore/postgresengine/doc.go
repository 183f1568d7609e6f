// Package postgresengine provides a PostgreSQL implementation of the event store.
//
// Events live in one append-only table. Dynamic event streams are selected with an
// eventstore.Filter which compiles to event_type equality and JSONB containment
// predicates on the payload, all sent as bound parameters.
//
// Supported database handles:
//   - *pgxpool.Pool (pgx/v5)
//   - *sql.DB (lib/pq)
//   - *sqlx.DB
//
// Append runs in a short transaction that takes a transaction scoped advisory lock before the
// conditional INSERT, so two writers deciding on overlapping streams are serialized even under
// READ COMMITTED.
//
// Usage:
//
//	pool, _ := pgxpool.New(ctx, dsn)
//	store, _ := postgresengine.NewEventStoreFromPGXPool(pool, postgresengine.WithLogger(slog.Default()))
//	_ = store.EnsureSchema(ctx)
//
//	events, maxSeq, _ := store.Query(ctx, filter)
//	err := store.Append(ctx, filter, maxSeq, newEvent)
package postgresengine
