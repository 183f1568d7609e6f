package config

import (
	"context"
	"log/slog"

	"github.com/AntonStoeckl/biblioteca/eventstore/memoryengine"
	"github.com/AntonStoeckl/biblioteca/eventstore/postgresengine"
	"github.com/AntonStoeckl/biblioteca/library/shell"
)

// Store is the configured event store together with its lifecycle.
type Store struct {
	shell.EventStore
	ensureSchema func(ctx context.Context) error
	closers      []func()
}

// EnsureSchema creates the events table if the engine needs one.
func (s Store) EnsureSchema(ctx context.Context) error {
	if s.ensureSchema == nil {
		return nil
	}

	return s.ensureSchema(ctx)
}

// Close releases all database connections.
func (s Store) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// OpenEventStore connects to the database selected by db.Adapter and builds the event store.
// engineOptions are passed on to the postgres engine, the memory engine ignores them.
func OpenEventStore(ctx context.Context, db Database, logger *slog.Logger, engineOptions ...postgresengine.Option) (Store, error) {
	if db.Adapter == AdapterMemory {
		if logger == nil {
			return Store{EventStore: memoryengine.NewEventStore()}, nil
		}

		return Store{EventStore: memoryengine.NewEventStore(memoryengine.WithLogger(logger))}, nil
	}

	options := []postgresengine.Option{postgresengine.WithTableName(db.TableName)}
	if logger != nil {
		options = append(options, postgresengine.WithLogger(logger))
	}
	options = append(options, engineOptions...)

	store := Store{}

	var (
		eventStore postgresengine.EventStore
		err        error
	)

	switch db.Adapter {
	case AdapterSQLDB:
		eventStore, err = openSQLDB(ctx, db, &store, options)
	case AdapterSQLXDB:
		eventStore, err = openSQLX(ctx, db, &store, options)
	default:
		eventStore, err = openPGXPool(ctx, db, &store, options)
	}

	if err != nil {
		store.Close()
		return Store{}, err
	}

	store.EventStore = eventStore
	store.ensureSchema = eventStore.EnsureSchema

	return store, nil
}

func openPGXPool(ctx context.Context, db Database, store *Store, options []postgresengine.Option) (postgresengine.EventStore, error) {
	primary, err := PostgresPGXPool(ctx, db.URL)
	if err != nil {
		return postgresengine.EventStore{}, err
	}
	store.closers = append(store.closers, primary.Close)

	if db.ReplicaURL != "" {
		replica, replicaErr := PostgresPGXPool(ctx, db.ReplicaURL)
		if replicaErr != nil {
			return postgresengine.EventStore{}, replicaErr
		}
		store.closers = append(store.closers, replica.Close)
		options = append(options, postgresengine.WithPGXReplica(replica))
	}

	return postgresengine.NewEventStoreFromPGXPool(primary, options...)
}

func openSQLDB(ctx context.Context, db Database, store *Store, options []postgresengine.Option) (postgresengine.EventStore, error) {
	primary, err := PostgresSQLDB(ctx, db.URL)
	if err != nil {
		return postgresengine.EventStore{}, err
	}
	store.closers = append(store.closers, func() { _ = primary.Close() })

	if db.ReplicaURL != "" {
		replica, replicaErr := PostgresSQLDB(ctx, db.ReplicaURL)
		if replicaErr != nil {
			return postgresengine.EventStore{}, replicaErr
		}
		store.closers = append(store.closers, func() { _ = replica.Close() })
		options = append(options, postgresengine.WithSQLReplica(replica))
	}

	return postgresengine.NewEventStoreFromSQLDB(primary, options...)
}

func openSQLX(ctx context.Context, db Database, store *Store, options []postgresengine.Option) (postgresengine.EventStore, error) {
	primary, err := PostgresSQLX(ctx, db.URL)
	if err != nil {
		return postgresengine.EventStore{}, err
	}
	store.closers = append(store.closers, func() { _ = primary.Close() })

	if db.ReplicaURL != "" {
		replica, replicaErr := PostgresSQLX(ctx, db.ReplicaURL)
		if replicaErr != nil {
			return postgresengine.EventStore{}, replicaErr
		}
		store.closers = append(store.closers, func() { _ = replica.Close() })
		options = append(options, postgresengine.WithSQLXReplica(replica))
	}

	return postgresengine.NewEventStoreFromSQLX(primary, options...)
}
