package eventstore

import (
	"errors"
)

var (
	// ErrConcurrencyConflict is returned by Append when another writer changed the filtered stream after the Query.
	ErrConcurrencyConflict = errors.New("concurrency conflict, the event stream was modified")

	// ErrEmptyEventsTableName is returned when an engine is configured with an empty table name.
	ErrEmptyEventsTableName = errors.New("events table name must not be empty")

	// ErrNilDatabaseConnection is returned when an engine is created without a database handle.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrNoEventsToAppend is returned when Append is called without any event.
	ErrNoEventsToAppend = errors.New("at least one event is required to append")

	ErrBuildingQueryFailed         = errors.New("building query failed")
	ErrQueryingEventsFailed        = errors.New("querying events failed")
	ErrScanningDBRowFailed         = errors.New("scanning db row failed")
	ErrBuildingStorableEventFailed = errors.New("building storable event failed")
	ErrAppendingEventFailed        = errors.New("appending event failed")
	ErrGettingRowsAffectedFailed   = errors.New("getting rows affected failed")
)

// MaxSequenceNumberUint is the highest sequence number seen in a filtered ("dynamic") event stream.
// Zero means the stream is empty.
type MaxSequenceNumberUint = uint
