// Package eventstore holds the storage-agnostic building blocks of the biblioteca event log.
//
// Every state change in the library (a reader registering, a loan being approved, a fine
// being paid) is recorded as an immutable event. Command handlers read the slice of the log
// that is relevant for one decision through a Filter, decide, and append new events
// conditionally: Append only succeeds if nothing matching the same Filter was written in
// the meantime. This is how consistency boundaries are drawn per use case instead of per
// aggregate.
//
// Typical usage:
//
//	filter := eventstore.BuildEventFilter().
//		Matching().
//		AnyEventTypeOf(core.LoanStartedEventType, core.BookReturnedEventType).
//		AndAnyPredicateOf(eventstore.P("LoanID", loanID.String())).
//		Finalize()
//
//	events, maxSeq, err := store.Query(ctx, filter)
//	// ... decide ...
//	err = store.Append(ctx, filter, maxSeq, newEvent)
//
// Engines live in sub packages: postgresengine for production and memoryengine for tests
// and local development.
package eventstore
