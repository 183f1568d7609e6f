// Package shell connects the pure core to the event store: mapping between domain events and
// storable events, event metadata, the retry loop for concurrency conflicts, the shared parts of
// the Query -> Unmarshal -> Decide -> Append workflow and the logging vocabulary of handlers.
//
// In Hexagonal Architecture terminology, this is the "adapter" layer around the core.
package shell
