// Package returnbook implements the Return Book use case.
//
// A late return appends a FineAssessed together with the BookReturned. The returned copy may become ready for
// the next reader in the reservation queue, who is notified after the append succeeded.
package returnbook
