// Package catalog implements the public catalog query.
//
// It projects every book that is currently in the catalog with its copies, the copies available
// for a new loan and the length of its reservation queue. The genre and author lists offered by
// the catalog filters are derived from the same projection, with ids assigned by sorted name.
//
// This is a read-only operation. Removed books are not part of the result.
package catalog
