// Package adapters hides the differences between pgxpool.Pool, sql.DB and sqlx.DB behind
// the small DBAdapter interface the postgres engine needs.
package adapters
