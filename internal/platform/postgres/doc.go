// Package postgres provides the PostgreSQL implementation of store.KVStore.
// It opens connections through the pgx stdlib driver, maps PostgreSQL
// errors onto the store package's sentinel errors, and owns the schema
// migrations (embedded SQL applied with goose).
package postgres
