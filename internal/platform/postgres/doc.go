// Package postgres provides PostgreSQL implementations of the store
// interfaces, using the pgx stdlib driver over database/sql.
package postgres
