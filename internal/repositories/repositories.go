// package repositories provides the persistence layer for locally cached data.
//
// The agent itself is stateless; only the opt-in fetch cache touches disk,
// backed by the SQLite database initialized by `daylight setup`.
package repositories

import "database/sql"

// FetchCache stores fetched page bodies keyed by URL.
type FetchCache struct {
	db *sql.DB
}

// NewFetchCache creates a FetchCache backed by the given database.
func NewFetchCache(db *sql.DB) *FetchCache {
	return &FetchCache{db: db}
}
