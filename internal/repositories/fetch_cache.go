package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CachedPage is a single fetch cache entry.
type CachedPage struct {
	URL       string    `json:"url"`
	Body      string    `json:"body,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Get returns the cached body for a URL, or (nil, nil) on a miss.
func (c *FetchCache) Get(url string) (*CachedPage, error) {
	var page CachedPage
	err := c.db.QueryRow(
		"SELECT url, body, fetched_at FROM fetch_cache WHERE url = ?", url,
	).Scan(&page.URL, &page.Body, &page.FetchedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read fetch cache: %w", err)
	}

	return &page, nil
}

// Put stores a fetched body, replacing any previous entry for the URL.
func (c *FetchCache) Put(url, body string) error {
	_, err := c.db.Exec(`
		INSERT INTO fetch_cache (url, body, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		url, body, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to write fetch cache: %w", err)
	}
	return nil
}

// List returns cache entries newest-first, without bodies.
func (c *FetchCache) List() ([]CachedPage, error) {
	rows, err := c.db.Query("SELECT url, fetched_at FROM fetch_cache ORDER BY fetched_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list fetch cache: %w", err)
	}
	defer rows.Close()

	var pages []CachedPage
	for rows.Next() {
		var page CachedPage
		if err := rows.Scan(&page.URL, &page.FetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fetch cache row: %w", err)
		}
		pages = append(pages, page)
	}

	return pages, rows.Err()
}

// Clear removes every cache entry and returns how many were deleted.
func (c *FetchCache) Clear() (int64, error) {
	result, err := c.db.Exec("DELETE FROM fetch_cache")
	if err != nil {
		return 0, fmt.Errorf("failed to clear fetch cache: %w", err)
	}
	return result.RowsAffected()
}
