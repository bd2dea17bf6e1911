// Package jsearch provides a client for the JSearch job postings API.
package jsearch

import "time"

// Config holds configuration for the JSearch API client.
type Config struct {
	APIKey  string        // RapidAPI key
	BaseURL string        // e.g. "https://jsearch.p.rapidapi.com"
	Timeout time.Duration // HTTP request timeout
}
