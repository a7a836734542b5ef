package github

import "time"

const DefaultAPIURL = "https://api.github.com/"

// Config holds configuration for GitHub operations
type Config struct {
	APIURL            string
	PerPage           int
	MaxPages          int
	RequestsPerSecond float64
	Burst             int
	Timeout           time.Duration
	UserAgent         string
	ShowProgress      bool
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		APIURL:            DefaultAPIURL,
		PerPage:           100,
		MaxPages:          20,
		RequestsPerSecond: 5,
		Burst:             5,
		Timeout:           15 * time.Second,
		ShowProgress:      false,
	}
}
