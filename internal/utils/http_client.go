// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes the shared HTTP client wrapper and identifier generation.
package utils

import (
	"net/http/cookiejar"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().Get("https://example.com")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient instance
// with a default-configured underlying resty.Client.
//
// The client carries an in-memory cookie jar so that the session cookie set
// by the backend on login is attached to every subsequent request.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, cookie jar, and state.
func NewHTTPClient() *HTTPClient {
	client := resty.New()
	if jar, err := cookiejar.New(nil); err == nil {
		client.SetCookieJar(jar)
	}
	return &HTTPClient{Client: client}
}
