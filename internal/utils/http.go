// Package utils provides common utility functions for internal packages.
//
// This package contains shared functionality that is used across
// multiple internal modules, including hex validation and HTTP utilities.
package utils

import (
	"net/http"
	"time"
)

// NewHTTPClient creates an HTTP client with the given overall timeout.
//
// The transport is a clone of http.DefaultTransport, so connection reuse
// follows the standard library defaults. Only the response header timeout
// is bounded by the same timeout.
//
// Parameters:
//   - timeout: Overall request timeout, zero means no timeout
//
// Returns:
//   - *http.Client: Configured HTTP client instance
//
// Example:
//
//	client := NewHTTPClient(10 * time.Second)
//	resp, err := client.Do(req)
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if timeout > 0 {
		transport.ResponseHeaderTimeout = timeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
