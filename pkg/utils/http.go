package utils

import "net/http"

// UserAgent identifies the normalizer to remote dataset providers.
const UserAgent = "jobnorm/1.0"

// HTTPHelper provides HTTP utility functions.
type HTTPHelper struct{}

// NewHTTPHelper creates a new HTTP helper.
func NewHTTPHelper() *HTTPHelper {
	return &HTTPHelper{}
}

// BuildHeaders creates HTTP headers with defaults.
func (h *HTTPHelper) BuildHeaders(customHeaders map[string]string) http.Header {
	headers := http.Header{}

	headers.Set("User-Agent", UserAgent)
	headers.Set("Accept", "application/zip, application/octet-stream")

	for key, value := range customHeaders {
		headers.Set(key, value)
	}

	return headers
}
