package apperrors

import "fmt"

// ErrMissingConfig represents a user-visible configuration error: a required
// API key, URL, or parameter was not provided. These surface to the host with
// their message intact and never produce a partial result.
type ErrMissingConfig struct {
	Message string
}

// Error implements the error interface.
func (e *ErrMissingConfig) Error() string {
	return e.Message
}

// Is allows for error checking with errors.Is().
func (e *ErrMissingConfig) Is(target error) bool {
	_, ok := target.(*ErrMissingConfig)
	return ok
}

// NewMissingConfigError creates a new ErrMissingConfig with the given
// human-readable message (e.g. "MDBList API Key required.").
func NewMissingConfigError(message string) *ErrMissingConfig {
	return &ErrMissingConfig{Message: message}
}

// ErrCatalogNotFound is returned when a requested catalog or widget module id
// is not present in the static tables.
type ErrCatalogNotFound struct {
	ID string
}

// Error implements the error interface.
func (e *ErrCatalogNotFound) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("catalog %q not found", e.ID)
	}
	return "catalog not found"
}

// Is allows for error checking with errors.Is().
func (e *ErrCatalogNotFound) Is(target error) bool {
	_, ok := target.(*ErrCatalogNotFound)
	return ok
}

// NewCatalogNotFoundError creates a new ErrCatalogNotFound.
func NewCatalogNotFoundError(id string) *ErrCatalogNotFound {
	return &ErrCatalogNotFound{ID: id}
}

// ErrUpstream represents a list-level upstream failure: the whole catalog
// fetch failed (network error, non-2xx status, or an unparseable body).
// Inside a merge boundary it degrades to zero items; for a single-source
// widget it surfaces to the host with a descriptive message.
type ErrUpstream struct {
	Source     string
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *ErrUpstream) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request failed with status %d: %s", e.Source, e.StatusCode, e.URL)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s request failed: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("%s request failed", e.Source)
}

// Unwrap returns the underlying transport error, if any.
func (e *ErrUpstream) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ErrUpstream) Is(target error) bool {
	_, ok := target.(*ErrUpstream)
	return ok
}

// NewUpstreamError creates a new ErrUpstream wrapping a transport error.
func NewUpstreamError(source, url string, err error) *ErrUpstream {
	return &ErrUpstream{Source: source, URL: url, Err: err}
}

// NewUpstreamStatusError creates a new ErrUpstream for a non-2xx response.
func NewUpstreamStatusError(source, url string, statusCode int) *ErrUpstream {
	return &ErrUpstream{Source: source, URL: url, StatusCode: statusCode}
}
