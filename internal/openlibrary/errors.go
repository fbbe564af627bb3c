package openlibrary

import "fmt"

// NetworkError is returned when the catalog is unreachable or answers with a
// non-success status.
type NetworkError struct {
	Query      string
	StatusCode int // 0 for transport failures
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog search %q: unexpected status %d", e.Query, e.StatusCode)
	}
	return fmt.Sprintf("catalog search %q: %v", e.Query, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
