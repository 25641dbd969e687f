package adapter

import "fmt"

// NetworkError is returned when the server answers with a non-2xx status.
// The body is kept verbatim for diagnostics.
type NetworkError struct {
	StatusCode int
	Body       string
}

func (e *NetworkError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Body)
}

// DecodeError is returned when a 2xx response body cannot be decoded into
// the expected transfer objects.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode server response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
