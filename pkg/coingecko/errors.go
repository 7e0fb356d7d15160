package coingecko

import "fmt"

// NotFoundError is returned when the API does not know the requested coin.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cryptocurrency %q not found", e.ID)
}

// ThrottledError is returned when the API keeps rate limiting after the
// single backoff retry.
type ThrottledError struct{}

func (e *ThrottledError) Error() string {
	return "market data API rate limit exceeded"
}

// StatusError is any other non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API error: %d", e.Code)
	}
	return fmt.Sprintf("API error: %d - %s", e.Code, e.Body)
}

// ParseError is a response body that did not decode into the expected shape.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
