package llm

import "fmt"

// Kind classifies a generation failure. Orchestrators use it to decide
// reporting, never control flow: every kind ends in a fallback.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindTimeout
	KindClientError
	KindServerError
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindClientError:
		return "client error"
	case KindServerError:
		return "server error"
	case KindMalformed:
		return "malformed response"
	default:
		return "unknown"
	}
}

// Error is the error type returned by text generators.
type Error struct {
	Kind     Kind
	Status   int // HTTP status for client/server errors, zero otherwise
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("generation failed (%s, status %d, %d attempts)", e.Kind, e.Status, e.Attempts)
	}
	if e.Err != nil {
		return fmt.Sprintf("generation failed (%s, %d attempts): %v", e.Kind, e.Attempts, e.Err)
	}
	return fmt.Sprintf("generation failed (%s, %d attempts)", e.Kind, e.Attempts)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether another attempt could have succeeded. Client
// errors are terminal, everything else is transient.
func (e *Error) Retryable() bool {
	return e.Kind != KindClientError && e.Kind != KindMalformed
}
