package providers

import (
	"errors"
	"fmt"
)

// ErrChatClosed marks a room closed by policy after a game ends. It is a
// terminal state, not a failure; consumers must not present it as a load
// error.
var ErrChatClosed = errors.New("chat room closed")

// StatusError reports an unexpected upstream HTTP status.
type StatusError struct {
	Endpoint string
	Status   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.Status)
}

// IsTransient reports whether an error is worth retrying. Policy closures
// and client-side mistakes are not.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, ErrChatClosed) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status >= 500 || se.Status == 429
	}
	return true
}
