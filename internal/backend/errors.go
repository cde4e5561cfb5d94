package backend

import "fmt"

// APIError is any failure talking to the backend: transport errors carry a
// zero Status, HTTP failures the response code. Either way the message is
// meant for the user; there is nothing to retry automatically.
type APIError struct {
	Op      string // which operation failed, e.g. "upload video"
	Status  int    // HTTP status, 0 for transport failures
	Message string
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: backend returned status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}
