package auth

import "fmt"

// ErrUnexpectedStatus is returned when the backend answers with a non-200 status.
type ErrUnexpectedStatus struct {
	Path   string
	Status string
	Body   string
}

func (e *ErrUnexpectedStatus) Error() string {
	return fmt.Sprintf("%s failed: status: %s, body: %s", e.Path, e.Status, e.Body)
}

func IsUnexpectedStatus(err error) bool {
	_, ok := err.(*ErrUnexpectedStatus)
	return ok
}
