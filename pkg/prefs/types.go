package prefs

type ErrNotFound struct {
	Key string
}

func (e *ErrNotFound) Error() string {
	return "key not found: " + e.Key
}

func IsNotFound(err error) bool {
	_, ok := err.(*ErrNotFound)
	return ok
}
