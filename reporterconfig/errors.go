package reporterconfig

import "fmt"

// Error reports a missing or invalid configuration option. Reporter
// construction stops at the first one encountered and leaves no usable
// reporter behind.
type Error struct {
	Option string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("configuration option %q: %s", e.Option, e.Reason)
}

// MissingOption builds the Error for a required option that was not supplied.
func MissingOption(option string) *Error {
	return &Error{Option: option, Reason: "required but not supplied"}
}
