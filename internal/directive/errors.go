package directive

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// ErrNoPassword is reported when a configuration ends without a password.
var ErrNoPassword = errors.New("password not specified")

// LineError is a problem with one line of a configuration file.
type LineError struct {
	File string
	Line int
	Msg  string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// Errors splits an error returned by Parse into the individual problems,
// one per offending line plus ErrNoPassword when it applies.
func Errors(err error) []error {
	return multierr.Errors(err)
}
