package component

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrMismatch is matched by *MismatchError.
var ErrMismatch = errors.New("component members do not match meta")

// ErrInvalidMeta is returned when a component meta document or Meta value is
// malformed.
var ErrInvalidMeta = errors.New("invalid component meta")

// MismatchError reports member files that the meta and the loaded members
// disagree on.
type MismatchError struct {
	// Missing are filenames listed in the meta without a loaded member.
	Missing []string
	// Redundant are loaded members the meta does not list.
	Redundant []string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: missing [%s], redundant [%s]",
		ErrMismatch, strings.Join(e.Missing, ", "), strings.Join(e.Redundant, ", "))
}

// Is matches ErrMismatch.
func (e *MismatchError) Is(target error) bool { return target == ErrMismatch }
