package keypath

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrPathSyntax is returned when a path string is malformed.
var ErrPathSyntax = errors.New("path syntax error")

// ErrUnknownTokenType is returned when a path segment cannot be classified.
var ErrUnknownTokenType = errors.New("unknown token type")

// ErrMissing is returned by Key.Get and Key.Delete when the key is absent.
var ErrMissing = errors.New("key not present")

// ErrUnsupported is returned when a key operation is applied to a container
// that lacks the required capability.
var ErrUnsupported = errors.New("container does not support key")

// TokenInfo locates a token inside a tokenized path.
type TokenInfo struct {
	// Tokens holds the raw source form of every token.
	Tokens []string
	// Index is the position of the offending token in Tokens.
	Index int
}

// Current returns the raw text of the offending token.
func (ti TokenInfo) Current() string {
	if ti.Index < 0 || ti.Index >= len(ti.Tokens) {
		return ""
	}

	return ti.Tokens[ti.Index]
}

// SyntaxError describes a malformed path.
type SyntaxError struct {
	TokenInfo

	Msg     string
	unknown bool
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("path syntax error at token %d (%q): %s", e.Index, e.Current(), e.Msg)
}

// Is reports whether target is ErrPathSyntax, or ErrUnknownTokenType for
// segments that could not be classified.
func (e *SyntaxError) Is(target error) bool {
	if target == ErrPathSyntax {
		return true
	}

	return e.unknown && target == ErrUnknownTokenType
}
