// Package errors defines plank's structured error type and codes.
//
// Only the three frontmatter codes cross the codec boundary; everything
// below that level is absorbed by normalization (bad due dates, bad WIP
// limits, malformed column entries all degrade to safe defaults instead of
// erroring). The remaining codes belong to the CLI layer.
package errors

import "fmt"

// Code identifies a plank error category.
type Code string

const (
	// CodeMissingFrontmatter: the text has no leading frontmatter block.
	CodeMissingFrontmatter Code = "MISSING_FRONTMATTER"

	// CodeMalformedFrontmatter: the frontmatter is not a decodable
	// key/value mapping.
	CodeMalformedFrontmatter Code = "MALFORMED_FRONTMATTER"

	// CodeNotBoard: the frontmatter decodes but the board marker is
	// missing or not exactly true. Callers are expected to special-case
	// this as "not a board file" rather than "corrupt board file".
	CodeNotBoard Code = "NOT_A_BOARD"

	CodeInvalidRequest Code = "INVALID_REQUEST"
	CodeUnsafePath     Code = "UNSAFE_PATH"
	CodeInternal       Code = "INTERNAL"
)

// Error is a structured error with a code, a human-readable reason, and
// optional details.
type Error struct {
	Code    Code
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewMissingFrontmatter creates the error for text without a header block.
func NewMissingFrontmatter() *Error {
	return &Error{
		Code:    CodeMissingFrontmatter,
		Message: "no frontmatter block found (expected leading --- delimiter pair)",
	}
}

// NewMalformedFrontmatter creates the error for an undecodable header.
func NewMalformedFrontmatter(cause error) *Error {
	msg := "frontmatter is not a key/value mapping"
	if cause != nil {
		msg = fmt.Sprintf("frontmatter is not a key/value mapping: %v", cause)
	}
	return &Error{
		Code:    CodeMalformedFrontmatter,
		Message: msg,
	}
}

// NewNotBoard creates the error for files whose board marker is missing or
// not exactly true.
func NewNotBoard() *Error {
	return &Error{
		Code:    CodeNotBoard,
		Message: "frontmatter has no 'kanban: true' marker; not a board file",
	}
}

// NewInvalidRequest creates an error for invalid CLI parameters.
func NewInvalidRequest(msg string) *Error {
	return &Error{
		Code:    CodeInvalidRequest,
		Message: msg,
	}
}

// NewUnsafePath creates an error for output paths outside the allowed
// directories.
func NewUnsafePath(path string) *Error {
	return &Error{
		Code:    CodeUnsafePath,
		Message: fmt.Sprintf("path %q is outside the allowed directories (see allowed_paths in config)", path),
		Details: map[string]any{"path": path},
	}
}

// NewInternal wraps an unexpected error.
func NewInternal(err error) *Error {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &Error{
		Code:    CodeInternal,
		Message: msg,
	}
}

// Is checks whether err is a plank Error with the given code.
func Is(err error, code Code) bool {
	if e, ok := err.(*Error); ok {
		return e.Code == code
	}
	return false
}
