package lexer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyTagName is returned by Register when the tag name is empty.
var ErrEmptyTagName = errors.New("tag name must not be empty")

// DuplicateTagError is returned by Register when a tag name is already
// present in the registry. The registry keeps the earlier definition.
type DuplicateTagError struct {
	Name string // Name that was registered twice
}

// Error implements the error interface.
func (e *DuplicateTagError) Error() string {
	return fmt.Sprintf("tag '%s' is already registered", e.Name)
}

// InvalidPatternError is returned by Register when a tag's pattern fails to
// compile. The registry is left unchanged.
type InvalidPatternError struct {
	Name    string // Tag the pattern belongs to
	Pattern string // Pattern text as given
	Err     error  // Underlying compile error
}

// Error implements the error interface.
func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q for tag '%s': %v", e.Pattern, e.Name, e.Err)
}

// Unwrap returns the underlying compile error.
func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// ZeroLengthMatchError is returned during scanning when a pattern matches an
// empty substring. Left unchecked this would stall the cursor forever, so it
// terminates the scan under every unmatched policy.
type ZeroLengthMatchError struct {
	Tag    string   // Tag whose pattern produced the empty match
	Pos    Position // Position where the match occurred
	Offset int      // Byte offset into the input
}

// Error implements the error interface.
func (e *ZeroLengthMatchError) Error() string {
	return fmt.Sprintf("tag '%s' matched an empty string at line %d, column %d",
		e.Tag, e.Pos.Line, e.Pos.Col)
}

// UnmatchedInputError is returned during scanning when no registered tag
// matches at the current cursor. Remaining holds the unconsumed input from
// the failing position onward.
type UnmatchedInputError struct {
	Pos       Position // Position of the first unmatched character
	Offset    int      // Byte offset into the input
	Remaining string   // Unconsumed input starting at the failure
}

// Error implements the error interface.
func (e *UnmatchedInputError) Error() string {
	return fmt.Sprintf("no tag matches input at line %d, column %d: %s",
		e.Pos.Line, e.Pos.Col, truncate(e.Remaining, 20))
}

// TransformError is returned during scanning when a tag's transform fails on
// the matched text.
type TransformError struct {
	Tag  string   // Tag whose transform failed
	Text string   // Matched text passed to the transform
	Pos  Position // Position of the match
	Err  error    // Underlying transform error
}

// Error implements the error interface.
func (e *TransformError) Error() string {
	return fmt.Sprintf("transform for tag '%s' failed on %q at line %d, column %d: %v",
		e.Tag, e.Text, e.Pos.Line, e.Pos.Col, e.Err)
}

// Unwrap returns the underlying transform error.
func (e *TransformError) Unwrap() error {
	return e.Err
}

// ScanErrors collects the unmatched-input errors encountered by a scan
// running under the skip policy. Scan returns it alongside the tokens that
// were emitted successfully.
type ScanErrors struct {
	Errors []*UnmatchedInputError
}

// Error implements the error interface.
func (e *ScanErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d unmatched segments:", len(e.Errors))
	for _, err := range e.Errors {
		b.WriteString("\n  ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap exposes the collected errors for errors.Is / errors.As traversal.
func (e *ScanErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// truncate shortens s for error messages, marking elided content.
func truncate(s string, n int) string {
	if len(s) <= n {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%q...", s[:n])
}
