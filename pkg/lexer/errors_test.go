package lexer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ErrorMessages(t *testing.T) {
	t.Run("should name the duplicate tag", func(t *testing.T) {
		err := &DuplicateTagError{Name: "INT"}
		assert.Equal(t, "tag 'INT' is already registered", err.Error())
	})

	t.Run("should include pattern and tag in invalid pattern errors", func(t *testing.T) {
		l := New()
		err := l.Symbol("OPEN", `(`)

		var invalid *InvalidPatternError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "OPEN", invalid.Name)
		assert.Equal(t, `(`, invalid.Pattern)
		assert.Contains(t, err.Error(), "OPEN")
		assert.Contains(t, err.Error(), "(")
		assert.Error(t, invalid.Unwrap())
	})

	t.Run("should report position for zero-length matches", func(t *testing.T) {
		err := &ZeroLengthMatchError{Tag: "WS", Pos: Position{Line: 3, Col: 7}, Offset: 21}
		assert.Contains(t, err.Error(), "WS")
		assert.Contains(t, err.Error(), "line 3, column 7")
	})

	t.Run("should truncate long remaining input", func(t *testing.T) {
		err := &UnmatchedInputError{
			Pos:       Position{Line: 1, Col: 1},
			Remaining: strings.Repeat("z", 100),
		}
		assert.Less(t, len(err.Error()), 100)
		assert.Contains(t, err.Error(), "...")
	})

	t.Run("should keep short remaining input intact", func(t *testing.T) {
		err := &UnmatchedInputError{
			Pos:       Position{Line: 1, Col: 2},
			Offset:    1,
			Remaining: "a2",
		}
		assert.Contains(t, err.Error(), `"a2"`)
		assert.NotContains(t, err.Error(), "...")
	})

	t.Run("should wrap the transform failure", func(t *testing.T) {
		cause := errors.New("bad digit")
		err := &TransformError{Tag: "INT", Text: "9x", Pos: Position{Line: 1, Col: 1}, Err: cause}
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "INT")
	})
}

func Test_ScanErrors(t *testing.T) {
	t.Run("should read as the single error when there is one", func(t *testing.T) {
		inner := &UnmatchedInputError{Pos: Position{Line: 1, Col: 2}, Offset: 1, Remaining: "a"}
		err := &ScanErrors{Errors: []*UnmatchedInputError{inner}}
		assert.Equal(t, inner.Error(), err.Error())
	})

	t.Run("should count and list multiple segments", func(t *testing.T) {
		err := &ScanErrors{Errors: []*UnmatchedInputError{
			{Pos: Position{Line: 1, Col: 2}, Offset: 1, Remaining: "a2b"},
			{Pos: Position{Line: 1, Col: 4}, Offset: 3, Remaining: "b"},
		}}
		assert.Contains(t, err.Error(), "2 unmatched segments")
		assert.Contains(t, err.Error(), "column 2")
		assert.Contains(t, err.Error(), "column 4")
	})

	t.Run("should expose collected errors through errors.As", func(t *testing.T) {
		l := New()
		require.NoError(t, l.Symbol("DOT", `\.`))

		_, err := l.Scan(".a.b.", WithUnmatchedPolicy(UnmatchedSkip))
		require.Error(t, err)

		var unmatched *UnmatchedInputError
		assert.True(t, errors.As(err, &unmatched))
		assert.Equal(t, 1, unmatched.Offset)

		var scanErrs *ScanErrors
		require.ErrorAs(t, err, &scanErrs)
		assert.Len(t, scanErrs.Errors, 2)
	})
}
