// Package lexer implements a tag-driven lexical scanner. Callers register
// named tags, each pairing a regular-expression pattern with a transform
// function, and scan input strings into ordered token sequences. Tags are
// tried in registration order at every cursor position and the first match
// wins, so earlier tags take precedence over later ones (for example a
// keyword tag registered before an identifier tag).
package lexer

import (
	"errors"
	"fmt"
	"iter"
	"regexp"
	"unicode/utf8"
)

// Transform converts the matched text of a tag into the token's value.
type Transform func(text string) (any, error)

// UnmatchedPolicy controls what a scan does when no tag matches at the
// current cursor position.
type UnmatchedPolicy int

const (
	// UnmatchedAbort terminates the scan at the first unmatched position.
	UnmatchedAbort UnmatchedPolicy = iota
	// UnmatchedSkip reports the unmatched position, advances the cursor by
	// one rune, and continues scanning.
	UnmatchedSkip
)

// ScanOption configures a single scan invocation.
type ScanOption func(*scanConfig)

type scanConfig struct {
	unmatched UnmatchedPolicy
}

// WithUnmatchedPolicy sets the policy for unmatched input. The default is
// UnmatchedAbort.
func WithUnmatchedPolicy(policy UnmatchedPolicy) ScanOption {
	return func(cfg *scanConfig) {
		cfg.unmatched = policy
	}
}

func newScanConfig(opts []ScanOption) scanConfig {
	var cfg scanConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// tagDef is a single registered tag. Patterns are compiled at registration
// time, anchored so matching is a prefix match at the cursor.
type tagDef struct {
	name      string
	pattern   string
	regex     *regexp.Regexp
	transform Transform
	ignore    bool
}

// Entry describes a registered tag, in registration order.
type Entry struct {
	Name    string
	Pattern string
	Ignore  bool
}

// Lexer holds the ordered tag registry and scans input strings against it.
// Registration must finish before scanning begins; once frozen, a single
// Lexer may serve any number of concurrent scans, since scanning never
// mutates the registry and each scan owns its own cursor.
type Lexer struct {
	tags        []*tagDef
	names       map[string]struct{}
	ignoreCount int
}

// New creates an empty lexer. Each lexer is an independent instance; there
// is no shared process-wide registry.
func New() *Lexer {
	return &Lexer{
		names: make(map[string]struct{}),
	}
}

// Register adds a tag to the registry. The pattern is a regular expression
// matched at the cursor position; transform converts the matched text into
// the token's value. Tags are tried in registration order.
//
// Returns ErrEmptyTagName, *DuplicateTagError or *InvalidPatternError; a
// failed registration leaves previously registered tags untouched.
func (l *Lexer) Register(name, pattern string, transform Transform) error {
	return l.add(name, pattern, transform, false)
}

// Symbol adds a tag whose value is the matched text itself.
func (l *Lexer) Symbol(name, pattern string) error {
	return l.add(name, pattern, func(text string) (any, error) { return text, nil }, false)
}

// Ignore adds a pattern whose matches are consumed without emitting a token,
// typically whitespace or comments. Ignore patterns occupy a slot in the
// registration order like any other tag.
func (l *Lexer) Ignore(pattern string) error {
	name := fmt.Sprintf("IGNORE%d", l.ignoreCount)
	if err := l.add(name, pattern, nil, true); err != nil {
		return err
	}
	l.ignoreCount++
	return nil
}

func (l *Lexer) add(name, pattern string, transform Transform, ignore bool) error {
	if name == "" {
		return ErrEmptyTagName
	}
	if _, exists := l.names[name]; exists {
		return &DuplicateTagError{Name: name}
	}

	// Anchor the pattern so matching at the cursor is a prefix match on the
	// remaining input. The non-capturing group keeps top-level alternations
	// inside the anchor.
	regex, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return &InvalidPatternError{Name: name, Pattern: pattern, Err: err}
	}

	l.names[name] = struct{}{}
	l.tags = append(l.tags, &tagDef{
		name:      name,
		pattern:   pattern,
		regex:     regex,
		transform: transform,
		ignore:    ignore,
	})
	return nil
}

// Entries returns the registered tags in registration order. The result is
// a copy; mutating it has no effect on the registry.
func (l *Lexer) Entries() []Entry {
	entries := make([]Entry, len(l.tags))
	for i, def := range l.tags {
		entries[i] = Entry{Name: def.name, Pattern: def.pattern, Ignore: def.ignore}
	}
	return entries
}

// Tokens returns a lazy sequence of tokens scanned from input. Iteration is
// restartable: ranging over the sequence again replays the identical scan
// from the start of the input.
//
// A scan error is yielded with a nil token. Under UnmatchedAbort (the
// default) the sequence terminates at the first error; under UnmatchedSkip
// an *UnmatchedInputError is yielded, the cursor advances one rune, and
// scanning continues. A zero-length match or a failed transform terminates
// the sequence under either policy.
func (l *Lexer) Tokens(input string, opts ...ScanOption) iter.Seq2[*Token, error] {
	cfg := newScanConfig(opts)
	return func(yield func(*Token, error) bool) {
		cur := cursor{input: input, line: 1, col: 1}
		for cur.offset < len(input) {
			start := Position{Line: cur.line, Col: cur.col}

			def, length := l.matchAt(input[cur.offset:])
			if def == nil {
				err := &UnmatchedInputError{
					Pos:       start,
					Offset:    cur.offset,
					Remaining: input[cur.offset:],
				}
				if !yield(nil, err) {
					return
				}
				if cfg.unmatched != UnmatchedSkip {
					return
				}
				_, size := utf8.DecodeRuneInString(input[cur.offset:])
				cur.advance(size)
				continue
			}

			if length == 0 {
				yield(nil, &ZeroLengthMatchError{Tag: def.name, Pos: start, Offset: cur.offset})
				return
			}

			text := input[cur.offset : cur.offset+length]
			cur.advance(length)

			if def.ignore {
				continue
			}

			value, err := def.transform(text)
			if err != nil {
				yield(nil, &TransformError{Tag: def.name, Text: text, Pos: start, Err: err})
				return
			}

			end := Position{Line: cur.line, Col: cur.col}
			token := NewToken(def.name, value, text, Span{Start: start, End: end})
			if !yield(token, nil) {
				return
			}
		}
	}
}

// Scan runs a full scan of input and returns the emitted tokens. On error
// the tokens emitted before the failure are returned alongside it. Under
// UnmatchedSkip the returned error is a *ScanErrors collecting every
// unmatched segment, or nil if the whole input was consumed.
func (l *Lexer) Scan(input string, opts ...ScanOption) ([]*Token, error) {
	cfg := newScanConfig(opts)
	tokens := make([]*Token, 0)
	var unmatched []*UnmatchedInputError

	for token, err := range l.Tokens(input, opts...) {
		if err != nil {
			var ue *UnmatchedInputError
			if cfg.unmatched == UnmatchedSkip && errors.As(err, &ue) {
				unmatched = append(unmatched, ue)
				continue
			}
			return tokens, err
		}
		tokens = append(tokens, token)
	}

	if len(unmatched) > 0 {
		return tokens, &ScanErrors{Errors: unmatched}
	}
	return tokens, nil
}

// matchAt tries every tag in registration order against the remaining input
// and returns the first that matches, with the matched length in bytes.
// First match wins regardless of length, so registration order is the
// tie-break between overlapping patterns.
func (l *Lexer) matchAt(rest string) (*tagDef, int) {
	for _, def := range l.tags {
		if loc := def.regex.FindStringIndex(rest); loc != nil {
			return def, loc[1]
		}
	}
	return nil, 0
}

// cursor tracks the scan position within the input, with line and column
// maintained for diagnostics.
type cursor struct {
	input  string
	offset int
	line   int
	col    int
}

// advance moves the cursor forward n bytes, updating line/column tracking.
func (c *cursor) advance(n int) {
	for i := 0; i < n && c.offset < len(c.input); i++ {
		if c.input[c.offset] == '\n' {
			c.line++
			c.col = 1
		} else {
			c.col++
		}
		c.offset++
	}
}
