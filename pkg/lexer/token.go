package lexer

import "encoding/json"

// Position represents a line and column position in the input.
type Position struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// Span represents the start and end positions of a token.
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// MarshalJSON implements custom JSON marshaling for Span.
func (s Span) MarshalJSON() ([]byte, error) {
	arr := [4]int{s.Start.Line, s.Start.Col, s.End.Line, s.End.Col}
	return json.Marshal(arr)
}

// UnmarshalJSON implements custom JSON unmarshaling for Span.
func (s *Span) UnmarshalJSON(data []byte) error {
	var arr [4]int
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	s.Start = Position{Line: arr[0], Col: arr[1]}
	s.End = Position{Line: arr[2], Col: arr[3]}
	return nil
}

// Token is a single lexeme produced by a scan. Tag names the category the
// token matched, Value is the result of applying that tag's transform to the
// matched text, and Text is the raw matched substring.
type Token struct {
	Tag   string `json:"tag"`
	Value any    `json:"value"`
	Text  string `json:"text"`
	Span  Span   `json:"span"`
}

// NewToken creates a new token.
func NewToken(tag string, value any, text string, span Span) *Token {
	return &Token{
		Tag:   tag,
		Value: value,
		Text:  text,
		Span:  span,
	}
}
