package lexer

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// TagsFile represents the structure of a YAML tags file.
type TagsFile struct {
	Tags    []TagRule    `yaml:"tags,omitempty"`
	Symbols []SymbolRule `yaml:"symbols,omitempty"`
	Ignore  []string     `yaml:"ignore,omitempty"`
}

// TagRule declares a tag with a named transform.
type TagRule struct {
	Name      string `yaml:"name"`
	Pattern   string `yaml:"pattern"`
	Transform string `yaml:"transform,omitempty"`
}

// SymbolRule declares a tag whose value is the matched text.
type SymbolRule struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
}

// LoadTagsFile loads and parses a YAML tags file.
func LoadTagsFile(filename string) (*TagsFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags file '%s': %w", filename, err)
	}

	var file TagsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML in tags file '%s': %w", filename, err)
	}

	return &file, nil
}

// Build constructs a lexer from the declarations in the file. Tags are
// registered first, then symbols, then ignore patterns, each in file order,
// so tags take precedence over symbols when both match.
func (f *TagsFile) Build() (*Lexer, error) {
	l := New()

	for _, rule := range f.Tags {
		transform, ok := NamedTransform(rule.Transform)
		if !ok {
			return nil, fmt.Errorf("tag '%s': unknown transform %q", rule.Name, rule.Transform)
		}
		if err := l.Register(rule.Name, rule.Pattern, transform); err != nil {
			return nil, err
		}
	}

	for _, rule := range f.Symbols {
		if err := l.Symbol(rule.Name, rule.Pattern); err != nil {
			return nil, err
		}
	}

	for _, pattern := range f.Ignore {
		if err := l.Ignore(pattern); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// NamedTransform returns the built-in transform for a tags-file transform
// name. The empty name selects the identity transform.
func NamedTransform(name string) (Transform, bool) {
	switch name {
	case "", "string":
		return func(text string) (any, error) { return text, nil }, true
	case "int":
		return func(text string) (any, error) { return strconv.Atoi(text) }, true
	case "float":
		return func(text string) (any, error) { return strconv.ParseFloat(text, 64) }, true
	case "bool":
		return func(text string) (any, error) { return strconv.ParseBool(text) }, true
	default:
		return nil, false
	}
}

// DefaultTags returns the tags file for a small arithmetic language: signed
// integers, the four operators, parentheses, and ignored whitespace.
func DefaultTags() *TagsFile {
	return &TagsFile{
		Tags: []TagRule{
			{Name: "INT", Pattern: `-?\d+`, Transform: "int"},
		},
		Symbols: []SymbolRule{
			{Name: "ADD", Pattern: `\+`},
			{Name: "SUB", Pattern: `-`},
			{Name: "MUL", Pattern: `\*`},
			{Name: "DIV", Pattern: `/`},
			{Name: "LPAREN", Pattern: `\(`},
			{Name: "RPAREN", Pattern: `\)`},
		},
		Ignore: []string{`\s+`},
	}
}
