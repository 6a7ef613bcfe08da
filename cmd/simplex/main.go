package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/spicery/simplex/pkg/lexer"
	"gopkg.in/yaml.v3"
)

const (
	version = "0.1.0"
	usage   = `simplex - A tag-driven lexical scanner

Usage:
  simplex [options]

Options:
  -h, --help            Show this help message
  -v, --version         Show version information
  --input <file>        Input file (defaults to stdin)
  --output <file>       Output file (defaults to stdout)
  --tags <file>         YAML tags file declaring the tag registry (optional)
  --make-tags           Generate the default tags YAML to stdout
  --skip-unmatched      Skip unmatched input instead of aborting
  --exit0               Exit with code 0 even on scan errors (suppress stderr)

Examples:
  simplex                                    # Read from stdin, write to stdout
  simplex --input expr.txt                   # Read from file, write to stdout
  simplex --tags mylang.yaml --input src.ml  # Scan with a custom tag registry
  simplex --make-tags > tags.yaml            # Generate the default tags file
  echo "(12 + 6) / 3" | simplex              # Scan an arithmetic expression

The scanner outputs one JSON token object per line.
`
)

func main() {
	var showHelp, showVersion, exit0, makeTags, skipUnmatched bool
	var inputFile, outputFile, tagsFile string

	flag.BoolVar(&showHelp, "h", false, "Show help")
	flag.BoolVar(&showHelp, "help", false, "Show help")
	flag.BoolVar(&showVersion, "v", false, "Show version")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&exit0, "exit0", false, "Exit with code 0 even on errors")
	flag.BoolVar(&makeTags, "make-tags", false, "Generate default tags YAML")
	flag.BoolVar(&skipUnmatched, "skip-unmatched", false, "Skip unmatched input instead of aborting")
	flag.StringVar(&inputFile, "input", "", "Input file (defaults to stdin)")
	flag.StringVar(&outputFile, "output", "", "Output file (defaults to stdout)")
	flag.StringVar(&tagsFile, "tags", "", "YAML tags file (optional)")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("simplex version %s\n", version)
		os.Exit(0)
	}

	if makeTags {
		if err := generateDefaultTags(); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating default tags: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Reject any positional arguments
	if len(flag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Error: Unexpected positional arguments. Use --input and --output flags instead.\n\n")
		flag.Usage()
		os.Exit(1)
	}

	var input string
	var err error

	// Read input
	if inputFile == "" {
		input, err = readFromStdin()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading from stdin: %v\n", err)
			os.Exit(1)
		}
	} else {
		input, err = readFromFile(inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading file '%s': %v\n", inputFile, err)
			os.Exit(1)
		}
	}

	// Build the tag registry, from a tags file if one was given
	tags := lexer.DefaultTags()
	if tagsFile != "" {
		tags, err = lexer.LoadTagsFile(tagsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading tags file '%s': %v\n", tagsFile, err)
			os.Exit(1)
		}
	}

	l, err := tags.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building tag registry: %v\n", err)
		os.Exit(1)
	}

	// Scan the input
	var opts []lexer.ScanOption
	if skipUnmatched {
		opts = append(opts, lexer.WithUnmatchedPolicy(lexer.UnmatchedSkip))
	}
	tokens, scanErr := l.Scan(input, opts...)

	// Prepare output destination
	var output io.Writer
	var outputCloser io.Closer

	if outputFile == "" {
		output = os.Stdout
	} else {
		file, err := os.Create(outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file '%s': %v\n", outputFile, err)
			os.Exit(1)
		}
		output = file
		outputCloser = file
	}

	// Output tokens as JSON, one per line (even if there was an error)
	for _, token := range tokens {
		jsonBytes, err := json.Marshal(token)
		if err != nil {
			fmt.Fprintf(os.Stderr, "JSON encoding error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(output, string(jsonBytes))
	}

	// Close output file if we opened one
	if outputCloser != nil {
		if err := outputCloser.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing output file '%s': %v\n", outputFile, err)
			os.Exit(1)
		}
	}

	// Handle scan error after outputting tokens
	if scanErr != nil {
		if exit0 {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Scan error: %v\n", scanErr)
		os.Exit(1)
	}
}

// readFromStdin reads all input from stdin.
func readFromStdin() (string, error) {
	bytes, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// readFromFile reads the contents of a file.
func readFromFile(filename string) (string, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// generateDefaultTags outputs the default tags file in YAML format to stdout.
func generateDefaultTags() error {
	yamlBytes, err := yaml.Marshal(lexer.DefaultTags())
	if err != nil {
		return fmt.Errorf("failed to marshal tags to YAML: %w", err)
	}

	fmt.Print(string(yamlBytes))
	return nil
}
