// Package cmd wires the scanr command-line surface to the scanning core.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/blueman82/scanr/internal/config"
	"github.com/blueman82/scanr/internal/fileutil"
	"github.com/blueman82/scanr/internal/logger"
	"github.com/blueman82/scanr/internal/matcher"
	"github.com/blueman82/scanr/internal/output"
	"github.com/blueman82/scanr/internal/scanner"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// ErrNoMatch signals that the scan completed without selecting any line.
// It maps to exit code 1 without an error message, mirroring grep.
var ErrNoMatch = errors.New("no matches found")

// NewRootCommand creates and returns the root cobra command for scanr
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scanr [flags] PATTERN [FILE...]",
		Short: "Concurrent line-pattern scanner",
		Long: `scanr searches newline-delimited input for literal or regular expression
patterns, scanning multiple files in parallel over a shared work queue.

Patterns are literal substrings by default; -E switches to regular
expressions. With no FILE arguments (or the "-" sentinel) standard input
is scanned.

Configuration defaults are loaded from .scanr/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  # Case-insensitive literal search in one file
  scanr -i "connection reset" server.log

  # Recursive regex search with line numbers and two context lines
  scanr -rnE -C 2 'err(or)?' ./src

  # Multiple patterns, only the matched substrings
  scanr -o -e foo -e bar data.txt

  # Patterns from a file, eight workers, count per input
  scanr -c -f patterns.txt -j 8 *.log

  # Standard input
  journalctl -b | scanr -q 'oom-killer'`,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		RunE:          runScan,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolP("ignore-case", "i", false, "ignore case distinctions")
	cmd.Flags().BoolP("invert-match", "v", false, "select non-matching lines")
	cmd.Flags().BoolP("word-regexp", "w", false, "match only whole words")
	cmd.Flags().BoolP("line-regexp", "x", false, "match only whole lines")
	cmd.Flags().BoolP("regexp-syntax", "E", false, "treat patterns as regular expressions")
	cmd.Flags().BoolP("recursive", "r", false, "search directories recursively")
	cmd.Flags().BoolP("line-number", "n", false, "print line numbers with output")
	cmd.Flags().BoolP("count", "c", false, "print only a count of matching lines per file")
	cmd.Flags().BoolP("files-with-matches", "l", false, "print only names of matching files")
	cmd.Flags().BoolP("only-matching", "o", false, "print only the matched parts of lines")
	cmd.Flags().BoolP("quiet", "q", false, "suppress all normal output")
	cmd.Flags().StringArrayP("pattern", "e", nil, "pattern to search for (repeatable)")
	cmd.Flags().StringP("pattern-file", "f", "", "read newline-delimited patterns from a file")
	cmd.Flags().IntP("before-context", "B", 0, "print NUM lines of leading context")
	cmd.Flags().IntP("after-context", "A", 0, "print NUM lines of trailing context")
	cmd.Flags().IntP("context", "C", 0, "print NUM lines of leading and trailing context")
	cmd.Flags().IntP("threads", "j", 0, "number of worker threads (default: CPU count)")
	cmd.Flags().String("color", "", "when to highlight matches: auto, always, never")
	cmd.Flags().Bool("no-filename", false, "suppress filename prefixes in output")
	cmd.Flags().String("config", "", "path to config file (default: .scanr/config.yaml)")

	return cmd
}

// runScan implements the scan logic behind the root command.
func runScan(cmd *cobra.Command, args []string) error {
	// Load configuration from file
	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	var err error

	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	// Build flag pointers for merge (only explicitly set values)
	var threadsPtr *int
	if cmd.Flags().Changed("threads") {
		threads, _ := cmd.Flags().GetInt("threads")
		threadsPtr = &threads
	}

	var colorPtr *string
	if cmd.Flags().Changed("color") {
		colorMode, _ := cmd.Flags().GetString("color")
		colorPtr = &colorMode
	}

	// -C sets both windows; -A/-B override it individually.
	var beforePtr, afterPtr *int
	if cmd.Flags().Changed("context") {
		both, _ := cmd.Flags().GetInt("context")
		before, after := both, both
		beforePtr, afterPtr = &before, &after
	}
	if cmd.Flags().Changed("before-context") {
		before, _ := cmd.Flags().GetInt("before-context")
		beforePtr = &before
	}
	if cmd.Flags().Changed("after-context") {
		after, _ := cmd.Flags().GetInt("after-context")
		afterPtr = &after
	}

	// Merge CLI flags with config (flags take precedence)
	cfg.MergeWithFlags(threadsPtr, colorPtr, beforePtr, afterPtr)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Collect patterns: repeated -e flags, a pattern file, or the first
	// positional argument.
	patterns, _ := cmd.Flags().GetStringArray("pattern")
	patternFile, _ := cmd.Flags().GetString("pattern-file")
	if patternFile != "" {
		filePatterns, err := readPatternFile(patternFile)
		if err != nil {
			return err
		}
		patterns = append(patterns, filePatterns...)
	}

	files := args
	if len(patterns) == 0 {
		if len(args) == 0 {
			return fmt.Errorf("no pattern provided")
		}
		patterns = []string{args[0]}
		files = args[1:]
	}
	if len(files) == 0 {
		files = []string{scanner.StdinPath}
	}

	ignoreCase, _ := cmd.Flags().GetBool("ignore-case")
	invertMatch, _ := cmd.Flags().GetBool("invert-match")
	wholeWord, _ := cmd.Flags().GetBool("word-regexp")
	wholeLine, _ := cmd.Flags().GetBool("line-regexp")
	useRegex, _ := cmd.Flags().GetBool("regexp-syntax")
	recursive, _ := cmd.Flags().GetBool("recursive")
	lineNumbers, _ := cmd.Flags().GetBool("line-number")
	countOnly, _ := cmd.Flags().GetBool("count")
	listFiles, _ := cmd.Flags().GetBool("files-with-matches")
	onlyMatching, _ := cmd.Flags().GetBool("only-matching")
	quiet, _ := cmd.Flags().GetBool("quiet")
	noFilename, _ := cmd.Flags().GetBool("no-filename")

	// Pattern compilation is fatal before any scanning begins.
	set, err := matcher.Compile(patterns, matcher.Options{
		IgnoreCase:   ignoreCase,
		WholeWord:    wholeWord,
		WholeLine:    wholeLine,
		UseRegex:     useRegex,
		InvertMatch:  invertMatch,
		OnlyMatching: onlyMatching,
	})
	if err != nil {
		return err
	}

	diag := logger.New(cmd.ErrOrStderr(), cfg.LogLevel)

	// Flatten the inputs; traversal failures are warnings, not fatal.
	expanded := fileutil.Expand(files, recursive)
	for _, expandErr := range expanded.Errors {
		diag.Warnf("%v", expandErr)
	}
	if len(expanded.Files) == 0 {
		return fmt.Errorf("no input files to scan")
	}

	multiInput := len(expanded.Files) > 1 || recursive
	sink := output.NewSink(cmd.OutOrStdout(), output.Options{
		CountOnly:       countOnly,
		ListFiles:       listFiles,
		OnlyMatching:    onlyMatching,
		Quiet:           quiet,
		ShowLineNumbers: lineNumbers,
		ShowFilename:    multiInput && !noFilename,
		Color:           colorEnabled(cfg.ColorMode, cmd.OutOrStdout()),
	})

	disp := scanner.NewDispatcher(set, sink, diag, cfg.Threads, scanner.Options{
		Before:     cfg.BeforeContext,
		After:      cfg.AfterContext,
		CountOnly:  countOnly,
		ListFiles:  listFiles,
		SkipBinary: true,
	})
	stats := disp.Run(cmd.Context(), expanded.Files)

	// Aggregate summary only for multi-input runs with no suppressing mode.
	if len(expanded.Files) > 1 && !countOnly && !listFiles && !quiet && !onlyMatching {
		sink.Summary(stats.MatchedLines(), stats.FilesScanned())
	}

	if stats.MatchedLines() == 0 {
		return ErrNoMatch
	}
	return nil
}

// readPatternFile loads newline-delimited patterns. A trailing newline does
// not contribute an empty pattern.
func readPatternFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern file: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("pattern file %s contains no patterns", path)
	}
	return lines, nil
}

// colorEnabled resolves the configured color mode against the actual output
// destination. Auto mode enables color only for a TTY.
func colorEnabled(mode string, out io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		if f, ok := out.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
