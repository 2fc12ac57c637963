package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/terawatthour/htmlfmt"
	"github.com/terawatthour/htmlfmt/internal/logs"
)

var DefaultExtensions = []string{".html", ".htm"}

type Config struct {
	Layout     htmlfmt.LayoutConfig
	Extensions []string
	Paths      []string

	// Check reports unformatted files instead of rewriting them.
	Check bool
	// Stdout prints formatted documents instead of rewriting them.
	Stdout     bool
	Jobs       int
	DumpTokens bool

	LogLevel   slog.Level
	LogJournal bool
}

// Parse builds a Config from command-line arguments. Values from the config
// file are applied first, flags given on the command line win.
func Parse(args []string, output io.Writer) (*Config, error) {
	cfg := &Config{
		Layout:     htmlfmt.DefaultLayoutConfig(),
		Extensions: DefaultExtensions,
		Jobs:       1,
		LogLevel:   slog.LevelInfo,
	}

	set := flag.NewFlagSet("htmlfmt", flag.ContinueOnError)
	set.SetOutput(output)
	set.Usage = func() {
		fmt.Fprintf(output, "Usage: htmlfmt [flags] [paths...]\n\nFlags:\n")
		set.PrintDefaults()
	}

	var (
		indentStyle   = cfg.Layout.IndentStyle
		indentSize    = set.Int("indent-size", cfg.Layout.IndentSize, "indent units per nesting level")
		maxLineLength = cfg.Layout.MaxLineLength
		configFile    = set.String("config", "", "CUE config file (default "+DefaultFile+" if present)")
		logLevel      = set.String("log-level", "info", "log level: debug, info, warn or error")
	)

	parseStyle := func(s string) error {
		style, err := htmlfmt.ParseIndentStyle(s)
		if err != nil {
			if suggestion := suggest(s, htmlfmt.IndentStyles); suggestion != "" {
				return fmt.Errorf("%w (did you mean %q?)", err, suggestion)
			}
			return err
		}
		indentStyle = style
		return nil
	}
	for _, name := range []string{"s", "indent-style"} {
		set.Func(name, "indent style: tab or space (default tab)", parseStyle)
	}
	for _, name := range []string{"l", "max-line-length"} {
		set.IntVar(&maxLineLength, name, maxLineLength, "max length of a line of attributes")
	}
	set.BoolVar(&cfg.Check, "check", false, "report unformatted files and exit non-zero, write nothing")
	set.BoolVar(&cfg.Stdout, "stdout", false, "print formatted output instead of rewriting files")
	set.IntVar(&cfg.Jobs, "j", cfg.Jobs, "number of documents formatted in parallel")
	set.BoolVar(&cfg.DumpTokens, "dump-tokens", false, "log a dump of every token sequence at debug level")
	set.BoolVar(&cfg.LogJournal, "log-journal", false, "also log to the systemd journal")

	if err := set.Parse(args); err != nil {
		return nil, err
	}

	file, err := loadConfigFile(*configFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyFile(file); err != nil {
		return nil, err
	}

	var flagErr error
	set.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "s", "indent-style":
			cfg.Layout.IndentStyle = indentStyle
		case "indent-size":
			cfg.Layout.IndentSize = *indentSize
		case "l", "max-line-length":
			cfg.Layout.MaxLineLength = maxLineLength
		case "log-level":
			cfg.LogLevel, flagErr = logs.ParseLevel(*logLevel)
		}
	})
	if flagErr != nil {
		return nil, flagErr
	}

	if cfg.Layout.IndentSize < 1 {
		return nil, fmt.Errorf("indent size must be positive, got %d", cfg.Layout.IndentSize)
	}
	if cfg.Layout.MaxLineLength < 0 {
		return nil, fmt.Errorf("max line length must not be negative, got %d", cfg.Layout.MaxLineLength)
	}
	if cfg.Jobs < 1 {
		cfg.Jobs = 1
	}
	if cfg.Check && cfg.Stdout {
		return nil, errors.New("-check and -stdout are mutually exclusive")
	}

	cfg.Paths = set.Args()
	if len(cfg.Paths) == 0 {
		cfg.Paths = []string{"."}
	}

	return cfg, nil
}

func loadConfigFile(path string) (File, error) {
	if path != "" {
		return LoadFile(path)
	}
	file, err := LoadFile(DefaultFile)
	if errors.Is(err, fs.ErrNotExist) {
		return File{}, nil
	}
	return file, err
}

func (c *Config) applyFile(file File) error {
	if file.IndentStyle != "" {
		style, err := htmlfmt.ParseIndentStyle(file.IndentStyle)
		if err != nil {
			return err
		}
		c.Layout.IndentStyle = style
	}
	if file.IndentSize > 0 {
		c.Layout.IndentSize = file.IndentSize
	}
	if file.MaxLineLength > 0 {
		c.Layout.MaxLineLength = file.MaxLineLength
	}
	if len(file.Extensions) > 0 {
		c.Extensions = make([]string, len(file.Extensions))
		for i, ext := range file.Extensions {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			c.Extensions[i] = ext
		}
	}
	return nil
}

// suggest returns the target closest to input, or "" when nothing is close.
func suggest(input string, targets []string) string {
	if input == "" {
		return ""
	}
	if ranks := fuzzy.RankFindFold(input, targets); len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	best, bestDistance := "", 3
	for _, target := range targets {
		if d := fuzzy.LevenshteinDistance(strings.ToLower(input), target); d < bestDistance {
			best, bestDistance = target, d
		}
	}
	return best
}
