package walker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/sync/errgroup"

	"github.com/terawatthour/htmlfmt"
	"github.com/terawatthour/htmlfmt/internal/config"
)

// ErrUnformatted is returned by Run in check mode when a file would change.
var ErrUnformatted = errors.New("files are not formatted")

type Walker struct {
	config *config.Config
	logger *slog.Logger
	stdout io.Writer
}

func New(cfg *config.Config, logger *slog.Logger, stdout io.Writer) *Walker {
	logger.Debug("init new walker", "layout", cfg.Layout, "paths", cfg.Paths)
	return &Walker{config: cfg, logger: logger, stdout: stdout}
}

type result struct {
	path      string
	formatted string
	changed   bool
}

// Run formats every document found under the configured paths. Each
// document is an independent run; the first failure cancels the rest.
func (w *Walker) Run(ctx context.Context) error {
	files, err := w.Collect(w.config.Paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found", strings.Join(w.config.Extensions, " or "))
	}

	results := make([]result, len(files))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(w.config.Jobs)

	for i, path := range files {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := w.formatFile(path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	var unformatted int
	for _, res := range results {
		switch {
		case w.config.Stdout:
			if len(files) > 1 {
				fmt.Fprintf(w.stdout, "<!-- %s -->\n", res.path)
			}
			fmt.Fprint(w.stdout, res.formatted)
		case w.config.Check && res.changed:
			fmt.Fprintln(w.stdout, res.path)
			unformatted++
		case res.changed:
			w.logger.Info("formatted", "file", res.path)
		}
	}

	if unformatted > 0 {
		return fmt.Errorf("%d file(s): %w", unformatted, ErrUnformatted)
	}
	return nil
}

// Collect expands paths into the list of documents to format. Directories
// are walked recursively, hidden directories are skipped.
func (w *Walker) Collect(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if slices.Contains(w.config.Extensions, strings.ToLower(filepath.Ext(path))) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

func (w *Walker) formatFile(path string) (result, error) {
	w.logger.Debug("start format file", "file", path)

	info, err := os.Stat(path)
	if err != nil {
		return result{}, err
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return result{}, fmt.Errorf("reading file: %w", err)
	}

	tokens, diagnostics, err := htmlfmt.Tokenize(string(source))
	for _, d := range diagnostics {
		w.logger.Warn(d.Kind.String(), "file", path, "pos", d.Position.String())
	}
	if err != nil {
		return result{}, fmt.Errorf("%s: %w", path, err)
	}
	if w.config.DumpTokens {
		w.logger.Debug("tokens", "file", path, "dump", dumpTokens(tokens))
	}

	formatted := htmlfmt.Format(tokens, w.config.Layout)
	res := result{path: path, formatted: formatted, changed: formatted != string(source)}

	if res.changed && !w.config.Check && !w.config.Stdout {
		if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
			return result{}, fmt.Errorf("writing file: %w", err)
		}
	}

	w.logger.Debug("finish format file", "file", path, "changed", res.changed)
	return res, nil
}

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

func dumpTokens(tokens htmlfmt.Tokens) string {
	return spewConfig.Sdump(tokens)
}
