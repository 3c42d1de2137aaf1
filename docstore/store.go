package docstore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/searchit/core"
)

const defaultPattern = "*.txt"

// Store loads corpus documents from a directory.
// Files are read concurrently but ids are assigned in lexicographic filename
// order, so identifier assignment is deterministic across runs.
type Store struct {
	pattern  string
	poolSize int
	logger   *slog.Logger
}

// Option configures a Store.
type Option func(*Store) error

// WithPattern sets the filename glob used to select documents.
// Default is "*.txt".
func WithPattern(pattern string) Option {
	return func(s *Store) error {
		if pattern == "" {
			return ErrEmptyPattern
		}
		s.pattern = pattern
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent file reads.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Store) error {
		if size < 1 {
			size = 1
		}
		s.poolSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// New creates a document store.
func New(opts ...Option) (*Store, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	s := &Store{
		pattern:  defaultPattern,
		poolSize: poolSize,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Load reads every matching file under dir and returns one Document per
// file, ordered lexicographically by filename. The document id is the
// filename without its extension. Invalid UTF-8 bytes are dropped rather
// than failing the load; unreadable files fail the whole load so a partial
// corpus is never mistaken for a complete one.
func (s *Store) Load(ctx context.Context, dir string) ([]*core.Document, error) {
	paths, err := filepath.Glob(filepath.Join(dir, s.pattern))
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	sort.Strings(paths)

	s.logger.Debug("loading documents", "dir", dir, "count", len(paths))

	pool, err := ants.NewPool(s.poolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	docs := make([]*core.Document, len(paths))
	errs := make([]error, len(paths))
	var wg sync.WaitGroup

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			break
		}

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			raw, err := os.ReadFile(path)
			if err != nil {
				errs[i] = err
				return
			}
			id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			docs[i] = core.NewDocument(id, strings.ToValidUTF8(string(raw), ""))
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = submitErr
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", paths[i], err)
		}
	}
	return docs, nil
}

// Line breaks flatten to single spaces in previews, CRLF included.
var previewReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Preview returns the first n characters of the document's raw text with
// line breaks replaced by spaces, appending "..." only if the text was
// truncated.
func Preview(doc *core.Document, n int) string {
	runes := []rune(doc.Text)
	truncated := len(runes) > n
	if truncated {
		runes = runes[:n]
	}
	preview := previewReplacer.Replace(string(runes))
	if truncated {
		preview += "..."
	}
	return preview
}
