package ruleset

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/km-arc/go-validation/framework/validation"
)

// Store holds the rule sets of one directory, keyed by name. Reads are safe
// while Load or Watch replace the contents.
type Store struct {
	dir      string
	registry *validation.Registry
	logger   *slog.Logger

	mu   sync.RWMutex
	sets map[string]validation.Context
}

// Option configures a Store.
type Option func(*Store)

// WithRegistry makes Load reject rule sets that use unregistered rules.
func WithRegistry(r *validation.Registry) Option {
	return func(s *Store) { s.registry = r }
}

// WithLogger sets the logger for load and watch diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates an empty store over dir. Call Load to read it.
func NewStore(dir string, opts ...Option) *Store {
	s := &Store{
		dir:    dir,
		logger: slog.New(slog.DiscardHandler),
		sets:   make(map[string]validation.Context),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the watched directory.
func (s *Store) Dir() string { return s.dir }

// Load reads every *.yaml / *.yml file in the directory (not recursive) and
// swaps the store contents in one step. On error the previous contents stay.
// A missing directory loads as empty.
func (s *Store) Load() error {
	sets, err := s.read()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.sets = sets
	s.mu.Unlock()

	s.logger.Info("rule sets loaded", slog.String("dir", s.dir), slog.Int("count", len(sets)))
	return nil
}

func (s *Store) read() (map[string]validation.Context, error) {
	sets := make(map[string]validation.Context)

	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("rule set directory does not exist", slog.String("dir", s.dir))
		return sets, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ruleset: read dir %s: %w", s.dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !isRuleSetFile(entry.Name()) {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		set, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if _, dup := sets[set.Name()]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q in %s", ErrInvalidRuleSet, set.Name(), path)
		}
		if s.registry != nil {
			if err := Check(set, s.registry); err != nil {
				return nil, err
			}
		}
		sets[set.Name()] = set
	}
	return sets, nil
}

// Get returns the rule set called name.
func (s *Store) Get(name string) (validation.Context, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.sets[name]
	if !ok {
		return validation.Context{}, fmt.Errorf("%w: %q", ErrRuleSetNotFound, name)
	}
	return set, nil
}

// Names returns the loaded rule set names, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.sets))
	for name := range s.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
