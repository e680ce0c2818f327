// package cache implements a persistent, signature-keyed memoization store for remote catalog calls.
//
// Each distinct call signature maps to one file under the store root. Entries
// have no expiry: a signature resolves to the same stored result until the
// store is cleared. Boundedness is left to the operator via [Store.Clear].
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"
)

// Store is a disk-backed key→blob store shared by all catalog call sites.
//
// Concurrent lookups for the same signature are collapsed into a single
// computation; writes are atomic with respect to readers.
type Store struct {
	root   string
	logger *log.Logger
	group  singleflight.Group

	mu       sync.Mutex
	disabled bool
}

// NewStore opens (creating if absent) a store rooted at dir.
func NewStore(dir string, logger *log.Logger) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache root is required: %w", os.ErrInvalid)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache root: %w", err)
	}
	return &Store{root: dir, logger: logger}, nil
}

// Signature derives the deterministic cache key for an operation and its
// named parameters. Parameters are sorted by name before encoding, so two
// calls differing only in parameter order collide to the same entry.
// Positional inputs never participate in the signature; callers must express
// every cache-relevant input as a named parameter.
func Signature(op string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+1)
	parts = append(parts, op)
	for _, k := range keys {
		parts = append(parts, k, params[k])
	}
	return slugify(strings.Join(parts, " "))
}

// slugify converts s into a filesystem-safe slug: lowercase, with runs of
// anything outside [a-z0-9] collapsed to single hyphens.
func slugify(s string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if hyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			hyphen = false
			b.WriteRune(r)
		default:
			hyphen = true
		}
	}
	return b.String()
}

// Cached memoizes fn under the signature of op and params. On a hit the
// stored blob is decoded and returned without invoking fn; on a miss fn runs,
// its result is stored, and the result is returned. A stored entry that no
// longer decodes into T is treated as a miss and overwritten, not surfaced as
// an error. Concurrent callers with the same signature share one in-flight
// computation.
func Cached[T any](ctx context.Context, s *Store, op string, params map[string]string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	sig := Signature(op, params)

	v, err, _ := s.group.Do(sig, func() (any, error) {
		if blob, ok := s.read(sig); ok {
			var out T
			if err := json.Unmarshal(blob, &out); err == nil {
				s.logger.Debug("cache hit", "signature", sig)
				return out, nil
			}
			// undecodable entry, recompute and overwrite
			s.logger.Warn("discarding unreadable cache entry", "signature", sig)
		}

		out, err := fn(ctx)
		if err != nil {
			return nil, err
		}

		blob, err := json.Marshal(out)
		if err != nil {
			return nil, fmt.Errorf("failed to encode result for %s: %w", sig, err)
		}
		s.write(sig, blob)
		return out, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// Clear removes the entire store root and disables writes for the remainder
// of the session. Used when memoization is turned off.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.disabled = true
	s.mu.Unlock()

	if err := os.RemoveAll(s.root); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	s.logger.Info("cache cleared", "root", s.root)
	return nil
}

// Disabled reports whether the store has been cleared this session.
func (s *Store) Disabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disabled
}

// Root returns the directory backing the store.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) path(sig string) string {
	return filepath.Join(s.root, sig+".json")
}

func (s *Store) read(sig string) ([]byte, bool) {
	if s.Disabled() {
		return nil, false
	}
	blob, err := os.ReadFile(s.path(sig))
	if err != nil {
		return nil, false
	}
	return blob, true
}

// write stores blob under sig atomically: the blob lands in a temp file in
// the store root and is renamed into place, so a concurrent reader sees
// either the previous entry or the complete new one, never a partial write.
func (s *Store) write(sig string, blob []byte) {
	if s.Disabled() {
		return
	}

	tmp, err := os.CreateTemp(s.root, sig+".tmp-*")
	if err != nil {
		s.logger.Warn("failed to stage cache entry", "signature", sig, "err", err)
		return
	}
	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		s.logger.Warn("failed to write cache entry", "signature", sig, "err", err)
		return
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		s.logger.Warn("failed to write cache entry", "signature", sig, "err", err)
		return
	}
	if err := os.Rename(tmp.Name(), s.path(sig)); err != nil {
		os.Remove(tmp.Name())
		s.logger.Warn("failed to store cache entry", "signature", sig, "err", err)
		return
	}
	s.logger.Info("cached new entry", "signature", sig)
}
