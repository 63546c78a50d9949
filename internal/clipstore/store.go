// Package clipstore holds the authoritative clip collection from the last
// successful analysis.
//
// The store is replace-only: a successful analysis swaps the whole collection
// in, a reset clears it, and nothing ever mutates clips in place. The
// canDownloadClips capability flag travels with the collection, not with
// individual clips.
package clipstore

import (
	"sync"

	"viralclip/internal/clip"
)

// Store owns the ordered result set of the last successful analysis.
type Store struct {
	mu          sync.RWMutex
	clips       []clip.Clip
	canDownload bool
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Replace swaps the collection wholesale, preserving the provided order.
func (s *Store) Replace(clips []clip.Clip, canDownload bool) {
	cp := make([]clip.Clip, len(clips))
	copy(cp, clips)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clips = cp
	s.canDownload = canDownload
}

// Clear empties the store and drops the capability flag.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clips = nil
	s.canDownload = false
}

// All returns the collection in service order.
func (s *Store) All() []clip.Clip {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]clip.Clip, len(s.clips))
	copy(cp, s.clips)
	return cp
}

// FindByID looks a clip up using the normalizing identifier comparison, so
// "7" and 7-as-string-from-display both resolve.
func (s *Store) FindByID(id clip.ID) (clip.Clip, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clips {
		if c.ID.Equal(id) {
			return c, true
		}
	}
	return clip.Clip{}, false
}

// CanDownload reports whether the service indicated direct media retrieval is
// possible for this collection.
func (s *Store) CanDownload() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.canDownload
}

// Len returns the collection size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clips)
}
