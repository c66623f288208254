// Package resume implements the resume document store: the single source of
// truth for an in-progress resume, its typed mutation operations, and the
// normalization of externally supplied documents.
package resume

import (
	"sync"

	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus"
)

// ChangeKind says which kind of operation produced a Change.
type ChangeKind string

// Change kinds.
const (
	ChangeMutation ChangeKind = "mutation"
	ChangeLoad     ChangeKind = "load"
	ChangeRestore  ChangeKind = "restore"
	ChangeReset    ChangeKind = "reset"
)

// Change is delivered to subscribers after a new document has been installed.
// Versions increase strictly; a subscriber that sees a lower version than one
// it already handled is looking at a stale notification.
type Change struct {
	Kind    ChangeKind
	Version uint64
	Resume  types.Resume
	IsDraft bool
}

// Store owns one resume document. Every operation replaces the document as a
// whole: it copies the current document, changes the copy, and installs it
// under the store lock. Readers therefore never see a partially applied
// update.
//
// A Store is safe for concurrent use. Subscribers are called synchronously
// after the lock is released and must not block.
type Store struct {
	log logrus.FieldLogger

	mu      sync.RWMutex
	doc     types.Resume
	isDraft bool
	version uint64

	subsMu  sync.Mutex
	subs    map[int]func(Change)
	nextSub int
}

// NewStore returns a store holding a fresh draft document.
func NewStore(log logrus.FieldLogger) *Store {
	return &Store{
		log:     logger.OrDiscard(log),
		doc:     New(),
		isDraft: true,
		subs:    make(map[int]func(Change)),
	}
}

// Resume returns a copy of the current document.
func (s *Store) Resume() types.Resume {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// IsDraft reports whether the current document is an unsaved local draft
// rather than a document loaded from the server.
func (s *Store) IsDraft() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isDraft
}

// Version returns the number of documents installed so far.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Score returns the completeness score of the current document.
func (s *Store) Score() Score {
	return Completeness(s.Resume())
}

// Subscribe registers fn for every subsequent change and returns a function
// that removes the registration.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

// LoadResume replaces the document with a normalized copy of doc and clears
// the draft flag.
func (s *Store) LoadResume(doc types.Resume) {
	s.install(ChangeLoad, NormalizeResume(doc), false)
}

// LoadJSON replaces the document with the normalization of raw JSON and
// clears the draft flag. Anything normalization had to repair is logged and
// returned.
func (s *Store) LoadJSON(data []byte) Report {
	doc, report := Normalize(data)
	report.Log(s.log, "loaded resume needed repair")
	s.install(ChangeLoad, doc, false)
	return report
}

// Restore installs a document recovered from a local snapshot. It does
// nothing and returns false once a non-draft document has been loaded, so a
// stored draft can never replace an opened resume.
func (s *Store) Restore(doc types.Resume, isDraft bool) bool {
	normalized := NormalizeResume(doc)

	s.mu.Lock()
	if !s.isDraft {
		s.mu.Unlock()
		return false
	}
	change := s.installLocked(ChangeRestore, normalized, isDraft)
	s.mu.Unlock()

	s.notify(change)
	return true
}

// Reset discards the document in favor of a fresh default and marks it as a
// draft again. Subscribers see a ChangeReset, on which local snapshots are
// cleared.
func (s *Store) Reset() {
	s.install(ChangeReset, New(), true)
}

func (s *Store) install(kind ChangeKind, doc types.Resume, isDraft bool) {
	s.mu.Lock()
	change := s.installLocked(kind, doc, isDraft)
	s.mu.Unlock()

	s.notify(change)
}

func (s *Store) installLocked(kind ChangeKind, doc types.Resume, isDraft bool) Change {
	s.doc = doc
	s.isDraft = isDraft
	s.version++
	return Change{Kind: kind, Version: s.version, Resume: doc.Clone(), IsDraft: isDraft}
}

// mutate runs fn on a copy of the document and installs the copy when fn
// reports a change. Every mutation operation goes through here.
func (s *Store) mutate(fn func(doc *types.Resume) bool) bool {
	s.mu.Lock()
	next := s.doc.Clone()
	if !fn(&next) {
		s.mu.Unlock()
		return false
	}
	change := s.installLocked(ChangeMutation, next, s.isDraft)
	s.mu.Unlock()

	s.notify(change)
	return true
}

func (s *Store) notify(change Change) {
	s.subsMu.Lock()
	subs := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subsMu.Unlock()

	for i, fn := range subs {
		c := change
		if i > 0 {
			c.Resume = change.Resume.Clone()
		}
		fn(c)
	}
}
