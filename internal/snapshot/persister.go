package snapshot

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/sirupsen/logrus"
)

// DefaultWriteTimeout bounds a single snapshot write.
const DefaultWriteTimeout = 2 * time.Second

// Persister mirrors a store's draft into Storage. Failures are logged and
// never reach the store or its callers.
type Persister struct {
	storage Storage
	log     logrus.FieldLogger
	timeout time.Duration

	mu          sync.Mutex
	lastVersion uint64
}

// NewPersister returns a persister writing to storage.
func NewPersister(storage Storage, log logrus.FieldLogger) *Persister {
	return &Persister{
		storage: storage,
		log:     logger.OrDiscard(log).WithField("component", "snapshot"),
		timeout: DefaultWriteTimeout,
	}
}

// Attach subscribes the persister to store and returns the function that
// detaches it.
func (p *Persister) Attach(store *resume.Store) (detach func()) {
	return store.Subscribe(p.handle)
}

func (p *Persister) handle(change resume.Change) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if change.Version <= p.lastVersion {
		p.log.WithField("version", change.Version).Debug("skipping stale change")
		return
	}
	p.lastVersion = change.Version

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	switch change.Kind {
	case resume.ChangeReset:
		if err := p.storage.Delete(ctx, DraftKey); err != nil {
			p.log.WithError(err).Warn("failed to clear draft snapshot")
		}
	case resume.ChangeMutation, resume.ChangeLoad:
		if !change.IsDraft {
			return
		}
		data, err := Encode(change.Resume, change.IsDraft)
		if err != nil {
			p.log.WithError(err).Warn("failed to encode draft snapshot")
			return
		}
		if err := p.storage.Set(ctx, DraftKey, data); err != nil {
			p.log.WithError(err).Warn("failed to write draft snapshot")
			return
		}
		p.log.WithField("version", change.Version).Debug("draft snapshot written")
	}
}

// Rehydrate restores the draft snapshot into store. It reports whether a
// snapshot was applied. A store that already holds a loaded resume keeps it.
// Corrupt snapshots are logged and removed; snapshots from a newer version
// are logged and left alone. Only storage failures are returned.
func Rehydrate(ctx context.Context, store *resume.Store, storage Storage, log logrus.FieldLogger) (bool, error) {
	log = logger.OrDiscard(log).WithField("component", "snapshot")

	if !store.IsDraft() {
		return false, nil
	}

	data, ok, err := storage.Get(ctx, DraftKey)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	doc, isDraft, report, err := decode(data)
	var versionErr *VersionError
	switch {
	case errors.As(err, &versionErr):
		log.WithError(err).Warn("ignoring snapshot from a newer version")
		return false, nil
	case err != nil:
		log.WithError(err).Warn("discarding corrupt draft snapshot")
		if delErr := storage.Delete(ctx, DraftKey); delErr != nil {
			log.WithError(delErr).Warn("failed to remove corrupt draft snapshot")
		}
		return false, nil
	}
	report.Log(log, "draft snapshot needed repair")

	return store.Restore(doc, isDraft), nil
}
