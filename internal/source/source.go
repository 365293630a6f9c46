// Package source owns the business record a dashboard renders from and the
// catalog derived from it. Both are swapped together as one immutable
// snapshot whenever the record is reloaded.
package source

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/GregMSThompson/dashboard-builder/internal/catalog"
	"github.com/GregMSThompson/dashboard-builder/internal/errs"
	"github.com/GregMSThompson/dashboard-builder/internal/models"
	"github.com/GregMSThompson/dashboard-builder/internal/record"
	"github.com/GregMSThompson/dashboard-builder/pkg/logger"
)

// Snapshot is one loaded record with its catalog. It is never modified after
// it is published.
type Snapshot struct {
	Record   any
	Fields   []models.FieldDescriptor
	Path     string
	Version  uint64
	LoadedAt time.Time
}

// Source publishes the current snapshot and notifies subscribers on reload.
type Source struct {
	path    string
	current atomic.Pointer[Snapshot]
	version atomic.Uint64

	mu     sync.Mutex
	nextID int
	subs   map[int]chan *Snapshot
}

// New loads the record at path. An empty path uses the built-in sample.
func New(ctx context.Context, path string) (*Source, error) {
	s := &Source{path: path, subs: map[int]chan *Snapshot{}}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// FromRecord wraps an already decoded record. Reload re-publishes it.
func FromRecord(root any) *Source {
	s := &Source{subs: map[int]chan *Snapshot{}}
	s.publish(root)
	return s
}

// Path returns the record file, or "" for an in-memory record.
func (s *Source) Path() string { return s.path }

// Snapshot returns the current snapshot.
func (s *Source) Snapshot() *Snapshot {
	return s.current.Load()
}

// Reload reads the record file again and swaps in a fresh snapshot. On error
// the previous snapshot stays published.
func (s *Source) Reload(ctx context.Context) error {
	log := logger.FromContext(ctx)

	var root any
	if s.path == "" {
		if cur := s.current.Load(); cur != nil {
			root = cur.Record
		} else {
			root = record.Sample()
		}
	} else {
		var err error
		root, err = record.LoadFile(s.path)
		if err != nil {
			return errs.NewSourceError(s.path, err)
		}
	}

	snap := s.publish(root)
	log.Info("record loaded", "path", s.path, "fields", len(snap.Fields), "version", snap.Version)
	return nil
}

func (s *Source) publish(root any) *Snapshot {
	snap := &Snapshot{
		Record:   root,
		Fields:   catalog.Build(root),
		Path:     s.path,
		Version:  s.version.Add(1),
		LoadedAt: time.Now(),
	}
	s.current.Store(snap)
	s.notify(snap)
	return snap
}

// Subscribe returns a channel that receives every snapshot published after
// the call, and a function that cancels the subscription. Slow subscribers
// only ever see the latest snapshot.
func (s *Source) Subscribe() (<-chan *Snapshot, func()) {
	ch := make(chan *Snapshot, 1)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Source) notify(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		// drop a stale pending snapshot so the newest one always fits
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}
