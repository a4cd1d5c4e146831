package workouts

import (
	"sync"

	"github.com/google/uuid"
)

// ChangeFunc receives a snapshot of the collection after every mutation.
type ChangeFunc func(records []Record)

type StoreOption func(*Store)

// WithIDFunc overrides id generation (tests use deterministic ids).
func WithIDFunc(f func() string) StoreOption {
	return func(s *Store) {
		s.newID = f
	}
}

// WithOnChange registers the persistence hook. It runs while the store is
// locked, so snapshots arrive in mutation order; it must not block or call
// back into the store.
func WithOnChange(f ChangeFunc) StoreOption {
	return func(s *Store) {
		s.onChange = f
	}
}

// Store owns the workout collection. Records keep insertion order; any
// date ordering is done by the readers.
type Store struct {
	mutex    sync.RWMutex
	records  []Record
	newID    func() string
	onChange ChangeFunc
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load installs the initial collection without notifying the change hook.
func (s *Store) Load(records []Record) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.records = cloneRecords(records)
}

// Add assigns a fresh id to the record and appends it.
func (s *Store) Add(r Record) Record {
	s.mutex.Lock()
	r.ID = s.uniqueID()
	s.records = append(s.records, r)
	s.notifyLocked()
	s.mutex.Unlock()
	return r
}

// Update merges the patch into the record with the given id. Unknown ids are ignored.
func (s *Store) Update(id string, patch Patch) (Record, bool) {
	s.mutex.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mutex.Unlock()
		return Record{}, false
	}
	updated := patch.Apply(s.records[idx])
	updated.ID = id
	s.records[idx] = updated
	s.notifyLocked()
	s.mutex.Unlock()
	return updated, true
}

// Delete removes the record with the given id, if present.
func (s *Store) Delete(id string) bool {
	s.mutex.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mutex.Unlock()
		return false
	}
	s.records = append(s.records[:idx:idx], s.records[idx+1:]...)
	s.notifyLocked()
	s.mutex.Unlock()
	return true
}

// ReplaceAll discards the collection and installs records verbatim.
func (s *Store) ReplaceAll(records []Record) {
	s.mutex.Lock()
	s.records = cloneRecords(records)
	s.notifyLocked()
	s.mutex.Unlock()
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []Record {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return cloneRecords(s.records)
}

func (s *Store) Get(id string) (Record, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return Record{}, false
	}
	return s.records[idx], true
}

func (s *Store) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.records)
}

func (s *Store) indexOf(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

// uniqueID guards against a custom id func handing out an id already in use.
func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if s.indexOf(id) < 0 {
			return id
		}
	}
}

// notifyLocked hands a snapshot to the change hook; callers hold the write lock.
func (s *Store) notifyLocked() {
	if s.onChange != nil {
		s.onChange(cloneRecords(s.records))
	}
}

func cloneRecords(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	return out
}
