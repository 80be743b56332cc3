// Package docstore persists a record collection as one pretty-printed JSON
// file. Every operation is a whole-file read-modify-write guarded by a
// per-store mutex; stores over different files never block each other.
package docstore

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record is a collection element with a string identity.
type Record interface {
	Key() string
	SetKey(id string)
}

// Timestamped records keep their creation time across upserts and get their
// update time stamped on every save.
type Timestamped interface {
	CreatedTime() time.Time
	SetCreated(t time.Time)
	SetUpdated(t time.Time)
}

type Store[T Record] struct {
	mu   sync.Mutex
	path string
}

func New[T Record](path string) *Store[T] {
	return &Store[T]{path: path}
}

func (s *Store[T]) Path() string { return s.path }

// List returns the full collection. A missing file is an empty collection,
// and so is a file whose content does not parse (see load).
func (s *Store[T]) List() ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Get looks a record up by id, case-insensitively. A blank id is absent,
// not an error.
func (s *Store[T]) Get(id string) (T, bool, error) {
	var zero T
	if strings.TrimSpace(id) == "" {
		return zero, false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.load()
	if err != nil {
		return zero, false, err
	}
	if i := indexOf(list, id); i >= 0 {
		return list[i], true, nil
	}
	return zero, false, nil
}

// Save upserts item by id and rewrites the whole collection. A blank id
// gets a generated one. The caller supplies the complete desired record;
// an existing record with the same id is replaced in place, keeping only
// its creation time when the type is Timestamped.
func (s *Store[T]) Save(item T) (T, error) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load()
	if err != nil {
		return zero, err
	}
	if strings.TrimSpace(item.Key()) == "" {
		item.SetKey(uuid.NewString())
	}
	i := indexOf(list, item.Key())

	if ts, ok := any(item).(Timestamped); ok {
		now := time.Now().UTC()
		created := ts.CreatedTime()
		if i >= 0 {
			if prev, ok := any(list[i]).(Timestamped); ok {
				created = prev.CreatedTime()
			}
		}
		if created.IsZero() {
			created = now
		}
		ts.SetCreated(created)
		ts.SetUpdated(now)
	}

	if i >= 0 {
		list[i] = item
	} else {
		list = append(list, item)
	}
	if err := s.write(list); err != nil {
		return zero, err
	}
	return item, nil
}

// Delete removes the record with the given id and rewrites the file. It
// returns the removed record so callers can run cascades. An absent or
// blank id is a no-op.
func (s *Store[T]) Delete(id string) (T, bool, error) {
	var zero T
	if strings.TrimSpace(id) == "" {
		return zero, false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load()
	if err != nil {
		return zero, false, err
	}
	i := indexOf(list, id)
	if i < 0 {
		return zero, false, nil
	}
	removed := list[i]
	list = append(list[:i], list[i+1:]...)
	if err := s.write(list); err != nil {
		return zero, false, err
	}
	return removed, true, nil
}

// load reads the collection with the lock held. Missing file -> empty.
// Unparseable content -> empty as well: availability over consistency, the
// corruption is logged rather than surfaced to every caller.
func (s *Store[T]) load() ([]T, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	list, err := decodeCollection[T](s.path, data)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			log.Printf("docstore: %v; starting fresh", pe)
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

// write replaces the file atomically: temp file in the same directory,
// then rename. Readers see either the old collection or the new one.
func (s *Store[T]) write(list []T) error {
	data, err := encodeCollection(list)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

func indexOf[T Record](list []T, id string) int {
	for i, item := range list {
		if strings.EqualFold(item.Key(), id) {
			return i
		}
	}
	return -1
}
