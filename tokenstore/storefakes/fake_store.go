package storefakes

import (
	"sync"

	"github.com/careplus/go-frontdesk-client/tokenstore"
)

var _ tokenstore.Store = (*FakeStore)(nil)

// FakeStore is an in-memory token store for tests.
type FakeStore struct {
	lock   sync.RWMutex
	values map[string]string
}

func NewFakeStore() *FakeStore {
	return &FakeStore{values: make(map[string]string)}
}

func (s *FakeStore) Get(key string) (string, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return "", tokenstore.ErrKeyNotFound
	}
	return value, nil
}

func (s *FakeStore) Set(key, value string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.values[key] = value
	return nil
}

func (s *FakeStore) Remove(key string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.values, key)
	return nil
}

// Len reports how many keys are currently stored.
func (s *FakeStore) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.values)
}
