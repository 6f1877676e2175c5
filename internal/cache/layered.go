package cache

import "time"

// LayeredStore reads through memory into disk, promoting disk hits
type LayeredStore struct {
	memory Store
	disk   Store
}

// NewLayeredStore creates a memory+disk store. diskDir empty means the disk
// tier is skipped and this degenerates to a plain memory store.
func NewLayeredStore(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredStore {
	ls := &LayeredStore{memory: NewMemoryStore(memoryTTL, 10*time.Minute)}
	if diskDir != "" {
		ls.disk = NewDiskStore(diskDir, diskTTL)
	}
	return ls
}

// Get checks memory first, then disk
func (s *LayeredStore) Get(key string) ([]byte, bool) {
	if val, found := s.memory.Get(key); found {
		return val, true
	}
	if s.disk != nil {
		if val, found := s.disk.Get(key); found {
			_ = s.memory.Set(key, val, 0)
			return val, true
		}
	}
	return nil, false
}

// Set writes to both tiers
func (s *LayeredStore) Set(key string, value []byte, ttl time.Duration) error {
	if err := s.memory.Set(key, value, ttl); err != nil {
		return err
	}
	if s.disk != nil {
		return s.disk.Set(key, value, ttl)
	}
	return nil
}

// Delete removes from both tiers
func (s *LayeredStore) Delete(key string) error {
	_ = s.memory.Delete(key)
	if s.disk != nil {
		_ = s.disk.Delete(key)
	}
	return nil
}

// Clear empties both tiers
func (s *LayeredStore) Clear() error {
	_ = s.memory.Clear()
	if s.disk != nil {
		_ = s.disk.Clear()
	}
	return nil
}
