package persist

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// KV is a durable string key-value slot store.
type KV interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
}

var (
	_ KV = &JSON{}
	_ KV = &Memory{}
)

// JSON keeps all slots in a single flat JSON object file.
type JSON struct {
	file string
}

func InJSON(file string) *JSON {
	return &JSON{file}
}

func (j JSON) Path() string {
	return j.file
}

// Get reads a slot. A missing file is treated as an empty store.
func (j JSON) Get(key string) (string, bool, error) {
	slots, err := j.load()
	if err != nil {
		return "", false, err
	}
	v, ok := slots[key]
	return v, ok, nil
}

// Set writes a slot, keeping every other slot in the file.
func (j JSON) Set(key, value string) error {
	slots, err := j.load()
	if err != nil {
		return err
	}
	slots[key] = value
	bs, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(j.file), 0700); err != nil {
		return err
	}
	tmp := j.file + ".tmp"
	if err := os.WriteFile(tmp, bs, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, j.file)
}

func (j JSON) load() (map[string]string, error) {
	bs, err := os.ReadFile(j.file)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	slots := map[string]string{}
	if len(bs) == 0 {
		return slots, nil
	}
	if err := json.Unmarshal(bs, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// Memory is a KV that lives only as long as the process.
type Memory struct {
	mu    sync.Mutex
	slots map[string]string
}

func InMemory() *Memory {
	return &Memory{slots: map[string]string{}}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.slots[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = value
	return nil
}
