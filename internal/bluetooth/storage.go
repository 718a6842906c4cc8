package bluetooth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"
)

// SavedController is a paired controller remembered across restarts.
type SavedController struct {
	Address    string `json:"address"`
	Name       string `json:"name"`
	CustomName string `json:"custom_name"`
}

// DisplayName prefers the user-assigned name over the advertised one.
func (c SavedController) DisplayName() string {
	if c.CustomName != "" {
		return c.CustomName
	}
	return c.Name
}

// ControllerStore persists saved controllers as a JSON file keyed by
// address. Load is best-effort, mirroring the animation registry.
type ControllerStore struct {
	path string

	mu          sync.Mutex
	controllers map[string]SavedController
}

type savedEntry struct {
	Name       string `json:"name"`
	CustomName string `json:"custom_name"`
}

func NewControllerStore(path string) *ControllerStore {
	s := &ControllerStore{
		path:        path,
		controllers: make(map[string]SavedController),
	}
	s.load()
	return s
}

func (s *ControllerStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("Could not load controllers from %s: %v", s.path, err)
		}
		return
	}

	entries := make(map[string]savedEntry)
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Warnf("Could not parse controllers in %s: %v", s.path, err)
		return
	}
	for addr, e := range entries {
		s.controllers[addr] = SavedController{Address: addr, Name: e.Name, CustomName: e.CustomName}
	}
}

// save is called with s.mu held. Failures are logged and swallowed.
func (s *ControllerStore) save() {
	entries := make(map[string]savedEntry, len(s.controllers))
	for addr, c := range s.controllers {
		entries[addr] = savedEntry{Name: c.Name, CustomName: c.CustomName}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Warnf("Could not encode controllers: %v", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		log.Warnf("Could not create controller directory: %v", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		log.Warnf("Could not save controllers to %s: %v", s.path, err)
	}
}

// Add remembers a controller, updating the advertised name when it is
// already known.
func (s *ControllerStore) Add(address, name string) SavedController {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.controllers[address]
	if !ok {
		c = SavedController{Address: address, Name: name}
	} else {
		c.Name = name
	}
	s.controllers[address] = c
	s.save()
	return c
}

// Remove forgets a controller.
func (s *ControllerStore) Remove(address string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.controllers[address]; !ok {
		return false
	}
	delete(s.controllers, address)
	s.save()
	return true
}

// Rename assigns a custom name to a saved controller.
func (s *ControllerStore) Rename(address, customName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.controllers[address]
	if !ok {
		return false
	}
	c.CustomName = customName
	s.controllers[address] = c
	s.save()
	return true
}

// Get looks a saved controller up by address.
func (s *ControllerStore) Get(address string) (SavedController, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.controllers[address]
	return c, ok
}

// All returns every saved controller in address order.
func (s *ControllerStore) All() []SavedController {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]SavedController, 0, len(s.controllers))
	for _, c := range s.controllers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out
}
