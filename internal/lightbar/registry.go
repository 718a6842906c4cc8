package lightbar

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Registry holds the animation catalogue: the immutable built-in table plus
// user-defined animations persisted as a single JSON file. All methods are
// safe for concurrent use.
type Registry struct {
	path string

	mu   sync.RWMutex
	user map[string]Animation
}

// animationFile is the on-disk shape of the user animation set.
type animationFile struct {
	CustomAnimations []Animation `json:"custom_animations"`
}

// Patch lists the animation fields an update may change. Nil fields are
// left untouched.
type Patch struct {
	Name       *string     `json:"name,omitempty"`
	Keyframes  *[]Keyframe `json:"keyframes,omitempty"`
	DurationMS *int        `json:"duration_ms,omitempty"`
	Loop       *bool       `json:"loop,omitempty"`
}

// NewRegistry opens the registry backed by the given file. Loading is
// best-effort: a missing file means an empty registry, a corrupt one is
// logged and ignored.
func NewRegistry(path string) *Registry {
	r := &Registry{
		path: path,
		user: make(map[string]Animation),
	}
	r.load()
	return r
}

func (r *Registry) load() {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("Could not load animations from %s: %v", r.path, err)
		}
		return
	}

	var file animationFile
	if err := json.Unmarshal(data, &file); err != nil {
		log.Warnf("Could not parse animations in %s: %v", r.path, err)
		return
	}

	for _, anim := range file.CustomAnimations {
		if anim.ID == "" {
			continue
		}
		if _, reserved := builtins[anim.ID]; reserved {
			continue
		}
		anim.normalize()
		r.user[anim.ID] = anim
	}
}

// save writes the whole user set back to disk. Failures are logged and
// swallowed; the in-memory state stays authoritative. Callers hold r.mu.
func (r *Registry) save() {
	file := animationFile{CustomAnimations: make([]Animation, 0, len(r.user))}
	for _, id := range r.sortedUserIDs() {
		file.CustomAnimations = append(file.CustomAnimations, r.user[id])
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		log.Warnf("Could not encode animations: %v", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		log.Warnf("Could not create animation directory: %v", err)
		return
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		log.Warnf("Could not save animations to %s: %v", r.path, err)
	}
}

// List returns every animation, built-ins first.
func (r *Registry) List() []Animation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Animation, 0, len(builtinOrder)+len(r.user))
	for _, id := range builtinOrder {
		out = append(out, builtins[id].clone())
	}
	for _, id := range r.sortedUserIDs() {
		out = append(out, r.user[id].clone())
	}
	return out
}

// Get looks an animation up by id, built-ins taking precedence.
func (r *Registry) Get(id string) (Animation, error) {
	if anim, ok := builtins[id]; ok {
		return anim.clone(), nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if anim, ok := r.user[id]; ok {
		return anim.clone(), nil
	}
	return Animation{}, ErrNotFound
}

// Create adds a new user animation and persists the registry. The generated
// id is short and guaranteed not to collide with any existing id.
func (r *Registry) Create(name string, keyframes []Keyframe, durationMS int, loop bool) (Animation, error) {
	if len(keyframes) == 0 {
		return Animation{}, fmt.Errorf("%w: at least one keyframe is required", ErrInvalidAnimation)
	}
	if durationMS <= 0 {
		return Animation{}, fmt.Errorf("%w: duration must be positive", ErrInvalidAnimation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	anim := Animation{
		ID:         r.newID(),
		Name:       name,
		Keyframes:  append([]Keyframe(nil), keyframes...),
		DurationMS: durationMS,
		Loop:       loop,
	}
	anim.normalize()

	r.user[anim.ID] = anim
	r.save()

	log.Infof("Created animation %s (%q)", anim.ID, anim.Name)
	return anim.clone(), nil
}

// Update applies the non-nil fields of the patch to a user animation and
// persists the registry. Built-ins cannot be updated.
func (r *Registry) Update(id string, patch Patch) (Animation, error) {
	if _, ok := builtins[id]; ok {
		return Animation{}, ErrNotPermitted
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	anim, ok := r.user[id]
	if !ok {
		return Animation{}, ErrNotFound
	}

	if patch.Name != nil {
		anim.Name = *patch.Name
	}
	if patch.Keyframes != nil {
		if len(*patch.Keyframes) == 0 {
			return Animation{}, fmt.Errorf("%w: at least one keyframe is required", ErrInvalidAnimation)
		}
		anim.Keyframes = append([]Keyframe(nil), *patch.Keyframes...)
	}
	if patch.DurationMS != nil {
		if *patch.DurationMS <= 0 {
			return Animation{}, fmt.Errorf("%w: duration must be positive", ErrInvalidAnimation)
		}
		anim.DurationMS = *patch.DurationMS
	}
	if patch.Loop != nil {
		anim.Loop = *patch.Loop
	}
	anim.normalize()

	r.user[id] = anim
	r.save()
	return anim.clone(), nil
}

// Delete removes a user animation and persists the registry. Built-ins
// cannot be deleted.
func (r *Registry) Delete(id string) error {
	if _, ok := builtins[id]; ok {
		return ErrNotPermitted
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.user[id]; !ok {
		return ErrNotFound
	}
	delete(r.user, id)
	r.save()

	log.Infof("Deleted animation %s", id)
	return nil
}

// newID generates a short random id that is free in both tables. Callers
// hold r.mu.
func (r *Registry) newID() string {
	for {
		id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		if _, ok := builtins[id]; ok {
			continue
		}
		if _, ok := r.user[id]; ok {
			continue
		}
		return id
	}
}

func (r *Registry) sortedUserIDs() []string {
	ids := make([]string, 0, len(r.user))
	for id := range r.user {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
