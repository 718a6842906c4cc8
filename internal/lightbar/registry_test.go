package lightbar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKeyframes() []Keyframe {
	return []Keyframe{
		{TimeMS: 0, Color: Color{255, 0, 0}, Brightness: 1, Easing: EaseLinear},
		{TimeMS: 500, Color: Color{0, 0, 255}, Brightness: 0.5, Easing: EaseSine},
	}
}

func TestRegistryListsBuiltinsFirst(t *testing.T) {
	reg := NewRegistry(filepath.Join(t.TempDir(), "animations.json"))

	all := reg.List()
	require.Len(t, all, 4)
	assert.Equal(t, PresetPulseSlow, all[0].ID)
	assert.Equal(t, PresetFire, all[3].ID)
}

func TestRegistryGetBuiltin(t *testing.T) {
	reg := NewRegistry(filepath.Join(t.TempDir(), "animations.json"))

	anim, err := reg.Get(PresetPolice)
	require.NoError(t, err)
	assert.Equal(t, "Police Lights", anim.Name)
	assert.True(t, anim.Loop)

	// Mutating the returned value must not leak into the table.
	anim.Keyframes[0].Color = Color{1, 2, 3}
	again, err := reg.Get(PresetPolice)
	require.NoError(t, err)
	assert.Equal(t, Red, again.Keyframes[0].Color)
}

func TestRegistryCreatePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animations.json")
	reg := NewRegistry(path)

	anim, err := reg.Create("My Anim", testKeyframes(), 1000, true)
	require.NoError(t, err)
	assert.Len(t, anim.ID, 8)

	// A fresh registry on the same file sees the animation.
	reloaded := NewRegistry(path)
	got, err := reloaded.Get(anim.ID)
	require.NoError(t, err)
	assert.Equal(t, "My Anim", got.Name)
	assert.Equal(t, 1000, got.DurationMS)
	assert.Equal(t, testKeyframes(), got.Keyframes)
}

func TestRegistryCreateValidation(t *testing.T) {
	reg := NewRegistry(filepath.Join(t.TempDir(), "animations.json"))

	_, err := reg.Create("empty", nil, 1000, true)
	assert.ErrorIs(t, err, ErrInvalidAnimation)

	_, err = reg.Create("no duration", testKeyframes(), 0, true)
	assert.ErrorIs(t, err, ErrInvalidAnimation)
}

func TestRegistryCreateClampsKeyframes(t *testing.T) {
	reg := NewRegistry(filepath.Join(t.TempDir(), "animations.json"))

	anim, err := reg.Create("hot", []Keyframe{
		{TimeMS: -5, Color: Color{300, -1, 128}, Brightness: 1.7},
	}, 100, false)
	require.NoError(t, err)

	kf := anim.Keyframes[0]
	assert.Equal(t, 0, kf.TimeMS)
	assert.Equal(t, Color{255, 0, 128}, kf.Color)
	assert.Equal(t, 1.0, kf.Brightness)
	assert.Equal(t, EaseLinear, kf.Easing)
}

func TestRegistryUpdatePatchesOnlyGivenFields(t *testing.T) {
	reg := NewRegistry(filepath.Join(t.TempDir(), "animations.json"))

	anim, err := reg.Create("original", testKeyframes(), 1000, true)
	require.NoError(t, err)

	name := "renamed"
	updated, err := reg.Update(anim.ID, Patch{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, anim.Keyframes, updated.Keyframes)
	assert.Equal(t, 1000, updated.DurationMS)
	assert.True(t, updated.Loop)

	loop := false
	duration := 2500
	updated, err = reg.Update(anim.ID, Patch{DurationMS: &duration, Loop: &loop})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, 2500, updated.DurationMS)
	assert.False(t, updated.Loop)
}

func TestRegistryBuiltinsAreReadOnly(t *testing.T) {
	reg := NewRegistry(filepath.Join(t.TempDir(), "animations.json"))

	name := "nope"
	_, err := reg.Update(PresetPolice, Patch{Name: &name})
	assert.ErrorIs(t, err, ErrNotPermitted)

	err = reg.Delete(PresetPolice)
	assert.ErrorIs(t, err, ErrNotPermitted)

	// The registry is unchanged and the error is not a not-found.
	assert.NotErrorIs(t, err, ErrNotFound)
	anim, err := reg.Get(PresetPolice)
	require.NoError(t, err)
	assert.Equal(t, "Police Lights", anim.Name)
}

func TestRegistryUnknownID(t *testing.T) {
	reg := NewRegistry(filepath.Join(t.TempDir(), "animations.json"))

	_, err := reg.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = reg.Update("missing", Patch{})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, reg.Delete("missing"), ErrNotFound)
}

func TestRegistryDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animations.json")
	reg := NewRegistry(path)

	anim, err := reg.Create("doomed", testKeyframes(), 1000, true)
	require.NoError(t, err)

	require.NoError(t, reg.Delete(anim.ID))
	_, err = reg.Get(anim.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The deletion is persisted too.
	_, err = NewRegistry(path).Get(anim.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistryMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animations.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	// Load is best-effort: a corrupt file leaves an empty user set.
	reg := NewRegistry(path)
	assert.Len(t, reg.List(), 4)

	// And the registry remains usable.
	_, err := reg.Create("fresh", testKeyframes(), 1000, true)
	assert.NoError(t, err)
}

func TestRegistryMissingFile(t *testing.T) {
	reg := NewRegistry(filepath.Join(t.TempDir(), "does", "not", "exist.json"))
	assert.Len(t, reg.List(), 4)
}

func TestRegistryIgnoresBuiltinCollisionsOnLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animations.json")
	content := `{"custom_animations": [{"id": "police", "name": "fake", "keyframes": [], "duration_ms": 1, "loop": false}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	reg := NewRegistry(path)
	anim, err := reg.Get(PresetPolice)
	require.NoError(t, err)
	assert.Equal(t, "Police Lights", anim.Name)
}
