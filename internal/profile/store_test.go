package profile

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "profiles.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenSeedsDefaultProfile(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	p, err := s.Get(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "Default", p.Name)
	assert.True(t, p.IsDefault)

	active, err := s.ActiveID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "default", active)
}

func TestCreateSlugsTheName(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	p, err := s.Create(ctx, "My FPS Setup!", "for shooters")
	require.NoError(t, err)
	assert.Equal(t, "my_fps_setup", p.ID)
	assert.False(t, p.IsDefault)

	// A second profile with the same name gets a counter suffix.
	p2, err := s.Create(ctx, "My FPS Setup!", "")
	require.NoError(t, err)
	assert.Equal(t, "my_fps_setup_1", p2.ID)
}

func TestUpdatePartialFields(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	p, err := s.Create(ctx, "Racing", "wheel games")
	require.NoError(t, err)

	name := "Racing v2"
	updated, err := s.Update(ctx, p.ID, &name, nil)
	require.NoError(t, err)
	assert.Equal(t, "Racing v2", updated.Name)
	assert.Equal(t, "wheel games", updated.Description)
}

func TestDeleteProtectsDefault(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	err := s.Delete(ctx, "default")
	assert.ErrorIs(t, err, ErrProtected)

	_, err = s.Get(ctx, "default")
	assert.NoError(t, err)
}

func TestDeleteActiveFallsBackToDefault(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	p, err := s.Create(ctx, "Temp", "")
	require.NoError(t, err)
	require.NoError(t, s.Activate(ctx, p.ID))

	require.NoError(t, s.Delete(ctx, p.ID))

	active, err := s.ActiveID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "default", active)
}

func TestDuplicateCopiesCollections(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	p, err := s.Create(ctx, "Source", "")
	require.NoError(t, err)

	_, err = s.AddMacro(ctx, p.ID, Macro{
		Name:          "double tap",
		TriggerButton: "cross",
		Actions:       []MacroAction{{Type: "press", Button: "cross"}, {Type: "press", Button: "cross"}},
		Enabled:       true,
	})
	require.NoError(t, err)
	_, err = s.AddRemap(ctx, p.ID, ButtonRemap{FromButton: "l1", ToButton: "r1", Enabled: true})
	require.NoError(t, err)

	dup, err := s.Duplicate(ctx, p.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Source (Copy)", dup.Name)

	got, err := s.Get(ctx, dup.ID)
	require.NoError(t, err)
	require.Len(t, got.Macros, 1)
	assert.Equal(t, "double tap", got.Macros[0].Name)
	require.Len(t, got.ButtonRemaps, 1)
	assert.Equal(t, "l1", got.ButtonRemaps[0].FromButton)
}

func TestMacroLifecycle(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	m, err := s.AddMacro(ctx, "default", Macro{Name: "combo", TriggerButton: "square", Enabled: true})
	require.NoError(t, err)
	assert.Len(t, m.ID, 8)
	assert.Equal(t, "on_press", m.TriggerMode)

	m.Name = "combo v2"
	require.NoError(t, s.UpdateMacro(ctx, "default", m.ID, m))

	got, err := s.GetMacro(ctx, "default", m.ID)
	require.NoError(t, err)
	assert.Equal(t, "combo v2", got.Name)

	require.NoError(t, s.RemoveMacro(ctx, "default", m.ID))
	_, err = s.GetMacro(ctx, "default", m.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemapLifecycle(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	r, err := s.AddRemap(ctx, "default", ButtonRemap{FromButton: "cross", ToButton: "circle", Bidirectional: true, Enabled: true})
	require.NoError(t, err)
	assert.Len(t, r.ID, 8)

	r.Bidirectional = false
	require.NoError(t, s.UpdateRemap(ctx, "default", r.ID, r))

	got, err := s.GetRemap(ctx, "default", r.ID)
	require.NoError(t, err)
	assert.False(t, got.Bidirectional)

	require.NoError(t, s.RemoveRemap(ctx, "default", r.ID))
	assert.ErrorIs(t, s.RemoveRemap(ctx, "default", r.ID), ErrNotFound)
}

func TestUnknownProfile(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.AddMacro(ctx, "ghost", Macro{Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Activate(ctx, "ghost"), ErrNotFound)
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.db")

	s, err := Open(path)
	require.NoError(t, err)
	p, err := s.Create(context.Background(), "Keeper", "stays")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keeper", got.Name)
}
