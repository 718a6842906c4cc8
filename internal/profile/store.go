package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	is_default    INTEGER NOT NULL DEFAULT 0,
	macros        TEXT NOT NULL DEFAULT '[]',
	button_remaps TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

const profileColumns = `id, name, description, is_default, macros, button_remaps`

// Store is the sqlite-backed profile repository. A "default" profile is
// seeded on first open and can never be deleted.
type Store struct {
	db *sql.DB
}

// Open opens (and if necessary creates) the profile database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening profile database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating profile schema: %w", err)
	}

	s := &Store{db: db}
	if err := s.seed(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// seed ensures the protected default profile and the active-profile setting
// exist.
func (s *Store) seed(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO profiles (id, name, description, is_default)
		VALUES ('default', 'Default', 'Standard controller configuration', 1)`)
	if err != nil {
		return fmt.Errorf("seeding default profile: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO settings (key, value) VALUES ('active_profile_id', 'default')`)
	if err != nil {
		return fmt.Errorf("seeding active profile: %w", err)
	}
	return nil
}

// List returns every profile, defaults first, then by name.
func (s *Store) List(ctx context.Context) ([]Profile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM profiles ORDER BY is_default DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// Get retrieves a single profile by id.
func (s *Store) Get(ctx context.Context, id string) (Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	return p, err
}

// Create adds a profile with an id derived from its name.
func (s *Store) Create(ctx context.Context, name, description string) (Profile, error) {
	id, err := s.newProfileID(ctx, name)
	if err != nil {
		return Profile{}, err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, name, description) VALUES (?, ?, ?)`,
		id, name, description)
	if err != nil {
		return Profile{}, fmt.Errorf("creating profile: %w", err)
	}
	return s.Get(ctx, id)
}

// Update changes the name and/or description of a profile. Nil fields are
// left untouched.
func (s *Store) Update(ctx context.Context, id string, name, description *string) (Profile, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	if name != nil {
		p.Name = *name
	}
	if description != nil {
		p.Description = *description
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE profiles SET name = ?, description = ? WHERE id = ?`,
		p.Name, p.Description, id)
	if err != nil {
		return Profile{}, fmt.Errorf("updating profile: %w", err)
	}
	return p, nil
}

// Delete removes a profile. Default profiles are protected. If the deleted
// profile was active, the default becomes active again.
func (s *Store) Delete(ctx context.Context, id string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.IsDefault {
		return ErrProtected
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}

	active, err := s.ActiveID(ctx)
	if err == nil && active == id {
		return s.Activate(ctx, "default")
	}
	return nil
}

// Duplicate copies a profile, macros and remaps included, under a new name.
func (s *Store) Duplicate(ctx context.Context, id, newName string) (Profile, error) {
	src, err := s.Get(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	if newName == "" {
		newName = src.Name + " (Copy)"
	}

	dst, err := s.Create(ctx, newName, src.Description)
	if err != nil {
		return Profile{}, err
	}

	dst.Macros = src.Macros
	dst.ButtonRemaps = src.ButtonRemaps
	if err := s.writeCollections(ctx, dst); err != nil {
		return Profile{}, err
	}
	return dst, nil
}

// Activate marks a profile as the active one.
func (s *Store) Activate(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE settings SET value = ? WHERE key = 'active_profile_id'`, id)
	if err != nil {
		return fmt.Errorf("activating profile: %w", err)
	}
	return nil
}

// ActiveID returns the id of the active profile, falling back to the
// default when the stored id no longer exists.
func (s *Store) ActiveID(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = 'active_profile_id'`).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("reading active profile: %w", err)
	}
	if _, err := s.Get(ctx, id); errors.Is(err, ErrNotFound) {
		return "default", nil
	}
	return id, nil
}

// Active returns the active profile.
func (s *Store) Active(ctx context.Context) (Profile, error) {
	id, err := s.ActiveID(ctx)
	if err != nil {
		return Profile{}, err
	}
	return s.Get(ctx, id)
}

// AddMacro appends a macro to a profile, assigning an id when absent.
func (s *Store) AddMacro(ctx context.Context, profileID string, m Macro) (Macro, error) {
	p, err := s.Get(ctx, profileID)
	if err != nil {
		return Macro{}, err
	}
	if m.ID == "" {
		m.ID = shortID()
	}
	if m.TriggerMode == "" {
		m.TriggerMode = "on_press"
	}

	p.Macros = append(p.Macros, m)
	return m, s.writeCollections(ctx, p)
}

// UpdateMacro replaces a macro in place.
func (s *Store) UpdateMacro(ctx context.Context, profileID, macroID string, m Macro) error {
	p, err := s.Get(ctx, profileID)
	if err != nil {
		return err
	}

	for i := range p.Macros {
		if p.Macros[i].ID == macroID {
			m.ID = macroID
			p.Macros[i] = m
			return s.writeCollections(ctx, p)
		}
	}
	return ErrNotFound
}

// RemoveMacro deletes a macro from a profile.
func (s *Store) RemoveMacro(ctx context.Context, profileID, macroID string) error {
	p, err := s.Get(ctx, profileID)
	if err != nil {
		return err
	}

	for i := range p.Macros {
		if p.Macros[i].ID == macroID {
			p.Macros = append(p.Macros[:i], p.Macros[i+1:]...)
			return s.writeCollections(ctx, p)
		}
	}
	return ErrNotFound
}

// GetMacro fetches a single macro.
func (s *Store) GetMacro(ctx context.Context, profileID, macroID string) (Macro, error) {
	p, err := s.Get(ctx, profileID)
	if err != nil {
		return Macro{}, err
	}
	for _, m := range p.Macros {
		if m.ID == macroID {
			return m, nil
		}
	}
	return Macro{}, ErrNotFound
}

// AddRemap appends a button remap to a profile, assigning an id when absent.
func (s *Store) AddRemap(ctx context.Context, profileID string, r ButtonRemap) (ButtonRemap, error) {
	p, err := s.Get(ctx, profileID)
	if err != nil {
		return ButtonRemap{}, err
	}
	if r.ID == "" {
		r.ID = shortID()
	}

	p.ButtonRemaps = append(p.ButtonRemaps, r)
	return r, s.writeCollections(ctx, p)
}

// UpdateRemap replaces a remap in place.
func (s *Store) UpdateRemap(ctx context.Context, profileID, remapID string, r ButtonRemap) error {
	p, err := s.Get(ctx, profileID)
	if err != nil {
		return err
	}

	for i := range p.ButtonRemaps {
		if p.ButtonRemaps[i].ID == remapID {
			r.ID = remapID
			p.ButtonRemaps[i] = r
			return s.writeCollections(ctx, p)
		}
	}
	return ErrNotFound
}

// RemoveRemap deletes a remap from a profile.
func (s *Store) RemoveRemap(ctx context.Context, profileID, remapID string) error {
	p, err := s.Get(ctx, profileID)
	if err != nil {
		return err
	}

	for i := range p.ButtonRemaps {
		if p.ButtonRemaps[i].ID == remapID {
			p.ButtonRemaps = append(p.ButtonRemaps[:i], p.ButtonRemaps[i+1:]...)
			return s.writeCollections(ctx, p)
		}
	}
	return ErrNotFound
}

// GetRemap fetches a single remap.
func (s *Store) GetRemap(ctx context.Context, profileID, remapID string) (ButtonRemap, error) {
	p, err := s.Get(ctx, profileID)
	if err != nil {
		return ButtonRemap{}, err
	}
	for _, r := range p.ButtonRemaps {
		if r.ID == remapID {
			return r, nil
		}
	}
	return ButtonRemap{}, ErrNotFound
}

// writeCollections persists the macro and remap columns of a profile.
func (s *Store) writeCollections(ctx context.Context, p Profile) error {
	macros, err := json.Marshal(p.Macros)
	if err != nil {
		return fmt.Errorf("encoding macros: %w", err)
	}
	remaps, err := json.Marshal(p.ButtonRemaps)
	if err != nil {
		return fmt.Errorf("encoding remaps: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE profiles SET macros = ?, button_remaps = ? WHERE id = ?`,
		string(macros), string(remaps), p.ID)
	if err != nil {
		return fmt.Errorf("saving profile collections: %w", err)
	}
	return nil
}

// newProfileID slugs the profile name into an id, appending a counter when
// the slug is taken.
func (s *Store) newProfileID(ctx context.Context, name string) (string, error) {
	base := slugify(name)

	id := base
	for n := 1; ; n++ {
		var exists int
		err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM profiles WHERE id = ?`, id).Scan(&exists)
		if err != nil {
			return "", fmt.Errorf("checking profile id: %w", err)
		}
		if exists == 0 {
			return id, nil
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
}

func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "profile"
	}
	return b.String()
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (Profile, error) {
	var (
		p         Profile
		isDefault int
		macros    string
		remaps    string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &isDefault, &macros, &remaps); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, err
		}
		return Profile{}, fmt.Errorf("scanning profile: %w", err)
	}
	p.IsDefault = isDefault != 0

	if err := json.Unmarshal([]byte(macros), &p.Macros); err != nil {
		return Profile{}, fmt.Errorf("decoding macros: %w", err)
	}
	if err := json.Unmarshal([]byte(remaps), &p.ButtonRemaps); err != nil {
		return Profile{}, fmt.Errorf("decoding remaps: %w", err)
	}
	return p, nil
}
