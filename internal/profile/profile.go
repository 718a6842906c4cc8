// Package profile stores controller profiles: named bundles of macros and
// button remaps. Records are plain keyed data; the interesting behavior
// (macro playback, remapping) lives in the adapter process.
package profile

import "errors"

var (
	// ErrNotFound is returned when a profile, macro or remap id is unknown.
	ErrNotFound = errors.New("profile: not found")

	// ErrProtected is returned when deleting a default profile.
	ErrProtected = errors.New("profile: default profiles cannot be deleted")
)

// MacroAction is a single step within a macro.
type MacroAction struct {
	Type       string `json:"type"`
	Button     string `json:"button,omitempty"`
	DurationMS int    `json:"duration_ms,omitempty"`
}

// Macro is a sequence of actions fired by a trigger button.
type Macro struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	TriggerButton string        `json:"trigger_button"`
	TriggerMode   string        `json:"trigger_mode"`
	Actions       []MacroAction `json:"actions"`
	Enabled       bool          `json:"enabled"`
}

// ButtonRemap swaps one button for another, optionally in both directions.
type ButtonRemap struct {
	ID            string `json:"id"`
	FromButton    string `json:"from_button"`
	ToButton      string `json:"to_button"`
	Bidirectional bool   `json:"bidirectional"`
	Enabled       bool   `json:"enabled"`
}

// Profile is a complete controller configuration.
type Profile struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	IsDefault    bool          `json:"is_default"`
	Macros       []Macro       `json:"macros"`
	ButtonRemaps []ButtonRemap `json:"button_remaps"`
}
