package lightbar

import "errors"

// Domain errors, checked with errors.Is by the API layer.
var (
	// ErrNotFound is returned when an animation id does not exist.
	ErrNotFound = errors.New("lightbar: animation not found")

	// ErrNotPermitted is returned when editing or deleting a built-in
	// animation. Distinct from ErrNotFound so callers can tell the two apart.
	ErrNotPermitted = errors.New("lightbar: built-in animations are read-only")

	// ErrInvalidConfig is returned when a configuration fails validation.
	ErrInvalidConfig = errors.New("lightbar: invalid config")

	// ErrInvalidAnimation is returned when an animation fails validation.
	ErrInvalidAnimation = errors.New("lightbar: invalid animation")
)
