package types

import "errors"

// Entity lookup errors.
var (
	ErrNotFound  = errors.New("entity not found")
	ErrInvalidID = errors.New("invalid entity ID")
)

// ErrNotEditing is returned when an edit is committed while the editor is idle.
var ErrNotEditing = errors.New("no entity is being edited")
