package schema

import "time"

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Model represents a model available through the API
type Model struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Created     time.Time      `json:"created,omitzero"`
	OwnedBy     string         `json:"owned_by,omitempty"`
	Meta        map[string]any `json:"meta,omitzero"`
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (m Model) String() string {
	return Stringify(m)
}
