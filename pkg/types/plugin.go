package types

import "time"

// PluginState is the keyed, mutable state of one plugin: an enabled flag
// plus an opaque configuration blob. One row per plugin id, upsert
// semantics.
type PluginState struct {
	PluginID  string
	Enabled   bool
	Config    string // Opaque blob, typically JSON. The store does not parse it.
	UpdatedAt time.Time
}
