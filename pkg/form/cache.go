package form

import "maps"

// State is the cached outcome of a field.
type State int

const (
	// StateUnknown means the field has not been evaluated since creation or reset.
	StateUnknown State = iota
	StateValid
	StateInvalid
)

func (s State) String() string {
	switch s {
	case StateValid:
		return "valid"
	case StateInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Entry is a cache record. Value is only meaningful for StateValid.
type Entry struct {
	State State
	Value string
}

// Cache maps field names to their last evaluation outcome. Entries are
// created lazily; a missing entry reads as StateUnknown.
type Cache struct {
	entries map[string]Entry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]Entry)}
}

func (c *Cache) Get(name string) Entry {
	return c.entries[name]
}

// Snapshot returns a copy of every entry.
func (c *Cache) Snapshot() map[string]Entry {
	return maps.Clone(c.entries)
}

func (c *Cache) setValid(name, value string) {
	c.entries[name] = Entry{State: StateValid, Value: value}
}

func (c *Cache) setInvalid(name string) {
	c.entries[name] = Entry{State: StateInvalid}
}

// forget drops name's entry so it reads as StateUnknown.
func (c *Cache) forget(name string) {
	delete(c.entries, name)
}

func (c *Cache) reset() {
	clear(c.entries)
}
