package inventory

// State is the in-memory projection of the persisted inventory. It is owned
// by the caller and handed to the merge engine's operations; it is not a
// cache with eviction. Its sole consistency goal is to reflect the last
// operation this client performed or observed.
//
// State is not safe for parallel use. The core runs on one logical thread of
// control; concurrent in-flight operations interleave only at awaited I/O.
type State struct {
	items []*Item
}

// NewState builds a projection from a wholesale collection scan.
func NewState(items []*Item) *State {
	return &State{items: items}
}

// Items returns the projected item list in insertion order.
func (s *State) Items() []*Item {
	return s.items
}

// FindByName returns the first item whose name matches exactly, or nil.
func (s *State) FindByName(name string) *Item {
	for _, item := range s.items {
		if item.Name == name {
			return item
		}
	}
	return nil
}

// FindByID returns the item with the given store identifier, or nil.
func (s *State) FindByID(id string) *Item {
	for _, item := range s.items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// Append adds a newly persisted item to the projection.
func (s *State) Append(item *Item) {
	s.items = append(s.items, item)
}

// Remove drops the item with the given identifier, preserving order.
func (s *State) Remove(id string) {
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Len returns the number of projected items.
func (s *State) Len() int {
	return len(s.items)
}
