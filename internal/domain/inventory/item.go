// Package inventory contains the core domain logic for pantry inventory
// tracking: the item entity, the merge key rules, and the pure search filter.
package inventory

import (
	"strconv"
	"strings"
)

// Item represents a single pantry item.
//
// The ID is assigned by the document store on creation and is empty until the
// item has been persisted. Name is the de-facto merge key: exact,
// case-sensitive match, no normalization. Image is either a durable blob URL,
// an inline data URI, or empty for "no image".
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	Image    string `json:"image,omitempty"`
}

// NewItem creates an unpersisted item with validated name and quantity.
func NewItem(name string, quantity int64, image string) (*Item, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}

	return &Item{
		Name:     name,
		Quantity: quantity,
		Image:    image,
	}, nil
}

// ParseQuantity parses numeric-looking text into a non-negative quantity.
// Non-numeric input is rejected rather than silently becoming zero.
func ParseQuantity(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrQuantityNotNumeric
	}

	qty, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrQuantityNotNumeric
	}
	if qty < 0 {
		return 0, ErrNegativeQuantity
	}

	return qty, nil
}

// Filter returns the ordered subsequence of items whose name contains term,
// compared case-insensitively. An empty term returns the input unchanged.
// Pure: no mutation, stable relative ordering.
func Filter(items []*Item, term string) []*Item {
	if term == "" {
		return items
	}

	term = strings.ToLower(term)
	matched := make([]*Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), term) {
			matched = append(matched, item)
		}
	}

	return matched
}

// Names extracts the item names in order, used to seed recipe prompts.
func Names(items []*Item) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return names
}
