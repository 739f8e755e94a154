// Package storage holds the validated category statistics the chart is drawn
// from. A Storage is built once at startup and never mutated afterwards, so it
// can be shared by every request handler without locking.
package storage

import (
	"errors"
	"fmt"

	"github.com/rewired-gh/probebar/internal/models"
)

var (
	// ErrNotFound is returned by Get for unknown labels.
	ErrNotFound = errors.New("category not found")
	// ErrDuplicateLabel is returned by New when two categories share a label.
	ErrDuplicateLabel = errors.New("duplicate category label")
)

// Storage is an immutable, ordered set of categories.
type Storage struct {
	categories []models.Category
	byLabel    map[string]int
}

// New validates every category and returns a Storage preserving their order.
// Malformed statistics are rejected here so recomputation never sees them.
func New(categories []models.Category) (*Storage, error) {
	if len(categories) == 0 {
		return nil, errors.New("storage needs at least one category")
	}

	s := &Storage{
		categories: make([]models.Category, len(categories)),
		byLabel:    make(map[string]int, len(categories)),
	}
	for i, c := range categories {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("invalid category %d (%q): %w", i, c.Label, err)
		}
		if _, exists := s.byLabel[c.Label]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLabel, c.Label)
		}
		s.byLabel[c.Label] = i
		s.categories[i] = c
	}
	return s, nil
}

// All returns a copy of the categories in their configured order.
func (s *Storage) All() []models.Category {
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Get retrieves a category by label.
func (s *Storage) Get(label string) (models.Category, error) {
	i, exists := s.byLabel[label]
	if !exists {
		return models.Category{}, fmt.Errorf("%w: %s", ErrNotFound, label)
	}
	return s.categories[i], nil
}

// Len returns the number of categories.
func (s *Storage) Len() int {
	return len(s.categories)
}

// Labels returns the category labels in order.
func (s *Storage) Labels() []string {
	out := make([]string, len(s.categories))
	for i, c := range s.categories {
		out[i] = c.Label
	}
	return out
}
