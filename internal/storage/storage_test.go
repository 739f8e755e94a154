package storage

import (
	"errors"
	"testing"

	"github.com/rewired-gh/probebar/internal/models"
)

func fixtureCategories() []models.Category {
	return []models.Category{
		{Label: "1992", Mean: 32000, Margin: 6489.2},
		{Label: "1993", Mean: 43000, Margin: 3244.6},
	}
}

func TestStorage_NewAndGet(t *testing.T) {
	s, err := New(fixtureCategories())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if s.Len() != 2 {
		t.Errorf("Expected 2 categories, got %d", s.Len())
	}

	c, err := s.Get("1993")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if c.Mean != 43000 {
		t.Errorf("Expected mean 43000, got %f", c.Mean)
	}

	if _, err := s.Get("2001"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestStorage_AllIsCopy(t *testing.T) {
	s, err := New(fixtureCategories())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	all := s.All()
	all[0].Mean = -1

	c, _ := s.Get("1992")
	if c.Mean != 32000 {
		t.Errorf("Storage mutated through All(): mean = %f", c.Mean)
	}
	if got := s.Labels(); got[0] != "1992" || got[1] != "1993" {
		t.Errorf("Unexpected label order: %v", got)
	}
}

func TestStorage_InputNotAliased(t *testing.T) {
	cats := fixtureCategories()
	s, err := New(cats)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	cats[1].Margin = 0

	c, _ := s.Get("1993")
	if c.Margin != 3244.6 {
		t.Errorf("Storage aliased caller slice: margin = %f", c.Margin)
	}
}

func TestStorage_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name       string
		categories []models.Category
		target     error
	}{
		{
			name:       "empty",
			categories: nil,
		},
		{
			name: "zero margin",
			categories: []models.Category{
				{Label: "1992", Mean: 32000, Margin: 0},
			},
		},
		{
			name: "duplicate label",
			categories: []models.Category{
				{Label: "1992", Mean: 32000, Margin: 1},
				{Label: "1992", Mean: 33000, Margin: 1},
			},
			target: ErrDuplicateLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.categories)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("Expected %v, got %v", tt.target, err)
			}
		})
	}
}
