package dataset

import (
	"math"
	"testing"
)

func fixtureParams() Params {
	return Params{
		Seed:       12345,
		SampleSize: 3650,
		Categories: []Distribution{
			{Label: "1992", Mean: 32000, StdDev: 200000},
			{Label: "1993", Mean: 43000, StdDev: 100000},
			{Label: "1994", Mean: 43500, StdDev: 140000},
			{Label: "1995", Mean: 48000, StdDev: 70000},
		},
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := Generate(fixtureParams())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, err := Generate(fixtureParams())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for i := range a {
		if len(a[i]) != 3650 {
			t.Fatalf("Category %d: expected 3650 samples, got %d", i, len(a[i]))
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Fatalf("Category %d sample %d differs: %v != %v", i, j, a[i][j], b[i][j])
			}
		}
	}
}

func TestGenerate_SeedMatters(t *testing.T) {
	p := fixtureParams()
	a, _ := Generate(p)
	p.Seed = 54321
	b, _ := Generate(p)
	if a[0][0] == b[0][0] && a[0][1] == b[0][1] {
		t.Error("Expected different samples for different seeds")
	}
}

func TestBuild(t *testing.T) {
	cats, err := Build(fixtureParams(), 1.96)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(cats) != 4 {
		t.Fatalf("Expected 4 categories, got %d", len(cats))
	}

	for i, c := range cats {
		d := fixtureParams().Categories[i]
		if c.Label != d.Label {
			t.Errorf("Category %d label = %s, expected %s", i, c.Label, d.Label)
		}
		// Expected margin is about 1.96 × stddev / sqrt(n); allow 10% sampling slack.
		want := 1.96 * d.StdDev / math.Sqrt(3650)
		if math.Abs(c.Margin-want)/want > 0.1 {
			t.Errorf("Category %s margin %v far from %v", c.Label, c.Margin, want)
		}
		// The sample mean lies within five standard errors of the population mean.
		if math.Abs(c.Mean-d.Mean) > 5*d.StdDev/math.Sqrt(3650) {
			t.Errorf("Category %s mean %v far from %v", c.Label, c.Mean, d.Mean)
		}
		if err := c.Validate(); err != nil {
			t.Errorf("Category %s invalid: %v", c.Label, err)
		}
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Params)
		wantErr bool
	}{
		{"valid", func(p *Params) {}, false},
		{"one sample", func(p *Params) { p.SampleSize = 1 }, true},
		{"no categories", func(p *Params) { p.Categories = nil }, true},
		{"empty label", func(p *Params) { p.Categories[0].Label = "" }, true},
		{"zero stddev", func(p *Params) { p.Categories[1].StdDev = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := fixtureParams()
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
