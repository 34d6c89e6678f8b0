package service

import (
	"math"
	"testing"

	"nail-llm/internal/domain"
)

func posteriorOf(t *testing.T, d domain.Distribution, typeID string) float64 {
	t.Helper()
	idx, ok := styleIndex[typeID]
	if !ok {
		t.Fatalf("unknown type id %s", typeID)
	}
	return d[idx]
}

func assertValidDistribution(t *testing.T, d domain.Distribution) {
	t.Helper()
	if len(d) != len(StyleCatalog) {
		t.Fatalf("expected %d entries, got %d", len(StyleCatalog), len(d))
	}
	sum := 0.0
	for i, p := range d {
		if p < 0 {
			t.Fatalf("negative probability %f at %d", p, i)
		}
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("expected sum 1, got %f", sum)
	}
}

func TestBuildPriorWorkPurposeFavorsWorkMinimal(t *testing.T) {
	form := domain.SelectionSet{"purpose": {"仕事用"}}
	prior := BuildPrior(form)

	assertValidDistribution(t, prior)

	work := posteriorOf(t, prior, "work_minimal")
	playful := posteriorOf(t, prior, "playful_event")
	if work <= playful {
		t.Fatalf("expected work_minimal (%f) > playful_event (%f)", work, playful)
	}
}

func TestBuildPriorEmptyFormIsUniform(t *testing.T) {
	prior := BuildPrior(domain.SelectionSet{})
	assertValidDistribution(t, prior)
	want := 1.0 / float64(len(StyleCatalog))
	for i, p := range prior {
		if math.Abs(p-want) > 1e-9 {
			t.Fatalf("expected uniform prior, got %f at %d", p, i)
		}
	}
}

func TestBuildPriorUnknownValuesIgnored(t *testing.T) {
	form := domain.SelectionSet{
		"purpose": {"存在しない値"},
		"vibe":    {"???"},
		"unknown": {"whatever"},
	}
	prior := BuildPrior(form)
	assertValidDistribution(t, prior)
	want := 1.0 / float64(len(StyleCatalog))
	for i, p := range prior {
		if math.Abs(p-want) > 1e-9 {
			t.Fatalf("expected unknown values to leave prior uniform, got %f at %d", p, i)
		}
	}
}

func TestBuildPriorMultiValueField(t *testing.T) {
	form := domain.SelectionSet{"purpose": {"仕事用", "普段使い"}}
	prior := BuildPrior(form)
	assertValidDistribution(t, prior)

	natural := posteriorOf(t, prior, "natural_simple")
	glam := posteriorOf(t, prior, "gorgeous_glam")
	if natural <= glam {
		t.Fatalf("expected natural_simple (%f) > gorgeous_glam (%f)", natural, glam)
	}
}

func TestAxisWeightsSumToOne(t *testing.T) {
	for _, st := range StyleCatalog {
		weights, ok := axisWeights[st.ID]
		if !ok {
			t.Fatalf("missing axis weights for %s", st.ID)
		}
		sum := 0.0
		for _, axis := range evalAxes {
			sum += weights[axis]
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Fatalf("axis weights for %s sum to %f", st.ID, sum)
		}
	}
}

func TestStyleCatalogTraitsInRange(t *testing.T) {
	for _, st := range StyleCatalog {
		for trait, v := range st.Traits {
			if v < 0 || v > 1 {
				t.Fatalf("trait %s of %s out of range: %f", trait, st.ID, v)
			}
		}
	}
}
