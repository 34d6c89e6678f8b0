package service

import (
	"testing"

	"nail-llm/internal/domain"
)

func TestUpdatePosteriorStaysNormalized(t *testing.T) {
	posterior := domain.NewUniformDistribution(len(StyleCatalog))
	for _, q := range QuestionCatalog {
		posterior = UpdatePosterior(posterior, q.ID, q.Options[0].Value)
		assertValidDistribution(t, posterior)
	}
}

func TestUpdatePosteriorMonotonicDiscrimination(t *testing.T) {
	// Un tipo cuya verosimilitud siempre gana debe aumentar estrictamente
	// su participacion respecto del prior.
	prior := domain.NewUniformDistribution(len(StyleCatalog))
	posterior := UpdatePosterior(prior, "q_sparkle", "full")

	glamIdx := styleIndex["gorgeous_glam"]
	if posterior[glamIdx] <= prior[glamIdx] {
		t.Fatalf("expected gorgeous_glam share to increase: prior=%f posterior=%f",
			prior[glamIdx], posterior[glamIdx])
	}

	workIdx := styleIndex["work_minimal"]
	if posterior[workIdx] >= prior[workIdx] {
		t.Fatalf("expected work_minimal share to decrease: prior=%f posterior=%f",
			prior[workIdx], posterior[workIdx])
	}
}

func TestUpdatePosteriorNeutralAnswerKeepsDistribution(t *testing.T) {
	prior := BuildPrior(domain.SelectionSet{"purpose": {"仕事用"}})
	posterior := UpdatePosterior(prior, "q_sparkle", "respuesta-desconocida")

	// Verosimilitud neutral igual para todos => posterior identico al prior.
	for i := range prior {
		if diff := posterior[i] - prior[i]; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("expected unchanged posterior at %d: prior=%f posterior=%f", i, prior[i], posterior[i])
		}
	}
}

func TestTopTypesOrderedDescending(t *testing.T) {
	posterior := BuildPrior(domain.SelectionSet{"purpose": {"仕事用"}})
	top := TopTypes(posterior, 3)

	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}
	if top[0].TypeID != "work_minimal" {
		t.Fatalf("expected work_minimal first, got %s", top[0].TypeID)
	}
	for i := 1; i < len(top); i++ {
		if top[i].Probability > top[i-1].Probability {
			t.Fatalf("expected descending order, got %v", top)
		}
	}
}

func TestTopTypesLimitLargerThanCatalog(t *testing.T) {
	posterior := domain.NewUniformDistribution(len(StyleCatalog))
	top := TopTypes(posterior, 100)
	if len(top) != len(StyleCatalog) {
		t.Fatalf("expected %d entries, got %d", len(StyleCatalog), len(top))
	}
}
