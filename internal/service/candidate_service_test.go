package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"nail-llm/internal/domain"
	"nail-llm/internal/llm"
)

func planJSON(concept string) string {
	return `{"concept": "` + concept + `", "design": "細いラインアート", "colors": ["ピンクベージュ"], "technique": "ワンカラー"}`
}

func TestGenerateCandidatesOnePerPersona(t *testing.T) {
	llmClient := &llm.MockClient{
		Responses: []string{planJSON("王道"), planJSON("トレンド"), planJSON("個性")},
	}
	svc := NewCandidateService(llmClient, zap.NewNop())

	candidates, err := svc.GenerateCandidates(context.Background(), domain.SelectionSet{"purpose": {"仕事用"}}, domain.FreeSpec{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(candidates) != len(personas) {
		t.Fatalf("expected %d candidates, got %d", len(personas), len(candidates))
	}
	if candidates[0].ID != "cand_classic" || candidates[0].Plan.Concept != "王道" {
		t.Fatalf("unexpected first candidate: %+v", candidates[0])
	}
	if llmClient.Calls != len(personas) {
		t.Fatalf("expected %d llm calls, got %d", len(personas), llmClient.Calls)
	}
}

func TestGenerateCandidatesMalformedPlanUsesFallback(t *testing.T) {
	llmClient := &llm.MockClient{
		Responses: []string{planJSON("王道"), "not json at all", planJSON("個性")},
	}
	svc := NewCandidateService(llmClient, zap.NewNop())

	candidates, err := svc.GenerateCandidates(context.Background(), domain.SelectionSet{}, domain.FreeSpec{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(candidates))
	}
	if !strings.Contains(candidates[1].Plan.Concept, "シンプルエレガンス") {
		t.Fatalf("expected fallback plan for malformed persona, got %q", candidates[1].Plan.Concept)
	}
}

func TestGenerateCandidatesAllFailedReturnsError(t *testing.T) {
	llmClient := &llm.MockClient{Err: errors.New("llm down")}
	svc := NewCandidateService(llmClient, zap.NewNop())

	_, err := svc.GenerateCandidates(context.Background(), domain.SelectionSet{}, domain.FreeSpec{})
	if !errors.Is(err, domain.ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
}

func TestGenerateCandidatesPromptCarriesUserText(t *testing.T) {
	llmClient := &llm.MockClient{Response: planJSON("案")}
	svc := NewCandidateService(llmClient, zap.NewNop())

	form := domain.SelectionSet{"purpose": {"仕事用"}, "vibe": {"シンプル"}}
	if _, err := svc.GenerateCandidates(context.Background(), form, domain.FreeSpec{}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(llmClient.Prompts[0], "purpose: 仕事用") {
		t.Fatalf("expected prompt to carry selections, got:\n%s", llmClient.Prompts[0])
	}
}

func evalJSON() string {
	return `{"evaluations": [
		{"id": "cand_classic", "scores": {"adherence": 90, "daily_fit": 85, "novelty": 20, "refinement": 70}, "free_alignment": 80},
		{"id": "cand_trend", "scores": {"adherence": 70, "daily_fit": 60, "novelty": 75, "refinement": 65}, "free_alignment": 60},
		{"id": "cand_bold", "scores": {"adherence": 50, "daily_fit": 30, "novelty": 95, "refinement": 55}, "free_alignment": 140}
	]}`
}

func scoredCandidates() []domain.Candidate {
	return []domain.Candidate{
		{ID: "cand_classic", Plan: domain.DesignPlan{Concept: "a"}},
		{ID: "cand_trend", Plan: domain.DesignPlan{Concept: "b"}},
		{ID: "cand_bold", Plan: domain.DesignPlan{Concept: "c"}},
	}
}

func TestEvaluateCandidatesParsesScores(t *testing.T) {
	llmClient := &llm.MockClient{Response: evalJSON()}
	svc := NewCandidateService(llmClient, zap.NewNop())

	out := svc.EvaluateCandidates(context.Background(), scoredCandidates(), domain.SelectionSet{}, domain.FreeSpec{})
	if out[0].AxisScore(AxisAdherence) != 90 {
		t.Fatalf("expected adherence 90, got %d", out[0].AxisScore(AxisAdherence))
	}
	if out[1].FreeAlignment != 60 {
		t.Fatalf("expected free_alignment 60, got %d", out[1].FreeAlignment)
	}
	// Fuera de rango se acota.
	if out[2].FreeAlignment != 100 {
		t.Fatalf("expected free_alignment clamped to 100, got %d", out[2].FreeAlignment)
	}
}

func TestEvaluateCandidatesMalformedUsesNeutralScores(t *testing.T) {
	llmClient := &llm.MockClient{Response: "完全に壊れた出力"}
	svc := NewCandidateService(llmClient, zap.NewNop())

	out := svc.EvaluateCandidates(context.Background(), scoredCandidates(), domain.SelectionSet{}, domain.FreeSpec{})
	for _, c := range out {
		for _, axis := range evalAxes {
			if c.AxisScore(axis) != 50 {
				t.Fatalf("expected neutral score 50 for %s/%s, got %d", c.ID, axis, c.AxisScore(axis))
			}
		}
		if c.FreeAlignment != 50 {
			t.Fatalf("expected neutral alignment 50, got %d", c.FreeAlignment)
		}
	}
}

func TestEvaluateCandidatesLLMErrorUsesNeutralScores(t *testing.T) {
	llmClient := &llm.MockClient{Err: errors.New("llm down")}
	svc := NewCandidateService(llmClient, zap.NewNop())

	out := svc.EvaluateCandidates(context.Background(), scoredCandidates(), domain.SelectionSet{}, domain.FreeSpec{})
	if out[0].AxisScore(AxisAdherence) != 50 {
		t.Fatalf("expected neutral score on llm error, got %d", out[0].AxisScore(AxisAdherence))
	}
}

func TestEvaluateCandidatesMissingEntryGetsNeutral(t *testing.T) {
	llmClient := &llm.MockClient{
		Response: `{"evaluations": [{"id": "cand_classic", "scores": {"adherence": 80, "daily_fit": 80, "novelty": 10, "refinement": 60}, "free_alignment": 70}]}`,
	}
	svc := NewCandidateService(llmClient, zap.NewNop())

	out := svc.EvaluateCandidates(context.Background(), scoredCandidates(), domain.SelectionSet{}, domain.FreeSpec{})
	if out[0].AxisScore(AxisAdherence) != 80 {
		t.Fatalf("expected parsed score for cand_classic, got %d", out[0].AxisScore(AxisAdherence))
	}
	if out[1].AxisScore(AxisAdherence) != 50 {
		t.Fatalf("expected neutral score for missing entry, got %d", out[1].AxisScore(AxisAdherence))
	}
}
