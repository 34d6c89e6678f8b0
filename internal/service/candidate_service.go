package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"nail-llm/internal/domain"
	"nail-llm/internal/llm"
)

// CandidateService habla con el colaborador de generacion/evaluacion:
// una llamada por persona para generar planes y una llamada para puntuar
// todos los candidatos por eje. Toda salida estructurada se valida y tiene
// fallback deterministico.
type CandidateService struct {
	llmClient llm.LLMClient
	logger    *zap.Logger
}

func NewCandidateService(llmClient llm.LLMClient, logger *zap.Logger) *CandidateService {
	return &CandidateService{
		llmClient: llmClient,
		logger:    logger,
	}
}

// persona dirige la generacion de un candidato con un sesgo distinto.
type persona struct {
	ID        string
	Name      string
	Directive string
}

var personas = []persona{
	{
		ID:        "classic",
		Name:      "王道ネイリスト",
		Directive: "定番で上品、外さないデザインを提案する。奇抜さは避け、日常に馴染むことを最優先にする。",
	},
	{
		ID:        "trend",
		Name:      "トレンドネイリスト",
		Directive: "今季のトレンドを取り入れたデザインを提案する。新しさは感じさせつつ、やりすぎない。",
	},
	{
		ID:        "bold",
		Name:      "個性派ネイリスト",
		Directive: "お客様の希望の範囲内で、少し大胆で記憶に残るデザインを提案する。",
	},
}

// GenerateCandidates produce un candidato por persona. Si el plan de una
// persona no se puede parsear, se usa un plan fallback para esa persona.
// Solo devuelve error cuando el colaborador fallo para TODAS las personas.
func (s *CandidateService) GenerateCandidates(ctx context.Context, form domain.SelectionSet, free domain.FreeSpec) ([]domain.Candidate, error) {
	userText := formatUserText(form)
	freeText := formatFreeSpecText(free)

	candidates := make([]domain.Candidate, 0, len(personas))
	failures := 0
	for _, p := range personas {
		raw, err := s.llmClient.Generate(ctx, buildPlanPrompt(p, userText, freeText))
		if err != nil {
			s.logger.Warn("candidate generate failed",
				zap.Error(err), zap.String("persona", p.ID))
			failures++
			continue
		}

		plan, ok := parseDesignPlan(raw)
		if !ok {
			s.logger.Warn("candidate plan parse failed, using fallback",
				zap.String("persona", p.ID))
			plan = fallbackPlan(p)
		}

		candidates = append(candidates, domain.Candidate{
			ID:      "cand_" + p.ID,
			Persona: p.Name,
			Plan:    plan,
			Scores:  map[string]int{},
		})
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %d personas failed", domain.ErrNoCandidates, failures)
	}
	return candidates, nil
}

func buildPlanPrompt(p persona, userText, freeText string) string {
	var sb strings.Builder
	sb.WriteString("あなたはプロのネイリストです。役割: ")
	sb.WriteString(p.Name)
	sb.WriteString("\n")
	sb.WriteString(p.Directive)
	sb.WriteString("\n\n")
	sb.WriteString("以下のお客様情報をもとに、やりすぎないが洗練されたネイルデザインを【1案】提案してください。\n\n")
	sb.WriteString("条件：\n")
	sb.WriteString("・選択項目を最優先で尊重する\n")
	sb.WriteString("・奇抜にしすぎない（新しさは10〜20%まで）\n")
	sb.WriteString("・日常に馴染むデザイン\n")
	sb.WriteString("・ベージュ単色に寄りすぎない\n\n")
	sb.WriteString("JSONのみで出力してください:\n")
	sb.WriteString(`{"concept": "ネイルコンセプト", "design": "デザイン詳細", "colors": ["色1", "色2"], "technique": "使用する技法"}`)
	sb.WriteString("\n\nお客様情報：\n")
	sb.WriteString(userText)
	if freeText != "" {
		sb.WriteString("\n\nお客様の自由記述（要約済み）：\n")
		sb.WriteString(freeText)
	}
	return sb.String()
}

func parseDesignPlan(raw string) (domain.DesignPlan, bool) {
	jsonObj := decodeLLMJSON(raw)
	if jsonObj == "" {
		return domain.DesignPlan{}, false
	}
	var plan domain.DesignPlan
	if err := json.Unmarshal([]byte(jsonObj), &plan); err != nil {
		return domain.DesignPlan{}, false
	}
	if strings.TrimSpace(plan.Concept) == "" {
		return domain.DesignPlan{}, false
	}
	return plan, true
}

// fallbackPlan es el plan deterministico cuando la persona devolvio algo
// imposible de parsear.
func fallbackPlan(p persona) domain.DesignPlan {
	return domain.DesignPlan{
		Concept:   "シンプルエレガンス（" + p.Name + "）",
		Design:    "肌なじみの良いワンカラーに、ポイントで細いラインアートを添えた控えめなデザイン。",
		Colors:    []string{"ピンクベージュ", "シアーホワイト"},
		Technique: "ワンカラー＋ラインアート",
	}
}

// EvaluateCandidates pide al evaluador externo los puntajes por eje
// (0-100) y la alineacion con el texto libre. Evaluacion malformada o
// caida => puntajes neutros de 50, nunca error.
func (s *CandidateService) EvaluateCandidates(ctx context.Context, candidates []domain.Candidate, form domain.SelectionSet, free domain.FreeSpec) []domain.Candidate {
	raw, err := s.llmClient.Generate(ctx, buildEvalPrompt(candidates, form, free))
	if err != nil {
		s.logger.Warn("candidate evaluation failed, using neutral scores", zap.Error(err))
		return neutralScores(candidates)
	}

	parsed, ok := parseEvaluation(raw)
	if !ok {
		s.logger.Warn("candidate evaluation parse failed, using neutral scores")
		return neutralScores(candidates)
	}

	out := make([]domain.Candidate, len(candidates))
	for i, c := range candidates {
		ev, found := parsed[c.ID]
		if !found {
			out[i] = withNeutralScores(c)
			continue
		}
		scores := make(map[string]int, len(evalAxes))
		for _, axis := range evalAxes {
			v, has := ev.Scores[axis]
			if !has {
				v = 50
			}
			scores[axis] = clampScore(v)
		}
		c.Scores = scores
		c.FreeAlignment = clampScore(ev.FreeAlignment)
		out[i] = c
	}
	return out
}

func buildEvalPrompt(candidates []domain.Candidate, form domain.SelectionSet, free domain.FreeSpec) string {
	var sb strings.Builder
	sb.WriteString("あなたはネイルデザインの審査員です。以下の候補デザインを、お客様情報に照らして各軸 0-100 で採点してください。\n\n")
	sb.WriteString("採点軸:\n")
	sb.WriteString("- adherence: 選択項目をどれだけ尊重しているか\n")
	sb.WriteString("- daily_fit: 日常への馴染みやすさ\n")
	sb.WriteString("- novelty: 新しさ・意外性\n")
	sb.WriteString("- refinement: 洗練度・上品さ\n")
	sb.WriteString("- free_alignment: 自由記述の希望との一致度\n\n")
	sb.WriteString("お客様情報：\n")
	sb.WriteString(formatUserText(form))
	if ft := formatFreeSpecText(free); ft != "" {
		sb.WriteString("\n\n自由記述の構造化仕様：\n")
		sb.WriteString(ft)
	}
	sb.WriteString("\n\n候補：\n")
	for _, c := range candidates {
		sb.WriteString(fmt.Sprintf("- id=%s concept=%s design=%s colors=%s\n",
			c.ID, c.Plan.Concept, c.Plan.Design, strings.Join(c.Plan.Colors, "/")))
	}
	sb.WriteString("\nJSONのみで出力してください:\n")
	sb.WriteString(`{"evaluations": [{"id": "cand_classic", "scores": {"adherence": 0, "daily_fit": 0, "novelty": 0, "refinement": 0}, "free_alignment": 0}]}`)
	return sb.String()
}

type evaluationItem struct {
	ID            string         `json:"id"`
	Scores        map[string]int `json:"scores"`
	FreeAlignment int            `json:"free_alignment"`
}

func parseEvaluation(raw string) (map[string]evaluationItem, bool) {
	jsonObj := decodeLLMJSON(raw)
	if jsonObj == "" {
		return nil, false
	}
	var parsed struct {
		Evaluations []evaluationItem `json:"evaluations"`
	}
	if err := json.Unmarshal([]byte(jsonObj), &parsed); err != nil {
		return nil, false
	}
	if len(parsed.Evaluations) == 0 {
		return nil, false
	}
	out := make(map[string]evaluationItem, len(parsed.Evaluations))
	for _, ev := range parsed.Evaluations {
		out[ev.ID] = ev
	}
	return out, true
}

func neutralScores(candidates []domain.Candidate) []domain.Candidate {
	out := make([]domain.Candidate, len(candidates))
	for i, c := range candidates {
		out[i] = withNeutralScores(c)
	}
	return out
}

func withNeutralScores(c domain.Candidate) domain.Candidate {
	scores := make(map[string]int, len(evalAxes))
	for _, axis := range evalAxes {
		scores[axis] = 50
	}
	c.Scores = scores
	c.FreeAlignment = 50
	return c
}

// formatUserText serializa las selecciones como "campo: v1, v2" por linea,
// en el formato que esperan los prompts.
func formatUserText(form domain.SelectionSet) string {
	var lines []string
	// Campos conocidos primero, en orden estable.
	known := []string{"purpose", "vibe", "age", "q_sparkle", "q_novelty", "q_color", "q_scene", "free_text"}
	seen := make(map[string]bool, len(known))
	for _, field := range known {
		if vs := form.Values(field); len(vs) > 0 {
			lines = append(lines, field+": "+strings.Join(vs, ", "))
			seen[field] = true
		}
	}
	for field, vs := range form {
		if seen[field] || len(vs) == 0 {
			continue
		}
		lines = append(lines, field+": "+strings.Join(vs, ", "))
	}
	return strings.Join(lines, "\n")
}

func formatFreeSpecText(free domain.FreeSpec) string {
	if free.Specificity <= 0 && free.Summary == "" && len(free.Must) == 0 {
		return ""
	}
	var sb strings.Builder
	if free.Summary != "" {
		sb.WriteString("要約: " + free.Summary + "\n")
	}
	if len(free.Must) > 0 {
		sb.WriteString("必須: " + strings.Join(free.Must, "、") + "\n")
	}
	if len(free.MustNot) > 0 {
		sb.WriteString("禁止: " + strings.Join(free.MustNot, "、") + "\n")
	}
	if len(free.Soft) > 0 {
		sb.WriteString("できれば: " + strings.Join(free.Soft, "、") + "\n")
	}
	return strings.TrimSpace(sb.String())
}
