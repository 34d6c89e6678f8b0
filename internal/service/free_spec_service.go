package service

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"nail-llm/internal/domain"
	"nail-llm/internal/llm"
)

// FreeSpecService convierte el texto libre del cliente en un FreeSpec
// estructurado delegando en el LLM. El parseo es defensivo: salida
// malformada dispara un reintento con instruccion mas estricta y, si
// vuelve a fallar, un objeto neutro deterministico. Nunca es fatal.
type FreeSpecService struct {
	llmClient llm.LLMClient
	logger    *zap.Logger
}

func NewFreeSpecService(llmClient llm.LLMClient, logger *zap.Logger) *FreeSpecService {
	return &FreeSpecService{
		llmClient: llmClient,
		logger:    logger,
	}
}

const freeSpecPrompt = `あなたはネイルサロンのカウンセラーです。お客様の自由記述を読み、構造化された希望仕様を抽出してください。

specificity は「どれだけ具体的な指定か」を 0-100 で採点します:
- 0-19: 記述なし・雰囲気だけ（「おまかせ」「かわいく」）
- 20-44: 方向性はある（「落ち着いた色がいい」）
- 45-69: 色や要素の指定がある（「ピンク系でラメ少し」）
- 70-84: 明確な指定が複数ある（「ピンクベージュのグラデ、ストーンは薬指だけ」）
- 85-100: 完成形をほぼ指定している

JSONのみを返してください:
{"specificity": 0, "must": [], "must_not": [], "soft": [], "keywords": [], "summary": ""}

お客様の自由記述:
`

const freeSpecStrictSuffix = `

重要: 前回の出力は解析できませんでした。コードフェンスや説明文を一切付けず、上記フォーマットの JSON オブジェクト 1 つだけを出力してください。`

// Extract deriva el FreeSpec del texto libre. Texto vacio => spec neutro
// sin llamar al LLM.
func (s *FreeSpecService) Extract(ctx context.Context, freeText string) domain.FreeSpec {
	freeText = strings.TrimSpace(freeText)
	if freeText == "" {
		return neutralFreeSpec()
	}

	raw, err := s.llmClient.Generate(ctx, freeSpecPrompt+freeText)
	if err != nil {
		s.logger.Warn("free spec generate failed", zap.Error(err))
		return neutralFreeSpec()
	}

	if spec, ok := parseFreeSpec(raw); ok {
		return spec
	}

	// Reintento unico con instruccion mas estricta.
	s.logger.Warn("free spec parse failed, retrying with strict instruction")
	raw, err = s.llmClient.Generate(ctx, freeSpecPrompt+freeText+freeSpecStrictSuffix)
	if err != nil {
		s.logger.Warn("free spec retry failed", zap.Error(err))
		return neutralFreeSpec()
	}
	if spec, ok := parseFreeSpec(raw); ok {
		return spec
	}

	s.logger.Warn("free spec fallback to neutral spec")
	return neutralFreeSpec()
}

func parseFreeSpec(raw string) (domain.FreeSpec, bool) {
	jsonObj := decodeLLMJSON(raw)
	if jsonObj == "" {
		return domain.FreeSpec{}, false
	}

	var spec domain.FreeSpec
	if err := json.Unmarshal([]byte(jsonObj), &spec); err != nil {
		return domain.FreeSpec{}, false
	}

	spec.Specificity = clampScore(spec.Specificity)
	return spec, true
}

func neutralFreeSpec() domain.FreeSpec {
	return domain.FreeSpec{
		Specificity: 0,
		Must:        []string{},
		MustNot:     []string{},
		Soft:        []string{},
		Keywords:    []string{},
		Summary:     "",
	}
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
