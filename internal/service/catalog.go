package service

import "nail-llm/internal/domain"

// Catalogo fijo de arquetipos, preguntas y tablas de reglas.
// Todo es data declarativa separada de los algoritmos que la consumen,
// para poder testear cada entrada de forma aislada.

// StyleCatalog es el catalogo fijo de arquetipos de preferencia.
// El orden importa: la Distribution usa el mismo indice.
var StyleCatalog = []domain.StyleType{
	{
		ID:   "work_minimal",
		Name: "上品ミニマル",
		Traits: domain.TraitVector{
			domain.TraitRisk: 0.10, domain.TraitSparkle: 0.15, domain.TraitMinimal: 0.90,
			domain.TraitTrend: 0.30, domain.TraitDaily: 0.95, domain.TraitVivid: 0.10,
		},
	},
	{
		ID:   "natural_simple",
		Name: "ナチュラルシンプル",
		Traits: domain.TraitVector{
			domain.TraitRisk: 0.10, domain.TraitSparkle: 0.10, domain.TraitMinimal: 0.85,
			domain.TraitTrend: 0.20, domain.TraitDaily: 0.90, domain.TraitVivid: 0.15,
		},
	},
	{
		ID:   "elegant_classic",
		Name: "エレガントクラシック",
		Traits: domain.TraitVector{
			domain.TraitRisk: 0.20, domain.TraitSparkle: 0.40, domain.TraitMinimal: 0.60,
			domain.TraitTrend: 0.30, domain.TraitDaily: 0.70, domain.TraitVivid: 0.25,
		},
	},
	{
		ID:   "cute_soft",
		Name: "キュートソフト",
		Traits: domain.TraitVector{
			domain.TraitRisk: 0.30, domain.TraitSparkle: 0.50, domain.TraitMinimal: 0.35,
			domain.TraitTrend: 0.50, domain.TraitDaily: 0.60, domain.TraitVivid: 0.50,
		},
	},
	{
		ID:   "cool_chic",
		Name: "クールシック",
		Traits: domain.TraitVector{
			domain.TraitRisk: 0.45, domain.TraitSparkle: 0.20, domain.TraitMinimal: 0.70,
			domain.TraitTrend: 0.60, domain.TraitDaily: 0.60, domain.TraitVivid: 0.30,
		},
	},
	{
		ID:   "trendy_modern",
		Name: "トレンドモダン",
		Traits: domain.TraitVector{
			domain.TraitRisk: 0.60, domain.TraitSparkle: 0.50, domain.TraitMinimal: 0.40,
			domain.TraitTrend: 0.95, domain.TraitDaily: 0.50, domain.TraitVivid: 0.60,
		},
	},
	{
		ID:   "playful_event",
		Name: "遊びゴコロ全開",
		Traits: domain.TraitVector{
			domain.TraitRisk: 0.80, domain.TraitSparkle: 0.85, domain.TraitMinimal: 0.10,
			domain.TraitTrend: 0.60, domain.TraitDaily: 0.20, domain.TraitVivid: 0.90,
		},
	},
	{
		ID:   "gorgeous_glam",
		Name: "ゴージャスグラム",
		Traits: domain.TraitVector{
			domain.TraitRisk: 0.70, domain.TraitSparkle: 0.95, domain.TraitMinimal: 0.05,
			domain.TraitTrend: 0.50, domain.TraitDaily: 0.15, domain.TraitVivid: 0.85,
		},
	},
}

// styleIndex mapea type id -> indice dentro de StyleCatalog.
var styleIndex = func() map[string]int {
	m := make(map[string]int, len(StyleCatalog))
	for i, st := range StyleCatalog {
		m[st.ID] = i
	}
	return m
}()

// typeBoost multiplica el peso de un arquetipo cuando matchea una seleccion.
// Factores >1 favorecen, <1 desfavorecen.
type typeBoost struct {
	TypeID string
	Factor float64
}

// boostRules mapea campo -> valor seleccionado -> boosts.
// Valores desconocidos simplemente no aplican boost, nunca son error.
var boostRules = map[string]map[string][]typeBoost{
	"purpose": {
		"仕事用": {
			{TypeID: "work_minimal", Factor: 2.5},
			{TypeID: "natural_simple", Factor: 1.8},
			{TypeID: "elegant_classic", Factor: 1.3},
			{TypeID: "playful_event", Factor: 0.4},
			{TypeID: "gorgeous_glam", Factor: 0.5},
		},
		"普段使い": {
			{TypeID: "natural_simple", Factor: 1.8},
			{TypeID: "work_minimal", Factor: 1.5},
			{TypeID: "cute_soft", Factor: 1.2},
			{TypeID: "gorgeous_glam", Factor: 0.6},
		},
		"デート": {
			{TypeID: "cute_soft", Factor: 1.8},
			{TypeID: "elegant_classic", Factor: 1.5},
			{TypeID: "gorgeous_glam", Factor: 1.2},
		},
		"イベント・パーティー": {
			{TypeID: "playful_event", Factor: 2.5},
			{TypeID: "gorgeous_glam", Factor: 2.0},
			{TypeID: "work_minimal", Factor: 0.4},
			{TypeID: "natural_simple", Factor: 0.6},
		},
	},
	"vibe": {
		"シンプル": {
			{TypeID: "work_minimal", Factor: 1.8},
			{TypeID: "natural_simple", Factor: 1.8},
			{TypeID: "gorgeous_glam", Factor: 0.5},
		},
		"可愛い": {
			{TypeID: "cute_soft", Factor: 2.0},
			{TypeID: "playful_event", Factor: 1.4},
		},
		"キレイ・上品": {
			{TypeID: "elegant_classic", Factor: 2.0},
			{TypeID: "work_minimal", Factor: 1.4},
		},
		"クール": {
			{TypeID: "cool_chic", Factor: 2.2},
			{TypeID: "trendy_modern", Factor: 1.4},
			{TypeID: "cute_soft", Factor: 0.6},
		},
		"派手": {
			{TypeID: "gorgeous_glam", Factor: 2.2},
			{TypeID: "playful_event", Factor: 1.8},
			{TypeID: "natural_simple", Factor: 0.4},
			{TypeID: "work_minimal", Factor: 0.5},
		},
	},
	"age": {
		"10代": {
			{TypeID: "playful_event", Factor: 1.4},
			{TypeID: "cute_soft", Factor: 1.4},
		},
		"20代": {
			{TypeID: "trendy_modern", Factor: 1.5},
			{TypeID: "cute_soft", Factor: 1.2},
		},
		"30代": {
			{TypeID: "elegant_classic", Factor: 1.3},
			{TypeID: "work_minimal", Factor: 1.2},
		},
		"40代": {
			{TypeID: "elegant_classic", Factor: 1.4},
			{TypeID: "natural_simple", Factor: 1.2},
		},
		"50代以上": {
			{TypeID: "elegant_classic", Factor: 1.5},
			{TypeID: "natural_simple", Factor: 1.4},
			{TypeID: "playful_event", Factor: 0.7},
		},
	},
}

// QuestionCatalog son las preguntas adaptativas disponibles, en orden fijo.
// El orden resuelve empates de ganancia de informacion.
var QuestionCatalog = []domain.Question{
	{
		ID:     "q_sparkle",
		Prompt: "ラメや輝きはどのくらい入れたいですか？",
		Options: []domain.QuestionOption{
			{Value: "none", Label: "なし・マットが好き"},
			{Value: "subtle", Label: "少しだけ"},
			{Value: "full", Label: "しっかり輝かせたい"},
		},
	},
	{
		ID:     "q_novelty",
		Prompt: "新しいデザインへの挑戦はどのくらいしたいですか？",
		Options: []domain.QuestionOption{
			{Value: "classic", Label: "定番がいい"},
			{Value: "try", Label: "少し冒険したい"},
			{Value: "bold", Label: "大胆に挑戦したい"},
		},
	},
	{
		ID:     "q_color",
		Prompt: "色味の好みに近いのはどれですか？",
		Options: []domain.QuestionOption{
			{Value: "nude", Label: "ヌーディ・ベージュ系"},
			{Value: "smoky", Label: "くすみ・スモーキー系"},
			{Value: "vivid", Label: "ビビッド・カラフル系"},
		},
	},
	{
		ID:     "q_scene",
		Prompt: "ネイルを一番見せたいシーンはどこですか？",
		Options: []domain.QuestionOption{
			{Value: "work", Label: "職場・学校"},
			{Value: "weekend", Label: "休日のお出かけ"},
			{Value: "event", Label: "特別なイベント"},
		},
	},
}

// questionIndex mapea question id -> pregunta del catalogo.
var questionIndex = func() map[string]domain.Question {
	m := make(map[string]domain.Question, len(QuestionCatalog))
	for _, q := range QuestionCatalog {
		m[q.ID] = q
	}
	return m
}()

// LookupQuestion busca una pregunta del catalogo por id.
func LookupQuestion(id string) (domain.Question, bool) {
	q, ok := questionIndex[id]
	return q, ok
}

// Ejes de evaluacion de candidatos (puntajes 0-100 del evaluador externo).
const (
	AxisAdherence  = "adherence"
	AxisDailyFit   = "daily_fit"
	AxisNovelty    = "novelty"
	AxisRefinement = "refinement"
)

// evalAxes en orden estable para prompts y pesos.
var evalAxes = []string{AxisAdherence, AxisDailyFit, AxisNovelty, AxisRefinement}

// axisWeights es la distribucion de pesos por arquetipo sobre los ejes.
// Cada fila suma 1: refleja, por ejemplo, que un tipo minimal/diario pesa
// mas la adherencia y el uso diario que la novedad.
var axisWeights = map[string]map[string]float64{
	"work_minimal":    {AxisAdherence: 0.35, AxisDailyFit: 0.40, AxisNovelty: 0.05, AxisRefinement: 0.20},
	"natural_simple":  {AxisAdherence: 0.30, AxisDailyFit: 0.45, AxisNovelty: 0.05, AxisRefinement: 0.20},
	"elegant_classic": {AxisAdherence: 0.30, AxisDailyFit: 0.25, AxisNovelty: 0.10, AxisRefinement: 0.35},
	"cute_soft":       {AxisAdherence: 0.35, AxisDailyFit: 0.25, AxisNovelty: 0.15, AxisRefinement: 0.25},
	"cool_chic":       {AxisAdherence: 0.30, AxisDailyFit: 0.25, AxisNovelty: 0.15, AxisRefinement: 0.30},
	"trendy_modern":   {AxisAdherence: 0.30, AxisDailyFit: 0.15, AxisNovelty: 0.35, AxisRefinement: 0.20},
	"playful_event":   {AxisAdherence: 0.30, AxisDailyFit: 0.10, AxisNovelty: 0.35, AxisRefinement: 0.25},
	"gorgeous_glam":   {AxisAdherence: 0.30, AxisDailyFit: 0.10, AxisNovelty: 0.30, AxisRefinement: 0.30},
}
