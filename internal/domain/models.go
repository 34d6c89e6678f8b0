package domain

import "time"

// Trait identifica un rasgo estetico latente dentro del vector de un arquetipo.
type Trait string

const (
	TraitRisk    Trait = "risk"
	TraitSparkle Trait = "sparkle"
	TraitMinimal Trait = "minimalism"
	TraitTrend   Trait = "trend"
	TraitDaily   Trait = "daily"
	TraitVivid   Trait = "vivid"
)

// TraitVector asigna a cada rasgo un valor en [0,1].
type TraitVector map[Trait]float64

// StyleType es un arquetipo de preferencia latente del catalogo fijo.
// Inmutable despues del arranque del proceso.
type StyleType struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Traits TraitVector `json:"traits"`
}

// QuestionOption es una opcion seleccionable de una pregunta del catalogo.
type QuestionOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Question es una pregunta estatica del cuestionario adaptativo.
type Question struct {
	ID      string           `json:"id"`
	Prompt  string           `json:"prompt"`
	Options []QuestionOption `json:"options"`
}

// Session guarda el estado de una elicitacion entre dos round-trips HTTP.
// Es de un solo uso: leerla del store tambien la elimina.
type Session struct {
	Token     string       `json:"token"`
	CreatedAt time.Time    `json:"created_at"`
	Image     []byte       `json:"image"`
	Form      SelectionSet `json:"form"`
	Posterior Distribution `json:"posterior"`
}

// DesignPlan es el contenido estructurado de una propuesta de disenio.
type DesignPlan struct {
	Concept   string   `json:"concept"`
	Design    string   `json:"design"`
	Colors    []string `json:"colors"`
	Technique string   `json:"technique"`
}

// Candidate es una propuesta generada y ya evaluada por el colaborador externo.
// No se muta despues de la evaluacion.
type Candidate struct {
	ID            string         `json:"id"`
	Persona       string         `json:"persona"`
	Plan          DesignPlan     `json:"plan"`
	Scores        map[string]int `json:"scores"`
	FreeAlignment int            `json:"free_alignment"`
}

// AxisScore devuelve el puntaje 0-100 de un eje de evaluacion; 0 si no existe.
func (c Candidate) AxisScore(axis string) int {
	return c.Scores[axis]
}

// FreeSpec son las restricciones estructuradas derivadas del texto libre del cliente.
type FreeSpec struct {
	Specificity int      `json:"specificity"`
	Must        []string `json:"must"`
	MustNot     []string `json:"must_not"`
	Soft        []string `json:"soft"`
	Keywords    []string `json:"keywords"`
	Summary     string   `json:"summary"`
}

// TypeProbability expone la probabilidad posterior de un arquetipo para diagnostico.
type TypeProbability struct {
	TypeID      string  `json:"type_id"`
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
}

// MakeupResult es el resultado final de una elicitacion.
type MakeupResult struct {
	PlanText     string            `json:"plan"`
	ImageDataURL string            `json:"image_data_url,omitempty"`
	ImageError   string            `json:"image_error,omitempty"`
	CandidateID  string            `json:"candidate_id"`
	Concept      string            `json:"concept"`
	TopTypes     []TypeProbability `json:"top_types"`
}

// ElicitationStatus distingue una respuesta intermedia de una final.
type ElicitationStatus string

const (
	StatusNeedMore ElicitationStatus = "need_more"
	StatusFinal    ElicitationStatus = "final"
)

// ElicitationResponse es la salida de Start/Answer: o una pregunta mas, o el resultado.
type ElicitationResponse struct {
	Status   ElicitationStatus `json:"status"`
	Token    string            `json:"token,omitempty"`
	Question *Question         `json:"question,omitempty"`
	Result   *MakeupResult     `json:"result,omitempty"`
}

// ResultRecord es la fila archivada de un resultado finalizado.
type ResultRecord struct {
	ID          string            `json:"id"`
	CandidateID string            `json:"candidate_id"`
	Concept     string            `json:"concept"`
	PlanText    string            `json:"plan"`
	TopTypes    []TypeProbability `json:"top_types"`
	Specificity int               `json:"specificity"`
	CreatedAt   time.Time         `json:"created_at"`
}
