package service

import (
	"math"

	"nail-llm/internal/domain"
)

// Modelo de verosimilitud: que tan probable es cada respuesta observada
// bajo cada arquetipo. Siempre en (0,1): nunca 0 (no eliminamos un tipo
// con una sola respuesta) ni 1 (siempre queda incertidumbre residual).

// traitWeight es un termino de una combinacion lineal de rasgos.
// Invert usa (1 - rasgo) para expresar "cuanto NO tiene de esto".
type traitWeight struct {
	Trait  domain.Trait
	Weight float64
	Invert bool
}

// sliderAnswer apunta a un valor objetivo de un unico rasgo.
type sliderAnswer struct {
	Trait  domain.Trait
	Target float64
}

// Tablas fijas por pregunta. Respuestas fuera de tabla caen en
// neutralLikelihood.
var sliderAnswers = map[string]map[string]sliderAnswer{
	"q_sparkle": {
		"none":   {Trait: domain.TraitSparkle, Target: 0.05},
		"subtle": {Trait: domain.TraitSparkle, Target: 0.45},
		"full":   {Trait: domain.TraitSparkle, Target: 0.90},
	},
	"q_novelty": {
		"classic": {Trait: domain.TraitRisk, Target: 0.10},
		"try":     {Trait: domain.TraitRisk, Target: 0.50},
		"bold":    {Trait: domain.TraitRisk, Target: 0.90},
	},
}

var categoricalAnswers = map[string]map[string][]traitWeight{
	"q_color": {
		"nude": {
			{Trait: domain.TraitMinimal, Weight: 0.5},
			{Trait: domain.TraitDaily, Weight: 0.5},
		},
		"smoky": {
			{Trait: domain.TraitTrend, Weight: 0.4},
			{Trait: domain.TraitMinimal, Weight: 0.3},
			{Trait: domain.TraitVivid, Weight: 0.3, Invert: true},
		},
		"vivid": {
			{Trait: domain.TraitVivid, Weight: 0.7},
			{Trait: domain.TraitSparkle, Weight: 0.3},
		},
	},
	"q_scene": {
		"work": {
			{Trait: domain.TraitDaily, Weight: 0.7},
			{Trait: domain.TraitMinimal, Weight: 0.3},
		},
		"weekend": {
			{Trait: domain.TraitDaily, Weight: 0.5},
			{Trait: domain.TraitTrend, Weight: 0.5},
		},
		"event": {
			{Trait: domain.TraitDaily, Weight: 0.4, Invert: true},
			{Trait: domain.TraitSparkle, Weight: 0.3},
			{Trait: domain.TraitVivid, Weight: 0.3},
		},
	},
}

// Likelihood calcula la verosimilitud de una respuesta bajo un vector de rasgos.
// closeness es decaimiento exponencial de la distancia al objetivo (sliders)
// o una combinacion lineal ponderada de rasgos (categoricas), acotada a [0,1].
func Likelihood(questionID, answer string, traits domain.TraitVector) float64 {
	if byAnswer, ok := sliderAnswers[questionID]; ok {
		if target, ok := byAnswer[answer]; ok {
			dist := math.Abs(traits[target.Trait] - target.Target)
			closeness := math.Exp(-closenessDecay * dist)
			return scaleLikelihood(closeness)
		}
		return neutralLikelihood
	}

	if byAnswer, ok := categoricalAnswers[questionID]; ok {
		if weights, ok := byAnswer[answer]; ok {
			closeness := 0.0
			for _, tw := range weights {
				v := traits[tw.Trait]
				if tw.Invert {
					v = 1 - v
				}
				closeness += tw.Weight * v
			}
			return scaleLikelihood(clamp01(closeness))
		}
		return neutralLikelihood
	}

	return neutralLikelihood
}

func scaleLikelihood(closeness float64) float64 {
	l := likelihoodFloor + (1-likelihoodFloor)*clamp01(closeness)
	// Nunca exactamente 1: retenemos incertidumbre residual.
	if l >= 1 {
		l = 0.999
	}
	return l
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
