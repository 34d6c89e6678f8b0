package service

import "nail-llm/internal/domain"

// Seleccion final de candidato: utilidad esperada bajo el posterior,
// peso del texto libre segun su especificidad y puerta dura cuando el
// cliente fue muy explicito.

// freeWeightStep es un escalon de la funcion monotona specificity -> peso.
type freeWeightStep struct {
	MinSpecificity int
	Weight         float64
}

// Escalones en orden descendente de especificidad.
var freeWeightSteps = []freeWeightStep{
	{MinSpecificity: 85, Weight: 0.35},
	{MinSpecificity: 70, Weight: 0.28},
	{MinSpecificity: 45, Weight: 0.20},
	{MinSpecificity: 20, Weight: 0.10},
	{MinSpecificity: 0, Weight: 0.0},
}

// FreeInputWeight devuelve cuanto pesa la alineacion con el texto libre
// en la utilidad total.
func FreeInputWeight(specificity int) float64 {
	for _, step := range freeWeightSteps {
		if specificity >= step.MinSpecificity {
			return step.Weight
		}
	}
	return 0
}

// ExpectedUtility pondera los puntajes por eje con los pesos del arquetipo,
// promedia bajo el posterior y suma el termino del texto libre.
func ExpectedUtility(c domain.Candidate, posterior domain.Distribution, fw float64) float64 {
	utility := 0.0
	for i, p := range posterior {
		if i >= len(StyleCatalog) {
			break
		}
		weights := axisWeights[StyleCatalog[i].ID]
		typeUtility := 0.0
		for _, axis := range evalAxes {
			typeUtility += weights[axis] * float64(c.AxisScore(axis)) / 100.0
		}
		utility += p * typeUtility
	}
	return utility + fw*float64(c.FreeAlignment)/100.0
}

// SelectCandidate elige exactamente un candidato.
// Puerta dura: con specificity >= 70, un candidato con free_alignment < 70
// queda descalificado sin importar sus otros meritos. Si la puerta elimina
// a todos, se cae a maximizar (alineacion, adherencia): nunca "sin candidato".
func SelectCandidate(candidates []domain.Candidate, posterior domain.Distribution, free domain.FreeSpec) (domain.Candidate, error) {
	if len(candidates) == 0 {
		return domain.Candidate{}, domain.ErrNoCandidates
	}

	gateActive := free.Specificity >= hardGateSpecificity
	fw := FreeInputWeight(free.Specificity)

	var best domain.Candidate
	bestUtility := 0.0
	found := false

	for _, c := range candidates {
		if gateActive && c.FreeAlignment < hardGateAlignment {
			continue
		}
		utility := ExpectedUtility(c, posterior, fw)
		if !found || betterCandidate(utility, c, bestUtility, best) {
			best = c
			bestUtility = utility
			found = true
		}
	}

	if found {
		return best, nil
	}

	// Todos descalificados: el cliente fue explicito y nada alinea, se
	// devuelve lo mas alineado posible.
	best = candidates[0]
	for _, c := range candidates[1:] {
		if c.FreeAlignment > best.FreeAlignment ||
			(c.FreeAlignment == best.FreeAlignment && c.AxisScore(AxisAdherence) > best.AxisScore(AxisAdherence)) {
			best = c
		}
	}
	return best, nil
}

// betterCandidate compara por la tupla descendente
// (utilidad esperada, free_alignment, adherence).
func betterCandidate(utility float64, c domain.Candidate, bestUtility float64, best domain.Candidate) bool {
	if utility != bestUtility {
		return utility > bestUtility
	}
	if c.FreeAlignment != best.FreeAlignment {
		return c.FreeAlignment > best.FreeAlignment
	}
	return c.AxisScore(AxisAdherence) > best.AxisScore(AxisAdherence)
}
