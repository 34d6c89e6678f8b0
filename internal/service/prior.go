package service

import "nail-llm/internal/domain"

// priorFields son los campos gruesos del formulario que alimentan el prior.
var priorFields = []string{"purpose", "vibe", "age"}

// BuildPrior convierte las selecciones gruesas del cliente en una
// distribucion inicial sobre el catalogo de arquetipos.
// Parte de peso uniforme 1.0 y aplica los boosts multiplicativos de la
// tabla de reglas; los valores no reconocidos se ignoran sin error.
func BuildPrior(form domain.SelectionSet) domain.Distribution {
	weights := make(domain.Distribution, len(StyleCatalog))
	for i := range weights {
		weights[i] = 1.0
	}

	for _, field := range priorFields {
		rules, ok := boostRules[field]
		if !ok {
			continue
		}
		for _, value := range form.Values(field) {
			for _, boost := range rules[value] {
				if idx, ok := styleIndex[boost.TypeID]; ok {
					weights[idx] *= boost.Factor
				}
			}
		}
	}

	return weights.Normalize()
}
