package service

import "nail-llm/internal/domain"

// UpdatePosterior aplica la regla de Bayes: multiplica cada entrada por la
// verosimilitud de la respuesta bajo ese arquetipo y renormaliza.
// Si todos los pesos quedan en <=0 (degenerado), Normalize cae a uniforme.
func UpdatePosterior(posterior domain.Distribution, questionID, answer string) domain.Distribution {
	unnormalized := make(domain.Distribution, len(posterior))
	for i, p := range posterior {
		unnormalized[i] = p * Likelihood(questionID, answer, StyleCatalog[i].Traits)
	}
	return unnormalized.Normalize()
}

// TopTypes devuelve las n probabilidades mas altas del posterior para
// diagnostico, en orden descendente (empates por orden de catalogo).
func TopTypes(posterior domain.Distribution, n int) []domain.TypeProbability {
	all := make([]domain.TypeProbability, 0, len(posterior))
	for i, p := range posterior {
		if i >= len(StyleCatalog) {
			break
		}
		all = append(all, domain.TypeProbability{
			TypeID:      StyleCatalog[i].ID,
			Name:        StyleCatalog[i].Name,
			Probability: p,
		})
	}

	// Seleccion por insercion: el catalogo es chico y el orden estable importa.
	for i := 1; i < len(all); i++ {
		for j := i; j > 0 && all[j].Probability > all[j-1].Probability; j-- {
			all[j], all[j-1] = all[j-1], all[j]
		}
	}

	if n > len(all) {
		n = len(all)
	}
	return all[:n]
}
