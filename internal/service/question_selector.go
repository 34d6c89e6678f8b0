package service

import "nail-llm/internal/domain"

// Selector voraz de preguntas: un paso de lookahead maximizando la ganancia
// de informacion esperada sobre las preguntas aun sin responder.

// ChooseNextQuestion devuelve la pregunta sin responder con mayor ganancia
// esperada. Los empates se resuelven por orden de catalogo. ok=false cuando
// no queda ninguna pregunta sin responder.
func ChooseNextQuestion(posterior domain.Distribution, form domain.SelectionSet) (domain.Question, bool) {
	var best domain.Question
	bestGain := -1.0
	found := false

	for _, q := range QuestionCatalog {
		if form.Answered(q.ID) {
			continue
		}
		gain := InformationGain(posterior, q)
		// Estrictamente mayor: el primero del catalogo gana los empates.
		if !found || gain > bestGain {
			best = q
			bestGain = gain
			found = true
		}
	}

	return best, found
}

// InformationGain es la reduccion esperada de entropia del posterior al
// hacer una pregunta: H(actual) - E[H(posterior tras la respuesta)].
func InformationGain(posterior domain.Distribution, q domain.Question) float64 {
	type outcome struct {
		prob float64
		post domain.Distribution
	}

	outcomes := make([]outcome, 0, len(q.Options))
	totalMass := 0.0
	for _, opt := range q.Options {
		// Probabilidad marginal de esta respuesta bajo la creencia actual.
		mass := 0.0
		for i, p := range posterior {
			mass += p * Likelihood(q.ID, opt.Value, StyleCatalog[i].Traits)
		}
		outcomes = append(outcomes, outcome{
			prob: mass,
			post: UpdatePosterior(posterior, q.ID, opt.Value),
		})
		totalMass += mass
	}

	if totalMass <= 0 {
		return 0
	}

	expectedEntropy := 0.0
	for _, o := range outcomes {
		expectedEntropy += (o.prob / totalMass) * o.post.Entropy()
	}

	return posterior.Entropy() - expectedEntropy
}

// NeedsMoreQuestions aplica la regla de corte: seguir preguntando solo si
// queda alguna pregunta sin responder Y la creencia sigue demasiado dispersa.
func NeedsMoreQuestions(posterior domain.Distribution, form domain.SelectionSet) (domain.Question, bool) {
	if posterior.Entropy() <= entropyThreshold {
		return domain.Question{}, false
	}
	return ChooseNextQuestion(posterior, form)
}
