package domain

import "math"

// Distribution es la creencia actual sobre los arquetipos: una probabilidad
// por entrada del catalogo, no negativas y sumando 1.
type Distribution []float64

// NewUniformDistribution crea una distribucion uniforme sobre n arquetipos.
func NewUniformDistribution(n int) Distribution {
	if n <= 0 {
		return Distribution{}
	}
	d := make(Distribution, n)
	p := 1.0 / float64(n)
	for i := range d {
		d[i] = p
	}
	return d
}

// Clone devuelve una copia independiente.
func (d Distribution) Clone() Distribution {
	out := make(Distribution, len(d))
	copy(out, d)
	return out
}

// Normalize reescala para que la suma sea 1. Si la masa total es <= 0
// (caso degenerado) cae a la distribucion uniforme en vez de dividir por cero.
func (d Distribution) Normalize() Distribution {
	sum := 0.0
	for _, p := range d {
		if p > 0 {
			sum += p
		}
	}
	if sum <= 0 {
		return NewUniformDistribution(len(d))
	}
	out := make(Distribution, len(d))
	for i, p := range d {
		if p < 0 {
			p = 0
		}
		out[i] = p / sum
	}
	return out
}

// Entropy calcula la entropia de Shannon en nats. Los terminos con
// probabilidad 0 aportan 0.
func (d Distribution) Entropy() float64 {
	h := 0.0
	for _, p := range d {
		if p <= 0 {
			continue
		}
		h -= p * math.Log(p)
	}
	return h
}
