package domain

import "strings"

// SelectionSet normaliza los campos del formulario en el borde HTTP:
// cada campo puede traer uno o varios valores, siempre como lista de strings.
// Elimina los chequeos de tipo ad hoc dentro de la logica de scoring.
type SelectionSet map[string][]string

// NewSelectionSet construye un SelectionSet descartando valores vacios.
func NewSelectionSet(raw map[string][]string) SelectionSet {
	out := make(SelectionSet, len(raw))
	for key, values := range raw {
		for _, v := range values {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			out[key] = append(out[key], v)
		}
	}
	return out
}

// Values devuelve todos los valores no vacios de un campo.
func (s SelectionSet) Values(field string) []string {
	return s[field]
}

// First devuelve el primer valor de un campo, o "" si no existe.
func (s SelectionSet) First(field string) string {
	if vs, ok := s[field]; ok && len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Answered indica si el campo tiene algun valor no vacio.
// Una pregunta del catalogo se considera respondida cuando su id cumple esto.
func (s SelectionSet) Answered(field string) bool {
	return s.First(field) != ""
}

// Set reemplaza el valor de un campo por uno simple.
func (s SelectionSet) Set(field, value string) {
	s[field] = []string{value}
}

// Clone devuelve una copia independiente del set.
func (s SelectionSet) Clone() SelectionSet {
	out := make(SelectionSet, len(s))
	for k, vs := range s {
		cp := make([]string, len(vs))
		copy(cp, vs)
		out[k] = cp
	}
	return out
}
