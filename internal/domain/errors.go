package domain

import "errors"

// Errores de validacion y de sesion expuestos al borde HTTP.
// El handler los mapea a codigos 4xx; todo lo demas es 5xx generico.
var (
	// ErrMissingImage indica que el request no trajo la foto de las unias.
	ErrMissingImage = errors.New("missing nail photo")

	// ErrSessionNotFound indica token desconocido, expirado o ya consumido.
	// El flujo debe reiniciarse desde el start.
	ErrSessionNotFound = errors.New("session not found")

	// ErrUnknownQuestion indica un question_id fuera del catalogo.
	ErrUnknownQuestion = errors.New("unknown question")

	// ErrEmptyAnswer indica una respuesta en blanco.
	ErrEmptyAnswer = errors.New("empty answer")

	// ErrNoCandidates indica que el colaborador no produjo ningun candidato.
	ErrNoCandidates = errors.New("no candidates generated")
)
