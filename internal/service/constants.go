package service

import "time"

// Umbrales y constantes del motor de elicitacion. Son valores elegidos
// empiricamente; se mantienen centralizados para poder ajustarlos sin
// tocar los algoritmos.
const (
	// entropyThreshold: por debajo de esta entropia (nats) la creencia se
	// considera suficientemente concentrada y se finaliza sin preguntar mas.
	// ln(8) ~= 2.08 es el maximo con 8 arquetipos.
	entropyThreshold = 1.15

	// likelihoodFloor evita que una sola respuesta elimine un arquetipo.
	likelihoodFloor = 0.15

	// neutralLikelihood se usa para respuestas fuera de la tabla.
	neutralLikelihood = 0.2

	// closenessDecay controla la caida exponencial de las preguntas slider.
	closenessDecay = 3.0

	// sessionTTL limita la vida de una sesion entre round-trips.
	sessionTTL = 10 * time.Minute

	// hardGateSpecificity y hardGateAlignment definen la puerta dura:
	// cliente muy explicito => candidato poco alineado queda descalificado.
	hardGateSpecificity = 70
	hardGateAlignment   = 70

	// topTypeCount limita el diagnostico de posterior expuesto en el resultado.
	topTypeCount = 3
)
