package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInvalidTransition = errors.New("transición de estado no permitida")

	// Errores del proveedor de análisis (externo). Nunca son fatales para la aplicación:
	// el caso de uso de reposición los convierte en un resumen de respaldo.
	ErrProviderFailure       = errors.New("fallo del proveedor de análisis")
	ErrProviderTimeout       = errors.New("el proveedor de análisis excedió el tiempo límite")
	ErrProviderNotConfigured = errors.New("proveedor de análisis no configurado")
	ErrMalformedSuggestion   = errors.New("sugerencia del proveedor mal formada")
)
