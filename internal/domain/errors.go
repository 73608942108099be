package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInvalidState      = errors.New("transición de estado inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// ErrInvariantViolation indica que los contadores de un item quedarían
	// inconsistentes (total != disponible + en_uso + archivado). Es un bug
	// interno de un ledger, nunca un error del usuario: se aborta y se loguea.
	ErrInvariantViolation = errors.New("contadores de stock inconsistentes")
)
