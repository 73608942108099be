package repository

import "github.com/jhoicas/labtrack-api/internal/domain/entity"

// SystemRepository define el puerto de persistencia para sistemas (activos compuestos).
type SystemRepository interface {
	Create(s *entity.System) error
	GetByID(id string) (*entity.System, error)
	Update(s *entity.System) error
	ListByLab(labID string) ([]*entity.System, error)
	CodeExists(code string) (bool, error)
	Delete(id string) error
}

// ComponentRepository define el puerto para registros de asignación
// (SystemComponent). Cada registro es exactamente una unidad física.
type ComponentRepository interface {
	Create(c *entity.SystemComponent) error
	GetByID(id string) (*entity.SystemComponent, error)

	// GetForUpdate obtiene el registro y bloquea su fila (SELECT FOR UPDATE).
	// Liberar, reasignar o retirar una asignación debe leerla con este método
	// dentro de la transacción: dos operaciones concurrentes sobre el mismo
	// registro se serializan aquí, antes de tocar contadores.
	GetForUpdate(id string) (*entity.SystemComponent, error)

	// UpdateItem reapunta el registro a otro item (reasignación). Los
	// contadores de ambos items se ajustan en la misma transacción.
	// Devuelve ErrNotFound si el registro ya no existe.
	UpdateItem(id, itemID string) error

	ListBySystem(systemID string) ([]*entity.SystemComponent, error)
	ListByItem(itemID string) ([]*entity.SystemComponent, error)

	// Delete devuelve ErrNotFound si el registro ya no existe, para que una
	// transacción que perdió la carrera por la fila aborte en vez de
	// confirmar un movimiento de contadores sin unidad que lo respalde.
	Delete(id string) error
}
