package repository

import (
	"github.com/jhoicas/labtrack-api/internal/domain/entity"
	"github.com/jhoicas/labtrack-api/internal/domain/stock"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el item no existe.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)

	// GetForUpdate obtiene el item y bloquea su fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción del TxRunner: es la
	// serialización que impide que dos operaciones concurrentes sobre el
	// mismo item lean el mismo contador y sobregiren el stock.
	GetForUpdate(id string) (*entity.Item, error)

	Update(item *entity.Item) error

	// UpdateCounters escribe solo los cuatro contadores, ya validados.
	UpdateCounters(id string, c stock.Counters) error

	ListByLab(labID string, listedOnly bool) ([]*entity.Item, error)
	CodeExists(code string) (bool, error)

	// ClearCategory / ClearBrand dejan en vacío la referencia de los items
	// que apuntan a la categoría/marca eliminada (SET NULL explícito).
	ClearCategory(categoryID string) error
	ClearBrand(brandID string) error

	Delete(id string) error
}

// ItemUnitRepository define el puerto para los registros de detalle por
// unidad (serial/precio). GetByID devuelve (nil, nil) si no existe.
type ItemUnitRepository interface {
	Create(u *entity.ItemUnitInfo) error
	GetByID(id string) (*entity.ItemUnitInfo, error)
	Update(u *entity.ItemUnitInfo) error
	ListByItem(itemID string) ([]*entity.ItemUnitInfo, error)

	// CountByItem cuenta los registros de un item, para el tope contra
	// Counters.Total.
	CountByItem(itemID string) (int, error)

	Delete(id string) error

	// DeleteByItem elimina todos los registros de un item (cascada al
	// eliminar el item).
	DeleteByItem(itemID string) error
}
