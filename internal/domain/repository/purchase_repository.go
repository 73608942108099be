package repository

import "github.com/jhoicas/labtrack-api/internal/domain/entity"

// PurchaseRepository define el puerto de persistencia para compras.
// GetByID y GetForUpdate devuelven (nil, nil) si la compra no existe.
type PurchaseRepository interface {
	Create(p *entity.Purchase) error
	GetByID(id string) (*entity.Purchase, error)

	// GetForUpdate bloquea la fila de la compra. La recepción a stock lo usa
	// para que dos recepciones concurrentes de la misma compra no acrediten
	// dos veces: la segunda ve added_to_stock=true y es no-op.
	GetForUpdate(id string) (*entity.Purchase, error)

	Update(p *entity.Purchase) error
	ListByLab(labID string, limit, offset int) ([]*entity.Purchase, error)

	// ClearVendor deja en vacío la referencia de las compras del proveedor
	// eliminado (SET NULL explícito).
	ClearVendor(vendorID string) error

	Delete(id string) error
}

// VendorRepository define el puerto de persistencia para proveedores.
type VendorRepository interface {
	Create(v *entity.Vendor) error
	GetByID(id string) (*entity.Vendor, error)
	ListByOrg(orgID string) ([]*entity.Vendor, error)
	Delete(id string) error
}
