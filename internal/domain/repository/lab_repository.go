package repository

import "github.com/jhoicas/labtrack-api/internal/domain/entity"

// LabRepository define el puerto de persistencia para laboratorios y su
// configuración. GetSettings devuelve (nil, nil) si aún no se creó.
type LabRepository interface {
	Create(lab *entity.Lab) error
	GetByID(id string) (*entity.Lab, error)
	Update(lab *entity.Lab) error
	ListByOrg(orgID string) ([]*entity.Lab, error)
	Delete(id string) error

	GetSettings(labID string) (*entity.LabSettings, error)
	UpsertSettings(s *entity.LabSettings) error
}

// CategoryRepository define el puerto de persistencia para categorías.
type CategoryRepository interface {
	Create(c *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	ListByLab(labID string) ([]*entity.Category, error)
	Delete(id string) error
}

// BrandRepository define el puerto de persistencia para marcas.
type BrandRepository interface {
	Create(b *entity.Brand) error
	GetByID(id string) (*entity.Brand, error)
	ListByLab(labID string) ([]*entity.Brand, error)
	Delete(id string) error
}
