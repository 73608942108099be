package repository

import "github.com/jhoicas/labtrack-api/internal/domain/entity"

// ArchiveRepository define el puerto de persistencia para retiros.
// Los registros son inmutables: no hay Update ni Delete.
type ArchiveRepository interface {
	Create(a *entity.Archive) error
	GetByID(id string) (*entity.Archive, error)
	ListByLab(labID string, limit, offset int) ([]*entity.Archive, error)
	ListByItem(itemID string) ([]*entity.Archive, error)
}
