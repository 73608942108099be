package memory

import (
	"sort"

	"github.com/jhoicas/labtrack-api/internal/domain"
	"github.com/jhoicas/labtrack-api/internal/domain/entity"
	"github.com/jhoicas/labtrack-api/internal/domain/repository"
)

var _ repository.ArchiveRepository = (*ArchiveRepo)(nil)

// ArchiveRepo implementación en memoria de ArchiveRepository.
// Solo inserta y lee: los retiros son inmutables.
type ArchiveRepo struct {
	st   *Store
	inTx bool
}

func (r *ArchiveRepo) Create(a *entity.Archive) error {
	defer r.st.lock(r.inTx)()
	if _, ok := r.st.archives[a.ID]; ok {
		return domain.ErrDuplicate
	}
	r.st.archives[a.ID] = *a
	return nil
}

func (r *ArchiveRepo) GetByID(id string) (*entity.Archive, error) {
	defer r.st.lock(r.inTx)()
	a, ok := r.st.archives[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *ArchiveRepo) ListByLab(labID string, limit, offset int) ([]*entity.Archive, error) {
	defer r.st.lock(r.inTx)()
	var archives []*entity.Archive
	for _, a := range r.st.archives {
		if a.LabID != labID {
			continue
		}
		a := a
		archives = append(archives, &a)
	}
	sort.Slice(archives, func(i, j int) bool {
		return archives[i].CreatedAt.After(archives[j].CreatedAt)
	})
	return paginate(archives, limit, offset), nil
}

func (r *ArchiveRepo) ListByItem(itemID string) ([]*entity.Archive, error) {
	defer r.st.lock(r.inTx)()
	var archives []*entity.Archive
	for _, a := range r.st.archives {
		if a.ItemID != itemID {
			continue
		}
		a := a
		archives = append(archives, &a)
	}
	sort.Slice(archives, func(i, j int) bool {
		return archives[i].CreatedAt.After(archives[j].CreatedAt)
	})
	return archives, nil
}
