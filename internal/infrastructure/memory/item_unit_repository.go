package memory

import (
	"sort"

	"github.com/jhoicas/labtrack-api/internal/domain"
	"github.com/jhoicas/labtrack-api/internal/domain/entity"
	"github.com/jhoicas/labtrack-api/internal/domain/repository"
)

var _ repository.ItemUnitRepository = (*ItemUnitRepo)(nil)

// ItemUnitRepo implementación en memoria de ItemUnitRepository.
type ItemUnitRepo struct {
	st   *Store
	inTx bool
}

func (r *ItemUnitRepo) Create(u *entity.ItemUnitInfo) error {
	defer r.st.lock(r.inTx)()
	if _, ok := r.st.units[u.ID]; ok {
		return domain.ErrDuplicate
	}
	r.st.units[u.ID] = *u
	return nil
}

func (r *ItemUnitRepo) GetByID(id string) (*entity.ItemUnitInfo, error) {
	defer r.st.lock(r.inTx)()
	u, ok := r.st.units[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *ItemUnitRepo) Update(u *entity.ItemUnitInfo) error {
	defer r.st.lock(r.inTx)()
	if _, ok := r.st.units[u.ID]; !ok {
		return domain.ErrNotFound
	}
	r.st.units[u.ID] = *u
	return nil
}

func (r *ItemUnitRepo) ListByItem(itemID string) ([]*entity.ItemUnitInfo, error) {
	defer r.st.lock(r.inTx)()
	var units []*entity.ItemUnitInfo
	for _, u := range r.st.units {
		if u.ItemID != itemID {
			continue
		}
		u := u
		units = append(units, &u)
	}
	sort.Slice(units, func(i, j int) bool {
		return units[i].CreatedAt.Before(units[j].CreatedAt)
	})
	return units, nil
}

func (r *ItemUnitRepo) CountByItem(itemID string) (int, error) {
	defer r.st.lock(r.inTx)()
	count := 0
	for _, u := range r.st.units {
		if u.ItemID == itemID {
			count++
		}
	}
	return count, nil
}

func (r *ItemUnitRepo) Delete(id string) error {
	defer r.st.lock(r.inTx)()
	if _, ok := r.st.units[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.st.units, id)
	return nil
}

func (r *ItemUnitRepo) DeleteByItem(itemID string) error {
	defer r.st.lock(r.inTx)()
	for id, u := range r.st.units {
		if u.ItemID == itemID {
			delete(r.st.units, id)
		}
	}
	return nil
}
