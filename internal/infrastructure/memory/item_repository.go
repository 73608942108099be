package memory

import (
	"sort"

	"github.com/jhoicas/labtrack-api/internal/domain"
	"github.com/jhoicas/labtrack-api/internal/domain/entity"
	"github.com/jhoicas/labtrack-api/internal/domain/repository"
	"github.com/jhoicas/labtrack-api/internal/domain/stock"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación en memoria de ItemRepository.
type ItemRepo struct {
	st   *Store
	inTx bool
}

func (r *ItemRepo) Create(item *entity.Item) error {
	defer r.st.lock(r.inTx)()
	for _, existing := range r.st.items {
		if existing.Code == item.Code {
			return domain.ErrDuplicate
		}
	}
	if _, ok := r.st.items[item.ID]; ok {
		return domain.ErrDuplicate
	}
	r.st.items[item.ID] = *item
	return nil
}

func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	defer r.st.lock(r.inTx)()
	item, ok := r.st.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

// GetForUpdate en memoria equivale a GetByID: la serialización la da el
// mutex que el TxRunner mantiene durante toda la transacción.
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return r.GetByID(id)
}

func (r *ItemRepo) Update(item *entity.Item) error {
	defer r.st.lock(r.inTx)()
	if _, ok := r.st.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	r.st.items[item.ID] = *item
	return nil
}

func (r *ItemRepo) UpdateCounters(id string, c stock.Counters) error {
	defer r.st.lock(r.inTx)()
	item, ok := r.st.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.Counters = c
	r.st.items[id] = item
	return nil
}

func (r *ItemRepo) ListByLab(labID string, listedOnly bool) ([]*entity.Item, error) {
	defer r.st.lock(r.inTx)()
	var items []*entity.Item
	for _, item := range r.st.items {
		if item.LabID != labID {
			continue
		}
		if listedOnly && !item.Listed {
			continue
		}
		item := item
		items = append(items, &item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (r *ItemRepo) CodeExists(code string) (bool, error) {
	defer r.st.lock(r.inTx)()
	for _, item := range r.st.items {
		if item.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *ItemRepo) ClearCategory(categoryID string) error {
	defer r.st.lock(r.inTx)()
	for id, item := range r.st.items {
		if item.CategoryID == categoryID {
			item.CategoryID = ""
			r.st.items[id] = item
		}
	}
	return nil
}

func (r *ItemRepo) ClearBrand(brandID string) error {
	defer r.st.lock(r.inTx)()
	for id, item := range r.st.items {
		if item.BrandID == brandID {
			item.BrandID = ""
			r.st.items[id] = item
		}
	}
	return nil
}

func (r *ItemRepo) Delete(id string) error {
	defer r.st.lock(r.inTx)()
	delete(r.st.items, id)
	return nil
}
