package memory

import (
	"sort"

	"github.com/jhoicas/labtrack-api/internal/domain"
	"github.com/jhoicas/labtrack-api/internal/domain/entity"
	"github.com/jhoicas/labtrack-api/internal/domain/repository"
)

var (
	_ repository.LabRepository      = (*LabRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.BrandRepository    = (*BrandRepo)(nil)
)

// LabRepo implementación en memoria de LabRepository.
type LabRepo struct {
	st   *Store
	inTx bool
}

func (r *LabRepo) Create(lab *entity.Lab) error {
	defer r.st.lock(r.inTx)()
	if _, ok := r.st.labs[lab.ID]; ok {
		return domain.ErrDuplicate
	}
	r.st.labs[lab.ID] = *lab
	return nil
}

func (r *LabRepo) GetByID(id string) (*entity.Lab, error) {
	defer r.st.lock(r.inTx)()
	lab, ok := r.st.labs[id]
	if !ok {
		return nil, nil
	}
	return &lab, nil
}

func (r *LabRepo) Update(lab *entity.Lab) error {
	defer r.st.lock(r.inTx)()
	if _, ok := r.st.labs[lab.ID]; !ok {
		return domain.ErrNotFound
	}
	r.st.labs[lab.ID] = *lab
	return nil
}

func (r *LabRepo) ListByOrg(orgID string) ([]*entity.Lab, error) {
	defer r.st.lock(r.inTx)()
	var labs []*entity.Lab
	for _, lab := range r.st.labs {
		if lab.OrgID != orgID {
			continue
		}
		lab := lab
		labs = append(labs, &lab)
	}
	sort.Slice(labs, func(i, j int) bool { return labs[i].Name < labs[j].Name })
	return labs, nil
}

func (r *LabRepo) Delete(id string) error {
	defer r.st.lock(r.inTx)()
	delete(r.st.settings, id)
	delete(r.st.labs, id)
	return nil
}

func (r *LabRepo) GetSettings(labID string) (*entity.LabSettings, error) {
	defer r.st.lock(r.inTx)()
	s, ok := r.st.settings[labID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *LabRepo) UpsertSettings(s *entity.LabSettings) error {
	defer r.st.lock(r.inTx)()
	r.st.settings[s.LabID] = *s
	return nil
}

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct {
	st   *Store
	inTx bool
}

func (r *CategoryRepo) Create(c *entity.Category) error {
	defer r.st.lock(r.inTx)()
	if _, ok := r.st.categories[c.ID]; ok {
		return domain.ErrDuplicate
	}
	r.st.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	defer r.st.lock(r.inTx)()
	c, ok := r.st.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepo) ListByLab(labID string) ([]*entity.Category, error) {
	defer r.st.lock(r.inTx)()
	var categories []*entity.Category
	for _, c := range r.st.categories {
		if c.LabID != labID {
			continue
		}
		c := c
		categories = append(categories, &c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (r *CategoryRepo) Delete(id string) error {
	defer r.st.lock(r.inTx)()
	delete(r.st.categories, id)
	return nil
}

// BrandRepo implementación en memoria de BrandRepository.
type BrandRepo struct {
	st   *Store
	inTx bool
}

func (r *BrandRepo) Create(b *entity.Brand) error {
	defer r.st.lock(r.inTx)()
	if _, ok := r.st.brands[b.ID]; ok {
		return domain.ErrDuplicate
	}
	r.st.brands[b.ID] = *b
	return nil
}

func (r *BrandRepo) GetByID(id string) (*entity.Brand, error) {
	defer r.st.lock(r.inTx)()
	b, ok := r.st.brands[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *BrandRepo) ListByLab(labID string) ([]*entity.Brand, error) {
	defer r.st.lock(r.inTx)()
	var brands []*entity.Brand
	for _, b := range r.st.brands {
		if b.LabID != labID {
			continue
		}
		b := b
		brands = append(brands, &b)
	}
	sort.Slice(brands, func(i, j int) bool { return brands[i].Name < brands[j].Name })
	return brands, nil
}

func (r *BrandRepo) Delete(id string) error {
	defer r.st.lock(r.inTx)()
	delete(r.st.brands, id)
	return nil
}
