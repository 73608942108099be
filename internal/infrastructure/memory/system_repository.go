package memory

import (
	"sort"

	"github.com/jhoicas/labtrack-api/internal/domain"
	"github.com/jhoicas/labtrack-api/internal/domain/entity"
	"github.com/jhoicas/labtrack-api/internal/domain/repository"
)

var (
	_ repository.SystemRepository    = (*SystemRepo)(nil)
	_ repository.ComponentRepository = (*ComponentRepo)(nil)
)

// SystemRepo implementación en memoria de SystemRepository.
type SystemRepo struct {
	st   *Store
	inTx bool
}

func (r *SystemRepo) Create(s *entity.System) error {
	defer r.st.lock(r.inTx)()
	for _, existing := range r.st.systems {
		if existing.Code == s.Code {
			return domain.ErrDuplicate
		}
	}
	if _, ok := r.st.systems[s.ID]; ok {
		return domain.ErrDuplicate
	}
	r.st.systems[s.ID] = *s
	return nil
}

func (r *SystemRepo) GetByID(id string) (*entity.System, error) {
	defer r.st.lock(r.inTx)()
	s, ok := r.st.systems[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *SystemRepo) Update(s *entity.System) error {
	defer r.st.lock(r.inTx)()
	if _, ok := r.st.systems[s.ID]; !ok {
		return domain.ErrNotFound
	}
	r.st.systems[s.ID] = *s
	return nil
}

func (r *SystemRepo) ListByLab(labID string) ([]*entity.System, error) {
	defer r.st.lock(r.inTx)()
	var systems []*entity.System
	for _, s := range r.st.systems {
		if s.LabID != labID {
			continue
		}
		s := s
		systems = append(systems, &s)
	}
	sort.Slice(systems, func(i, j int) bool { return systems[i].Name < systems[j].Name })
	return systems, nil
}

func (r *SystemRepo) CodeExists(code string) (bool, error) {
	defer r.st.lock(r.inTx)()
	for _, s := range r.st.systems {
		if s.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *SystemRepo) Delete(id string) error {
	defer r.st.lock(r.inTx)()
	delete(r.st.systems, id)
	return nil
}

// ComponentRepo implementación en memoria de ComponentRepository.
type ComponentRepo struct {
	st   *Store
	inTx bool
}

func (r *ComponentRepo) Create(c *entity.SystemComponent) error {
	defer r.st.lock(r.inTx)()
	if _, ok := r.st.components[c.ID]; ok {
		return domain.ErrDuplicate
	}
	r.st.components[c.ID] = *c
	return nil
}

func (r *ComponentRepo) GetByID(id string) (*entity.SystemComponent, error) {
	defer r.st.lock(r.inTx)()
	c, ok := r.st.components[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// GetForUpdate delega en GetByID: el mutex del TxRunner ya serializa la
// transacción completa, no hay bloqueo por fila que tomar.
func (r *ComponentRepo) GetForUpdate(id string) (*entity.SystemComponent, error) {
	return r.GetByID(id)
}

func (r *ComponentRepo) UpdateItem(id, itemID string) error {
	defer r.st.lock(r.inTx)()
	c, ok := r.st.components[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.ItemID = itemID
	r.st.components[id] = c
	return nil
}

func (r *ComponentRepo) ListBySystem(systemID string) ([]*entity.SystemComponent, error) {
	defer r.st.lock(r.inTx)()
	var components []*entity.SystemComponent
	for _, c := range r.st.components {
		if c.SystemID != systemID {
			continue
		}
		c := c
		components = append(components, &c)
	}
	sort.Slice(components, func(i, j int) bool {
		if components[i].ComponentType != components[j].ComponentType {
			return components[i].ComponentType < components[j].ComponentType
		}
		return components[i].CreatedAt.Before(components[j].CreatedAt)
	})
	return components, nil
}

func (r *ComponentRepo) ListByItem(itemID string) ([]*entity.SystemComponent, error) {
	defer r.st.lock(r.inTx)()
	var components []*entity.SystemComponent
	for _, c := range r.st.components {
		if c.ItemID != itemID {
			continue
		}
		c := c
		components = append(components, &c)
	}
	sort.Slice(components, func(i, j int) bool {
		return components[i].CreatedAt.Before(components[j].CreatedAt)
	})
	return components, nil
}

func (r *ComponentRepo) Delete(id string) error {
	defer r.st.lock(r.inTx)()
	if _, ok := r.st.components[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.st.components, id)
	return nil
}
