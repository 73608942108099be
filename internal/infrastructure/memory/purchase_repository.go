package memory

import (
	"sort"

	"github.com/jhoicas/labtrack-api/internal/domain"
	"github.com/jhoicas/labtrack-api/internal/domain/entity"
	"github.com/jhoicas/labtrack-api/internal/domain/repository"
)

var (
	_ repository.PurchaseRepository = (*PurchaseRepo)(nil)
	_ repository.VendorRepository   = (*VendorRepo)(nil)
)

// PurchaseRepo implementación en memoria de PurchaseRepository.
type PurchaseRepo struct {
	st   *Store
	inTx bool
}

func (r *PurchaseRepo) Create(p *entity.Purchase) error {
	defer r.st.lock(r.inTx)()
	if _, ok := r.st.purchases[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.st.purchases[p.ID] = *p
	return nil
}

func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	defer r.st.lock(r.inTx)()
	p, ok := r.st.purchases[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *PurchaseRepo) GetForUpdate(id string) (*entity.Purchase, error) {
	return r.GetByID(id)
}

func (r *PurchaseRepo) Update(p *entity.Purchase) error {
	defer r.st.lock(r.inTx)()
	if _, ok := r.st.purchases[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.st.purchases[p.ID] = *p
	return nil
}

func (r *PurchaseRepo) ListByLab(labID string, limit, offset int) ([]*entity.Purchase, error) {
	defer r.st.lock(r.inTx)()
	var purchases []*entity.Purchase
	for _, p := range r.st.purchases {
		if p.LabID != labID {
			continue
		}
		p := p
		purchases = append(purchases, &p)
	}
	sort.Slice(purchases, func(i, j int) bool {
		return purchases[i].CreatedAt.After(purchases[j].CreatedAt)
	})
	return paginate(purchases, limit, offset), nil
}

func (r *PurchaseRepo) ClearVendor(vendorID string) error {
	defer r.st.lock(r.inTx)()
	for id, p := range r.st.purchases {
		if p.VendorID == vendorID {
			p.VendorID = ""
			r.st.purchases[id] = p
		}
	}
	return nil
}

func (r *PurchaseRepo) Delete(id string) error {
	defer r.st.lock(r.inTx)()
	delete(r.st.purchases, id)
	return nil
}

// VendorRepo implementación en memoria de VendorRepository.
type VendorRepo struct {
	st   *Store
	inTx bool
}

func (r *VendorRepo) Create(v *entity.Vendor) error {
	defer r.st.lock(r.inTx)()
	if _, ok := r.st.vendors[v.ID]; ok {
		return domain.ErrDuplicate
	}
	r.st.vendors[v.ID] = *v
	return nil
}

func (r *VendorRepo) GetByID(id string) (*entity.Vendor, error) {
	defer r.st.lock(r.inTx)()
	v, ok := r.st.vendors[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r *VendorRepo) ListByOrg(orgID string) ([]*entity.Vendor, error) {
	defer r.st.lock(r.inTx)()
	var vendors []*entity.Vendor
	for _, v := range r.st.vendors {
		if v.OrgID != orgID {
			continue
		}
		v := v
		vendors = append(vendors, &v)
	}
	sort.Slice(vendors, func(i, j int) bool { return vendors[i].Name < vendors[j].Name })
	return vendors, nil
}

func (r *VendorRepo) Delete(id string) error {
	defer r.st.lock(r.inTx)()
	delete(r.st.vendors, id)
	return nil
}

func paginate[T any](list []*T, limit, offset int) []*T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
