package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/labtrack-api/internal/application/dto"
	"github.com/jhoicas/labtrack-api/internal/domain"
	"github.com/jhoicas/labtrack-api/internal/domain/entity"
	"github.com/jhoicas/labtrack-api/internal/domain/repository"
)

// CatalogUseCase CRUD de categorías, marcas y proveedores. Son atributos de
// clasificación: eliminarlos nunca toca contadores, solo deja en vacío las
// referencias de los registros que apuntaban a ellos (SET NULL explícito).
type CatalogUseCase struct {
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
	vendorRepo   repository.VendorRepository
	itemRepo     repository.ItemRepository
	purchaseRepo repository.PurchaseRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
	vendorRepo repository.VendorRepository,
	itemRepo repository.ItemRepository,
	purchaseRepo repository.PurchaseRepository,
) *CatalogUseCase {
	return &CatalogUseCase{
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		vendorRepo:   vendorRepo,
		itemRepo:     itemRepo,
		purchaseRepo: purchaseRepo,
	}
}

// CreateCategory crea una categoría en el laboratorio.
func (uc *CatalogUseCase) CreateCategory(labID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if labID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.Category{
		ID:        uuid.New().String(),
		LabID:     labID,
		Name:      in.Name,
		CreatedAt: time.Now(),
	}
	if err := uc.categoryRepo.Create(c); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: c.ID, LabID: c.LabID, Name: c.Name, CreatedAt: c.CreatedAt}, nil
}

// ListCategories lista las categorías de un laboratorio.
func (uc *CatalogUseCase) ListCategories(labID string) ([]*dto.CategoryResponse, error) {
	list, err := uc.categoryRepo.ListByLab(labID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, &dto.CategoryResponse{ID: c.ID, LabID: c.LabID, Name: c.Name, CreatedAt: c.CreatedAt})
	}
	return out, nil
}

// DeleteCategory elimina la categoría y desclasifica los items que la usaban.
func (uc *CatalogUseCase) DeleteCategory(id string) error {
	c, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	if err := uc.itemRepo.ClearCategory(id); err != nil {
		return err
	}
	return uc.categoryRepo.Delete(id)
}

// CreateBrand crea una marca en el laboratorio.
func (uc *CatalogUseCase) CreateBrand(labID string, in dto.CreateBrandRequest) (*dto.BrandResponse, error) {
	if labID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	b := &entity.Brand{
		ID:        uuid.New().String(),
		LabID:     labID,
		Name:      in.Name,
		CreatedAt: time.Now(),
	}
	if err := uc.brandRepo.Create(b); err != nil {
		return nil, err
	}
	return &dto.BrandResponse{ID: b.ID, LabID: b.LabID, Name: b.Name, CreatedAt: b.CreatedAt}, nil
}

// ListBrands lista las marcas de un laboratorio.
func (uc *CatalogUseCase) ListBrands(labID string) ([]*dto.BrandResponse, error) {
	list, err := uc.brandRepo.ListByLab(labID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BrandResponse, 0, len(list))
	for _, b := range list {
		out = append(out, &dto.BrandResponse{ID: b.ID, LabID: b.LabID, Name: b.Name, CreatedAt: b.CreatedAt})
	}
	return out, nil
}

// DeleteBrand elimina la marca y desclasifica los items que la usaban.
func (uc *CatalogUseCase) DeleteBrand(id string) error {
	b, err := uc.brandRepo.GetByID(id)
	if err != nil {
		return err
	}
	if b == nil {
		return domain.ErrNotFound
	}
	if err := uc.itemRepo.ClearBrand(id); err != nil {
		return err
	}
	return uc.brandRepo.Delete(id)
}

// CreateVendor crea un proveedor en la organización.
func (uc *CatalogUseCase) CreateVendor(orgID string, in dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	if orgID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	v := &entity.Vendor{
		ID:        uuid.New().String(),
		OrgID:     orgID,
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: time.Now(),
	}
	if err := uc.vendorRepo.Create(v); err != nil {
		return nil, err
	}
	return toVendorResponse(v), nil
}

// ListVendors lista los proveedores de una organización.
func (uc *CatalogUseCase) ListVendors(orgID string) ([]*dto.VendorResponse, error) {
	list, err := uc.vendorRepo.ListByOrg(orgID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.VendorResponse, 0, len(list))
	for _, v := range list {
		out = append(out, toVendorResponse(v))
	}
	return out, nil
}

// DeleteVendor elimina el proveedor; las compras que lo referenciaban quedan
// sin proveedor pero intactas (el historial de compra no se pierde).
func (uc *CatalogUseCase) DeleteVendor(id string) error {
	v, err := uc.vendorRepo.GetByID(id)
	if err != nil {
		return err
	}
	if v == nil {
		return domain.ErrNotFound
	}
	if err := uc.purchaseRepo.ClearVendor(id); err != nil {
		return err
	}
	return uc.vendorRepo.Delete(id)
}

func toVendorResponse(v *entity.Vendor) *dto.VendorResponse {
	return &dto.VendorResponse{
		ID:        v.ID,
		OrgID:     v.OrgID,
		Name:      v.Name,
		Address:   v.Address,
		CreatedAt: v.CreatedAt,
	}
}
