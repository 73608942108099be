package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/labtrack-api/internal/application/dto"
	"github.com/jhoicas/labtrack-api/internal/domain"
	"github.com/jhoicas/labtrack-api/internal/domain/entity"
	"github.com/jhoicas/labtrack-api/internal/domain/repository"
	"github.com/jhoicas/labtrack-api/pkg/shortcode"
)

// ItemUseCase casos de uso CRUD para items. Los contadores se manejan
// exclusivamente vía ledgers (compras, asignación, retiro), nunca aquí.
type ItemUseCase struct {
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
	unitRepo     repository.ItemUnitRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	itemRepo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
	unitRepo repository.ItemUnitRepository,
) *ItemUseCase {
	return &ItemUseCase{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		unitRepo:     unitRepo,
	}
}

// Create declara un item de catálogo: nace listado, con código corto único
// y los cuatro contadores en cero. El stock entra por recepción de compras.
func (uc *ItemUseCase) Create(labID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if labID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkRefs(labID, in.CategoryID, in.BrandID); err != nil {
		return nil, err
	}
	code, err := shortcode.Generate(uc.itemRepo.CodeExists)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	item := &entity.Item{
		ID:            uuid.New().String(),
		LabID:         labID,
		Code:          code,
		Name:          in.Name,
		UnitOfMeasure: in.UnitOfMeasure,
		CategoryID:    in.CategoryID,
		BrandID:       in.BrandID,
		Listed:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un item por ID.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// GetCounters devuelve solo los cuatro contadores de un item.
func (uc *ItemUseCase) GetCounters(id string) (*dto.CountersDTO, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	c := toItemResponse(item).Counters
	return &c, nil
}

// List lista los items de un laboratorio. listedOnly excluye placeholders
// pendientes de su primera recepción.
func (uc *ItemUseCase) List(labID string, listedOnly bool) ([]*dto.ItemResponse, error) {
	items, err := uc.itemRepo.ListByLab(labID, listedOnly)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}
	return out, nil
}

// Update modifica los atributos descriptivos del item. Los contadores y el
// flag listado no son editables por esta vía.
func (uc *ItemUseCase) Update(id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = *in.Name
	}
	if in.UnitOfMeasure != nil {
		item.UnitOfMeasure = *in.UnitOfMeasure
	}
	if in.CategoryID != nil {
		item.CategoryID = *in.CategoryID
	}
	if in.BrandID != nil {
		item.BrandID = *in.BrandID
	}
	if err := uc.checkRefs(item.LabID, item.CategoryID, item.BrandID); err != nil {
		return nil, err
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Delete elimina un item sin stock. Con cualquier contador distinto de cero
// la operación se rechaza con ErrConflict y nada se muta. Los detalles por
// unidad del item se eliminan en cascada.
func (uc *ItemUseCase) Delete(id string) error {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if item.InStock() {
		return domain.ErrConflict
	}
	if err := uc.unitRepo.DeleteByItem(id); err != nil {
		return err
	}
	return uc.itemRepo.Delete(id)
}

// AddUnitInfo registra el detalle (serial/precio) de una unidad física del
// item. Nunca puede haber más detalles que unidades totales: al alcanzar el
// tope devuelve ErrConflict.
func (uc *ItemUseCase) AddUnitInfo(itemID string, in dto.ItemUnitRequest) (*dto.ItemUnitResponse, error) {
	if itemID == "" || in.SerialNo == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	count, err := uc.unitRepo.CountByItem(itemID)
	if err != nil {
		return nil, err
	}
	if count >= item.Counters.Total {
		return nil, domain.ErrConflict
	}
	unit := &entity.ItemUnitInfo{
		ID:        uuid.New().String(),
		ItemID:    itemID,
		SerialNo:  in.SerialNo,
		Price:     in.Price,
		CreatedAt: time.Now(),
	}
	if err := uc.unitRepo.Create(unit); err != nil {
		return nil, err
	}
	return toItemUnitResponse(unit), nil
}

// ListUnitInfo lista los detalles por unidad de un item.
func (uc *ItemUseCase) ListUnitInfo(itemID string) ([]*dto.ItemUnitResponse, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	units, err := uc.unitRepo.ListByItem(itemID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ItemUnitResponse, 0, len(units))
	for _, u := range units {
		out = append(out, toItemUnitResponse(u))
	}
	return out, nil
}

// UpdateUnitInfo modifica serial y precio de un detalle existente.
func (uc *ItemUseCase) UpdateUnitInfo(unitID string, in dto.ItemUnitRequest) (*dto.ItemUnitResponse, error) {
	if in.SerialNo == "" {
		return nil, domain.ErrInvalidInput
	}
	unit, err := uc.unitRepo.GetByID(unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	unit.SerialNo = in.SerialNo
	unit.Price = in.Price
	if err := uc.unitRepo.Update(unit); err != nil {
		return nil, err
	}
	return toItemUnitResponse(unit), nil
}

// DeleteUnitInfo elimina un detalle por unidad.
func (uc *ItemUseCase) DeleteUnitInfo(unitID string) error {
	unit, err := uc.unitRepo.GetByID(unitID)
	if err != nil {
		return err
	}
	if unit == nil {
		return domain.ErrNotFound
	}
	return uc.unitRepo.Delete(unitID)
}

// checkRefs valida que categoría y marca existan y pertenezcan al mismo lab.
func (uc *ItemUseCase) checkRefs(labID, categoryID, brandID string) error {
	if categoryID != "" {
		cat, err := uc.categoryRepo.GetByID(categoryID)
		if err != nil {
			return err
		}
		if cat == nil || cat.LabID != labID {
			return domain.ErrNotFound
		}
	}
	if brandID != "" {
		brand, err := uc.brandRepo.GetByID(brandID)
		if err != nil {
			return err
		}
		if brand == nil || brand.LabID != labID {
			return domain.ErrNotFound
		}
	}
	return nil
}

func toItemUnitResponse(u *entity.ItemUnitInfo) *dto.ItemUnitResponse {
	return &dto.ItemUnitResponse{
		ID:        u.ID,
		ItemID:    u.ItemID,
		SerialNo:  u.SerialNo,
		Price:     u.Price,
		CreatedAt: u.CreatedAt,
	}
}

func toItemResponse(item *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:            item.ID,
		LabID:         item.LabID,
		Code:          item.Code,
		Name:          item.Name,
		UnitOfMeasure: item.UnitOfMeasure,
		CategoryID:    item.CategoryID,
		BrandID:       item.BrandID,
		Listed:        item.Listed,
		Counters: dto.CountersDTO{
			Total:     item.Counters.Total,
			Available: item.Counters.Available,
			InUse:     item.Counters.InUse,
			Archived:  item.Counters.Archived,
		},
		CreatedAt: item.CreatedAt,
	}
}
