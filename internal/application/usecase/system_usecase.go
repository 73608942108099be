package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/labtrack-api/internal/application/dto"
	"github.com/jhoicas/labtrack-api/internal/application/ledger"
	"github.com/jhoicas/labtrack-api/internal/domain"
	"github.com/jhoicas/labtrack-api/internal/domain/entity"
	"github.com/jhoicas/labtrack-api/internal/domain/repository"
	"github.com/jhoicas/labtrack-api/pkg/shortcode"
)

// SystemUseCase CRUD de sistemas (activos compuestos). El armado y
// desarmado de componentes pasa por el ledger de asignación; este caso de
// uso solo maneja los atributos del sistema y delega la limpieza.
type SystemUseCase struct {
	systemRepo    repository.SystemRepository
	componentRepo repository.ComponentRepository
	allocation    *ledger.AllocationUseCase
}

// NewSystemUseCase construye el caso de uso.
func NewSystemUseCase(
	systemRepo repository.SystemRepository,
	componentRepo repository.ComponentRepository,
	allocation *ledger.AllocationUseCase,
) *SystemUseCase {
	return &SystemUseCase{
		systemRepo:    systemRepo,
		componentRepo: componentRepo,
		allocation:    allocation,
	}
}

// Create crea un sistema vacío en estado not_working, con código corto único.
func (uc *SystemUseCase) Create(labID string, in dto.CreateSystemRequest) (*dto.SystemResponse, error) {
	if labID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	code, err := shortcode.Generate(uc.systemRepo.CodeExists)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	sys := &entity.System{
		ID:        uuid.New().String(),
		LabID:     labID,
		Code:      code,
		Name:      in.Name,
		Status:    entity.SystemNotWorking,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.systemRepo.Create(sys); err != nil {
		return nil, err
	}
	return toSystemResponse(sys), nil
}

// GetByID obtiene un sistema por ID.
func (uc *SystemUseCase) GetByID(id string) (*dto.SystemResponse, error) {
	sys, err := uc.systemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sys == nil {
		return nil, domain.ErrNotFound
	}
	return toSystemResponse(sys), nil
}

// List lista los sistemas de un laboratorio.
func (uc *SystemUseCase) List(labID string) ([]*dto.SystemResponse, error) {
	list, err := uc.systemRepo.ListByLab(labID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SystemResponse, 0, len(list))
	for _, sys := range list {
		out = append(out, toSystemResponse(sys))
	}
	return out, nil
}

// Update modifica nombre y estado del sistema.
func (uc *SystemUseCase) Update(id string, in dto.UpdateSystemRequest) (*dto.SystemResponse, error) {
	sys, err := uc.systemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sys == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		sys.Name = *in.Name
	}
	if in.Status != nil {
		if !entity.ValidSystemStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		sys.Status = *in.Status
	}
	sys.UpdatedAt = time.Now()
	if err := uc.systemRepo.Update(sys); err != nil {
		return nil, err
	}
	return toSystemResponse(sys), nil
}

// Delete desarma el sistema: libera todos sus componentes (los contadores
// de cada item vuelven a disponible) y elimina el sistema en una sola
// transacción del ledger de asignación.
func (uc *SystemUseCase) Delete(ctx context.Context, id string) error {
	return uc.allocation.DismantleSystem(ctx, id)
}

// ListComponents lista las asignaciones vivas de un sistema.
func (uc *SystemUseCase) ListComponents(systemID string) ([]*dto.ComponentResponse, error) {
	sys, err := uc.systemRepo.GetByID(systemID)
	if err != nil {
		return nil, err
	}
	if sys == nil {
		return nil, domain.ErrNotFound
	}
	components, err := uc.componentRepo.ListBySystem(systemID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ComponentResponse, 0, len(components))
	for _, c := range components {
		out = append(out, toComponentResponse(c))
	}
	return out, nil
}

// ListComponentsByItem lista las asignaciones vivas de un item.
func (uc *SystemUseCase) ListComponentsByItem(itemID string) ([]*dto.ComponentResponse, error) {
	components, err := uc.componentRepo.ListByItem(itemID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ComponentResponse, 0, len(components))
	for _, c := range components {
		out = append(out, toComponentResponse(c))
	}
	return out, nil
}

func toSystemResponse(sys *entity.System) *dto.SystemResponse {
	return &dto.SystemResponse{
		ID:        sys.ID,
		LabID:     sys.LabID,
		Code:      sys.Code,
		Name:      sys.Name,
		Status:    sys.Status,
		CreatedAt: sys.CreatedAt,
	}
}

func toComponentResponse(c *entity.SystemComponent) *dto.ComponentResponse {
	return &dto.ComponentResponse{
		ID:            c.ID,
		SystemID:      c.SystemID,
		ItemID:        c.ItemID,
		ComponentType: c.ComponentType,
		SerialNo:      c.SerialNo,
		CreatedAt:     c.CreatedAt,
	}
}
