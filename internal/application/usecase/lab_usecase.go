package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/labtrack-api/internal/application/dto"
	"github.com/jhoicas/labtrack-api/internal/domain"
	"github.com/jhoicas/labtrack-api/internal/domain/entity"
	"github.com/jhoicas/labtrack-api/internal/domain/repository"
)

// LabUseCase casos de uso CRUD para laboratorios y su configuración.
type LabUseCase struct {
	labRepo  repository.LabRepository
	itemRepo repository.ItemRepository
}

// NewLabUseCase construye el caso de uso.
func NewLabUseCase(labRepo repository.LabRepository, itemRepo repository.ItemRepository) *LabUseCase {
	return &LabUseCase{labRepo: labRepo, itemRepo: itemRepo}
}

// Create crea un laboratorio dentro de la organización indicada.
func (uc *LabUseCase) Create(orgID string, in dto.CreateLabRequest) (*dto.LabResponse, error) {
	if orgID == "" || in.Name == "" || in.RoomNo <= 0 {
		return nil, domain.ErrInvalidInput
	}
	lab := &entity.Lab{
		ID:        uuid.New().String(),
		OrgID:     orgID,
		Name:      in.Name,
		RoomNo:    in.RoomNo,
		CreatedAt: time.Now(),
	}
	if err := uc.labRepo.Create(lab); err != nil {
		return nil, err
	}
	return toLabResponse(lab), nil
}

// GetByID obtiene un laboratorio por ID.
func (uc *LabUseCase) GetByID(id string) (*dto.LabResponse, error) {
	lab, err := uc.labRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lab == nil {
		return nil, domain.ErrNotFound
	}
	return toLabResponse(lab), nil
}

// List lista los laboratorios de una organización.
func (uc *LabUseCase) List(orgID string) ([]*dto.LabResponse, error) {
	labs, err := uc.labRepo.ListByOrg(orgID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LabResponse, 0, len(labs))
	for _, lab := range labs {
		out = append(out, toLabResponse(lab))
	}
	return out, nil
}

// Update modifica nombre y sala.
func (uc *LabUseCase) Update(id string, in dto.UpdateLabRequest) (*dto.LabResponse, error) {
	lab, err := uc.labRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lab == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		lab.Name = *in.Name
	}
	if in.RoomNo != nil {
		if *in.RoomNo <= 0 {
			return nil, domain.ErrInvalidInput
		}
		lab.RoomNo = *in.RoomNo
	}
	if err := uc.labRepo.Update(lab); err != nil {
		return nil, err
	}
	return toLabResponse(lab), nil
}

// Delete elimina un laboratorio sin stock: si algún item del lab tiene un
// contador distinto de cero, se rechaza con ErrConflict. La limpieza es una
// precondición explícita, no una cascada implícita.
func (uc *LabUseCase) Delete(id string) error {
	lab, err := uc.labRepo.GetByID(id)
	if err != nil {
		return err
	}
	if lab == nil {
		return domain.ErrNotFound
	}
	items, err := uc.itemRepo.ListByLab(id, false)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.InStock() {
			return domain.ErrConflict
		}
	}
	return uc.labRepo.Delete(id)
}

// EnsureSettings devuelve la configuración del lab, creándola con los
// valores por defecto si aún no existe. Idempotente y explícito: reemplaza
// al get-or-create escondido en una lectura.
func (uc *LabUseCase) EnsureSettings(labID string) (*dto.LabSettingsResponse, error) {
	lab, err := uc.labRepo.GetByID(labID)
	if err != nil {
		return nil, err
	}
	if lab == nil {
		return nil, domain.ErrNotFound
	}
	settings, err := uc.labRepo.GetSettings(labID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		// Por defecto todas las pestañas visibles
		settings = &entity.LabSettings{
			LabID:         labID,
			ItemsTab:      true,
			SystemsTab:    true,
			CategoriesTab: true,
			BrandsTab:     true,
		}
		if err := uc.labRepo.UpsertSettings(settings); err != nil {
			return nil, err
		}
	}
	return toSettingsResponse(settings), nil
}

// UpdateSettings escribe la configuración de pestañas del lab.
func (uc *LabUseCase) UpdateSettings(labID string, in dto.LabSettingsRequest) (*dto.LabSettingsResponse, error) {
	if _, err := uc.EnsureSettings(labID); err != nil {
		return nil, err
	}
	settings := &entity.LabSettings{
		LabID:         labID,
		ItemsTab:      in.ItemsTab,
		SystemsTab:    in.SystemsTab,
		CategoriesTab: in.CategoriesTab,
		BrandsTab:     in.BrandsTab,
	}
	if err := uc.labRepo.UpsertSettings(settings); err != nil {
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

func toLabResponse(lab *entity.Lab) *dto.LabResponse {
	return &dto.LabResponse{
		ID:        lab.ID,
		OrgID:     lab.OrgID,
		Name:      lab.Name,
		RoomNo:    lab.RoomNo,
		CreatedAt: lab.CreatedAt,
	}
}

func toSettingsResponse(s *entity.LabSettings) *dto.LabSettingsResponse {
	return &dto.LabSettingsResponse{
		LabID:         s.LabID,
		ItemsTab:      s.ItemsTab,
		SystemsTab:    s.SystemsTab,
		CategoriesTab: s.CategoriesTab,
		BrandsTab:     s.BrandsTab,
	}
}
