package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/labtrack-api/internal/domain"
	"github.com/jhoicas/labtrack-api/internal/domain/entity"
	"github.com/jhoicas/labtrack-api/internal/domain/repository"
	"github.com/jhoicas/labtrack-api/internal/domain/stock"
)

// RetirementUseCase retira unidades del stock usable de forma permanente
// (consumo o depreciación). Las unidades pasan al pool archivado sin encoger
// Total; el registro Archive queda como evidencia inmutable.
type RetirementUseCase struct {
	txRunner    TxRunner
	archiveRepo repository.ArchiveRepository
}

// NewRetirementUseCase construye el caso de uso.
func NewRetirementUseCase(txRunner TxRunner, archiveRepo repository.ArchiveRepository) *RetirementUseCase {
	return &RetirementUseCase{txRunner: txRunner, archiveRepo: archiveRepo}
}

// ListByLab lista los retiros de un laboratorio con paginación.
func (uc *RetirementUseCase) ListByLab(labID string, limit, offset int) ([]*entity.Archive, error) {
	return uc.archiveRepo.ListByLab(labID, limit, offset)
}

// ListByItem lista los retiros de un item.
func (uc *RetirementUseCase) ListByItem(itemID string) ([]*entity.Archive, error) {
	return uc.archiveRepo.ListByItem(itemID)
}

// RetireInput entrada para un retiro desde el pool disponible.
type RetireInput struct {
	ItemID  string
	Qty     int
	Reason  string
	Remarks string
}

func (in RetireInput) validate() error {
	if in.ItemID == "" || in.Qty <= 0 || in.Remarks == "" {
		return domain.ErrInvalidInput
	}
	if !entity.ValidArchiveReason(in.Reason) {
		return domain.ErrInvalidInput
	}
	return nil
}

// RetireFromStock mueve Qty unidades de disponible a archivado y crea el
// registro de retiro, todo en una transacción: o ambas cosas o ninguna.
// Si disponible < Qty se devuelve ErrInsufficientStock sin mutar nada.
func (uc *RetirementUseCase) RetireFromStock(ctx context.Context, in RetireInput) (*entity.Archive, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var record *entity.Archive
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.PurchaseRepository,
		_ repository.ComponentRepository,
		archiveRepo repository.ArchiveRepository,
		_ repository.SystemRepository,
	) error {
		item, err := itemRepo.GetForUpdate(in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		counters, err := item.Counters.Move(stock.PoolAvailable, stock.PoolArchived, in.Qty)
		if err != nil {
			return logInvariant(err, item.ID)
		}
		if err := itemRepo.UpdateCounters(item.ID, counters); err != nil {
			return err
		}
		record = &entity.Archive{
			ID:        uuid.New().String(),
			LabID:     item.LabID,
			ItemID:    item.ID,
			Qty:       in.Qty,
			Reason:    in.Reason,
			Remarks:   in.Remarks,
			CreatedAt: time.Now(),
		}
		return archiveRepo.Create(record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// RetireFromAllocation retira la unidad de una asignación viva: el registro
// de asignación se elimina y la unidad pasa de en-uso directamente a
// archivado (no vuelve a disponible), en la misma transacción.
func (uc *RetirementUseCase) RetireFromAllocation(ctx context.Context, componentID, reason, remarks string) (*entity.Archive, error) {
	if componentID == "" || remarks == "" || !entity.ValidArchiveReason(reason) {
		return nil, domain.ErrInvalidInput
	}
	var record *entity.Archive
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.PurchaseRepository,
		componentRepo repository.ComponentRepository,
		archiveRepo repository.ArchiveRepository,
		_ repository.SystemRepository,
	) error {
		// FOR UPDATE: un retiro o liberación concurrente del mismo
		// componente se serializa sobre esta fila, no solo sobre el item.
		component, err := componentRepo.GetForUpdate(componentID)
		if err != nil {
			return err
		}
		if component == nil {
			return domain.ErrNotFound
		}
		item, err := itemRepo.GetForUpdate(component.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		counters, err := item.Counters.Move(stock.PoolInUse, stock.PoolArchived, 1)
		if err != nil {
			return logInvariant(err, item.ID)
		}
		if err := itemRepo.UpdateCounters(item.ID, counters); err != nil {
			return err
		}
		if err := componentRepo.Delete(component.ID); err != nil {
			return err
		}
		record = &entity.Archive{
			ID:        uuid.New().String(),
			LabID:     item.LabID,
			ItemID:    item.ID,
			Qty:       1,
			Reason:    reason,
			Remarks:   remarks,
			CreatedAt: time.Now(),
		}
		return archiveRepo.Create(record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}
