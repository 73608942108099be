package ledger

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/labtrack-api/internal/domain"
	"github.com/jhoicas/labtrack-api/internal/domain/entity"
	"github.com/jhoicas/labtrack-api/internal/domain/repository"
	"github.com/jhoicas/labtrack-api/internal/domain/stock"
)

// AllocationUseCase asigna unidades de items a slots de sistemas y las
// libera o reasigna. Cada registro de asignación representa exactamente una
// unidad física: asignar mueve 1 de disponible a en-uso, liberar lo inverso.
type AllocationUseCase struct {
	txRunner TxRunner
}

// NewAllocationUseCase construye el caso de uso. Todos los accesos a items,
// sistemas y componentes van por los repos atados a la transacción.
func NewAllocationUseCase(txRunner TxRunner) *AllocationUseCase {
	return &AllocationUseCase{txRunner: txRunner}
}

// AllocateInput entrada para asignar una unidad a un slot de un sistema.
type AllocateInput struct {
	SystemID      string
	ComponentType string
	ItemID        string
	SerialNo      string
}

// Allocate crea el registro de asignación y mueve una unidad de disponible
// a en-uso, en una sola transacción. Si el item no tiene disponibilidad, no
// se crea nada y se devuelve ErrInsufficientStock.
//
// Si el slot ya tiene una asignación viva en el mismo sistema, el registro
// viejo se deja en su lugar: reemplazar implicaría doble semántica oculta,
// el caller debe liberar primero.
func (uc *AllocationUseCase) Allocate(ctx context.Context, in AllocateInput) (*entity.SystemComponent, error) {
	if in.SystemID == "" || in.ComponentType == "" || in.ItemID == "" {
		return nil, domain.ErrInvalidInput
	}

	component := &entity.SystemComponent{
		ID:            uuid.New().String(),
		SystemID:      in.SystemID,
		ItemID:        in.ItemID,
		ComponentType: in.ComponentType,
		SerialNo:      in.SerialNo,
		CreatedAt:     time.Now(),
	}
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.PurchaseRepository,
		componentRepo repository.ComponentRepository,
		_ repository.ArchiveRepository,
		systemRepo repository.SystemRepository,
	) error {
		// La existencia del sistema se verifica dentro de la transacción:
		// una asignación que corre contra el desmantelado del mismo sistema
		// no debe dejar un componente huérfano.
		sys, err := systemRepo.GetByID(in.SystemID)
		if err != nil {
			return err
		}
		if sys == nil {
			return domain.ErrNotFound
		}
		item, err := itemRepo.GetForUpdate(in.ItemID)
		if err != nil {
			return err
		}
		if item == nil || !item.Listed {
			return domain.ErrNotFound
		}
		counters, err := item.Counters.Move(stock.PoolAvailable, stock.PoolInUse, 1)
		if err != nil {
			return logInvariant(err, item.ID)
		}
		if err := itemRepo.UpdateCounters(item.ID, counters); err != nil {
			return err
		}
		return componentRepo.Create(component)
	})
	if err != nil {
		return nil, err
	}
	return component, nil
}

// Release elimina el registro de asignación y devuelve la unidad de en-uso
// a disponible, en una sola transacción.
func (uc *AllocationUseCase) Release(ctx context.Context, componentID string) error {
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.PurchaseRepository,
		componentRepo repository.ComponentRepository,
		_ repository.ArchiveRepository,
		_ repository.SystemRepository,
	) error {
		return releaseComponent(itemRepo, componentRepo, componentID)
	})
}

// Reassign cambia el item al que apunta una asignación: el item viejo
// recupera su unidad (en-uso → disponible) y el nuevo entrega una
// (disponible → en-uso), todo en una transacción. Si el nuevo item no tiene
// disponibilidad, la operación completa se rechaza y la asignación original
// queda intacta: nunca hay intercambio parcial.
//
// Ambos items se bloquean en orden ascendente de ID para que dos
// reasignaciones concurrentes sobre el mismo par en orden opuesto no se
// bloqueen mutuamente.
func (uc *AllocationUseCase) Reassign(ctx context.Context, componentID, newItemID string) error {
	if newItemID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.PurchaseRepository,
		componentRepo repository.ComponentRepository,
		_ repository.ArchiveRepository,
		_ repository.SystemRepository,
	) error {
		// Bloquear primero el registro de asignación: dos operaciones
		// concurrentes sobre el mismo componente se serializan aquí y la
		// segunda lo encuentra ya borrado o reapuntado.
		component, err := componentRepo.GetForUpdate(componentID)
		if err != nil {
			return err
		}
		if component == nil {
			return domain.ErrNotFound
		}
		if component.ItemID == newItemID {
			return nil
		}

		// Bloqueo en orden determinista por ID
		ids := []string{component.ItemID, newItemID}
		sort.Strings(ids)
		locked := make(map[string]*entity.Item, 2)
		for _, id := range ids {
			item, err := itemRepo.GetForUpdate(id)
			if err != nil {
				return err
			}
			locked[id] = item
		}
		oldItem := locked[component.ItemID]
		newItem := locked[newItemID]
		if oldItem == nil || newItem == nil || !newItem.Listed {
			return domain.ErrNotFound
		}

		// Post-estados completos antes de escribir nada (todo o nada)
		newCounters, err := newItem.Counters.Move(stock.PoolAvailable, stock.PoolInUse, 1)
		if err != nil {
			return logInvariant(err, newItem.ID)
		}
		oldCounters, err := oldItem.Counters.Move(stock.PoolInUse, stock.PoolAvailable, 1)
		if err != nil {
			return logInvariant(err, oldItem.ID)
		}

		if err := itemRepo.UpdateCounters(oldItem.ID, oldCounters); err != nil {
			return err
		}
		if err := itemRepo.UpdateCounters(newItem.ID, newCounters); err != nil {
			return err
		}
		return componentRepo.UpdateItem(component.ID, newItemID)
	})
}

// DismantleSystem libera todos los componentes de un sistema y elimina el
// sistema, en una sola transacción. Es la limpieza explícita que reemplaza
// al borrado en cascada implícito: los contadores de cada item asignado
// vuelven a disponible antes de que el sistema desaparezca.
func (uc *AllocationUseCase) DismantleSystem(ctx context.Context, systemID string) error {
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.PurchaseRepository,
		componentRepo repository.ComponentRepository,
		_ repository.ArchiveRepository,
		systemRepo repository.SystemRepository,
	) error {
		sys, err := systemRepo.GetByID(systemID)
		if err != nil {
			return err
		}
		if sys == nil {
			return domain.ErrNotFound
		}
		components, err := componentRepo.ListBySystem(systemID)
		if err != nil {
			return err
		}
		// Orden determinista de liberación por item para evitar interbloqueo
		// con otras operaciones multi-item
		sort.Slice(components, func(i, j int) bool {
			return components[i].ItemID < components[j].ItemID
		})
		for _, c := range components {
			if err := releaseComponent(itemRepo, componentRepo, c.ID); err != nil {
				return err
			}
		}
		return systemRepo.Delete(systemID)
	})
}

// releaseComponent devuelve la unidad de un componente a disponible y borra
// el registro. Debe llamarse con los repos de una transacción en curso.
// El registro se lee con FOR UPDATE: una liberación concurrente del mismo
// componente espera aquí y ve nil tras el commit de la primera, de modo que
// la unidad nunca se devuelve dos veces.
func releaseComponent(
	itemRepo repository.ItemRepository,
	componentRepo repository.ComponentRepository,
	componentID string,
) error {
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
	counters, err := item.Counters.Move(stock.PoolInUse, stock.PoolAvailable, 1)
	if err != nil {
		return logInvariant(err, item.ID)
	}
	if err := itemRepo.UpdateCounters(item.ID, counters); err != nil {
		return err
	}
	return componentRepo.Delete(component.ID)
}

// logInvariant registra violaciones del invariante de contadores antes de
// propagarlas. Son bugs internos, nunca se corrigen en silencio.
func logInvariant(err error, itemID string) error {
	if errors.Is(err, domain.ErrInvariantViolation) {
		log.Error().Err(err).Str("item_id", itemID).Msg("invariante de contadores violado")
	}
	return err
}
