package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/labtrack-api/internal/domain"
	"github.com/jhoicas/labtrack-api/internal/domain/entity"
	"github.com/jhoicas/labtrack-api/internal/domain/repository"
	"github.com/jhoicas/labtrack-api/pkg/shortcode"
)

// ProcurementUseCase maneja el ciclo de vida de las compras y su recepción
// a stock. La recepción es la única operación de este ledger que toca los
// contadores del item, y es idempotente: recibir dos veces acredita una.
type ProcurementUseCase struct {
	txRunner     TxRunner
	purchaseRepo repository.PurchaseRepository
	itemRepo     repository.ItemRepository
	vendorRepo   repository.VendorRepository
}

// NewProcurementUseCase construye el caso de uso.
func NewProcurementUseCase(
	txRunner TxRunner,
	purchaseRepo repository.PurchaseRepository,
	itemRepo repository.ItemRepository,
	vendorRepo repository.VendorRepository,
) *ProcurementUseCase {
	return &ProcurementUseCase{
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		itemRepo:     itemRepo,
		vendorRepo:   vendorRepo,
	}
}

// SubmitPurchaseInput entrada para registrar una solicitud de compra.
// Exactamente uno de ItemID (item ya catalogado) o NewItemName (crea un
// placeholder no listado) debe venir informado.
type SubmitPurchaseInput struct {
	LabID       string
	ItemID      string
	NewItemName string
	VendorID    string
	Qty         int
	UnitPrice   decimal.Decimal
}

// Submit registra la solicitud en estado requested. Si la compra es de un
// item aún no catalogado, el placeholder (no listado, contadores en cero)
// se crea en la misma transacción que la compra, nunca durante la recepción.
func (uc *ProcurementUseCase) Submit(ctx context.Context, in SubmitPurchaseInput) (*entity.Purchase, error) {
	if in.LabID == "" || in.Qty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if (in.ItemID == "") == (in.NewItemName == "") {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.VendorID != "" {
		vendor, err := uc.vendorRepo.GetByID(in.VendorID)
		if err != nil {
			return nil, err
		}
		if vendor == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	purchase := &entity.Purchase{
		ID:        uuid.New().String(),
		LabID:     in.LabID,
		ItemID:    in.ItemID,
		VendorID:  in.VendorID,
		Qty:       in.Qty,
		UnitPrice: in.UnitPrice,
		Status:    entity.PurchaseRequested,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var placeholder *entity.Item
	if in.NewItemName != "" {
		code, err := shortcode.Generate(uc.itemRepo.CodeExists)
		if err != nil {
			return nil, err
		}
		placeholder = &entity.Item{
			ID:        uuid.New().String(),
			LabID:     in.LabID,
			Code:      code,
			Name:      in.NewItemName,
			Listed:    false,
			CreatedAt: now,
			UpdatedAt: now,
		}
		purchase.ItemID = placeholder.ID
	} else {
		item, err := uc.itemRepo.GetByID(in.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil || !item.Listed {
			return nil, domain.ErrNotFound
		}
	}

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.ComponentRepository,
		_ repository.ArchiveRepository,
		_ repository.SystemRepository,
	) error {
		if placeholder != nil {
			if err := itemRepo.Create(placeholder); err != nil {
				return err
			}
		}
		return purchaseRepo.Create(purchase)
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

// Get obtiene una compra por ID.
func (uc *ProcurementUseCase) Get(purchaseID string) (*entity.Purchase, error) {
	p, err := uc.purchaseRepo.GetByID(purchaseID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// ListByLab lista las compras de un laboratorio con paginación.
func (uc *ProcurementUseCase) ListByLab(labID string, limit, offset int) ([]*entity.Purchase, error) {
	return uc.purchaseRepo.ListByLab(labID, limit, offset)
}

// Approve pasa la compra de requested a approved.
func (uc *ProcurementUseCase) Approve(ctx context.Context, purchaseID string) error {
	return uc.transition(ctx, purchaseID, entity.PurchaseApproved)
}

// Reject pasa la compra de requested a rejected (terminal).
func (uc *ProcurementUseCase) Reject(ctx context.Context, purchaseID string) error {
	return uc.transition(ctx, purchaseID, entity.PurchaseRejected)
}

// Complete pasa la compra de approved a completed (terminal).
func (uc *ProcurementUseCase) Complete(ctx context.Context, purchaseID string) error {
	return uc.transition(ctx, purchaseID, entity.PurchaseCompleted)
}

// transition aplica una transición de la máquina de estados con la fila
// bloqueada, para que dos transiciones concurrentes no se pisen.
func (uc *ProcurementUseCase) transition(ctx context.Context, purchaseID, to string) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.ItemRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.ComponentRepository,
		_ repository.ArchiveRepository,
		_ repository.SystemRepository,
	) error {
		p, err := purchaseRepo.GetForUpdate(purchaseID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if !p.CanTransition(to) {
			return domain.ErrInvalidState
		}
		p.Status = to
		p.UpdatedAt = time.Now()
		return purchaseRepo.Update(p)
	})
}

// Receive acredita la compra al stock del item: total y disponible suben en
// Qty y, si el item era un placeholder, pasa a listado. El flag
// added_to_stock se escribe en la misma transacción que el crédito, así un
// crash entre ambos nunca deja el flag sin crédito ni al revés.
//
// Idempotente: si added_to_stock ya es true la llamada es no-op y devuelve
// la compra tal cual, sin doble acreditación.
func (uc *ProcurementUseCase) Receive(ctx context.Context, purchaseID string) (*entity.Purchase, error) {
	var received *entity.Purchase
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.ComponentRepository,
		_ repository.ArchiveRepository,
		_ repository.SystemRepository,
	) error {
		p, err := purchaseRepo.GetForUpdate(purchaseID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.AddedToStock {
			received = p
			return nil
		}
		if p.Status != entity.PurchaseCompleted {
			return domain.ErrInvalidState
		}

		item, err := itemRepo.GetForUpdate(p.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		counters, err := item.Counters.Credit(p.Qty)
		if err != nil {
			return logInvariant(err, item.ID)
		}
		now := time.Now()
		item.Counters = counters
		item.Listed = true
		item.UpdatedAt = now
		if err := itemRepo.Update(item); err != nil {
			return err
		}

		p.AddedToStock = true
		p.UpdatedAt = now
		if err := purchaseRepo.Update(p); err != nil {
			return err
		}
		received = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return received, nil
}

// Delete elimina una compra todavía no recibida. Si la compra apuntaba a un
// placeholder no listado, el placeholder se elimina con ella (era visible
// solo a través de la compra). Una compra ya recibida no se puede borrar.
func (uc *ProcurementUseCase) Delete(ctx context.Context, purchaseID string) error {
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.ComponentRepository,
		_ repository.ArchiveRepository,
		_ repository.SystemRepository,
	) error {
		p, err := purchaseRepo.GetForUpdate(purchaseID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.AddedToStock {
			return domain.ErrConflict
		}
		item, err := itemRepo.GetByID(p.ItemID)
		if err != nil {
			return err
		}
		if err := purchaseRepo.Delete(p.ID); err != nil {
			return err
		}
		if item != nil && !item.Listed {
			return itemRepo.Delete(item.ID)
		}
		return nil
	})
}
