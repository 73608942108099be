package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labtrack-api/internal/application/dto"
	"github.com/jhoicas/labtrack-api/internal/application/ledger"
	"github.com/jhoicas/labtrack-api/internal/domain/entity"
)

// PurchaseHandler maneja las peticiones HTTP para compras: alta, máquina de
// estados y recepción a stock.
type PurchaseHandler struct {
	uc *ledger.ProcurementUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *ledger.ProcurementUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Create registra una solicitud de compra en estado requested.
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.uc.Submit(c.Context(), ledger.SubmitPurchaseInput{
		LabID:       c.Params("lab_id"),
		ItemID:      in.ItemID,
		NewItemName: in.NewItemName,
		VendorID:    in.VendorID,
		Qty:         in.Qty,
		UnitPrice:   in.UnitPrice,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPurchaseResponse(p))
}

// List lista las compras del lab con paginación.
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	purchases, err := h.uc.ListByLab(c.Params("lab_id"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]*dto.PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, toPurchaseResponse(p))
	}
	return c.JSON(out)
}

// GetByID obtiene una compra.
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.uc.Get(c.Params("purchase_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPurchaseResponse(p))
}

// Approve pasa la compra a approved.
func (h *PurchaseHandler) Approve(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Approve)
}

// Reject pasa la compra a rejected.
func (h *PurchaseHandler) Reject(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Reject)
}

// Complete pasa la compra a completed.
func (h *PurchaseHandler) Complete(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Complete)
}

func (h *PurchaseHandler) transition(c *fiber.Ctx, fn func(ctx context.Context, id string) error) error {
	if err := fn(c.Context(), c.Params("purchase_id")); err != nil {
		return writeError(c, err)
	}
	p, err := h.uc.Get(c.Params("purchase_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPurchaseResponse(p))
}

// Receive acredita la compra completada al stock del item. Idempotente.
func (h *PurchaseHandler) Receive(c *fiber.Ctx) error {
	p, err := h.uc.Receive(c.Context(), c.Params("purchase_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPurchaseResponse(p))
}

// Delete elimina una compra todavía no recibida.
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("purchase_id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	return &dto.PurchaseResponse{
		ID:           p.ID,
		LabID:        p.LabID,
		ItemID:       p.ItemID,
		VendorID:     p.VendorID,
		Qty:          p.Qty,
		UnitPrice:    p.UnitPrice,
		Status:       p.Status,
		AddedToStock: p.AddedToStock,
		CreatedAt:    p.CreatedAt,
	}
}
