package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labtrack-api/internal/application/dto"
	"github.com/jhoicas/labtrack-api/internal/application/ledger"
	"github.com/jhoicas/labtrack-api/internal/domain/entity"
)

// ArchiveHandler maneja las peticiones HTTP de retiro permanente de stock.
type ArchiveHandler struct {
	uc *ledger.RetirementUseCase
}

// NewArchiveHandler construye el handler.
func NewArchiveHandler(uc *ledger.RetirementUseCase) *ArchiveHandler {
	return &ArchiveHandler{uc: uc}
}

// RetireFromStock retira unidades del pool disponible de un item.
func (h *ArchiveHandler) RetireFromStock(c *fiber.Ctx) error {
	var in dto.RetireFromStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	record, err := h.uc.RetireFromStock(c.Context(), ledger.RetireInput{
		ItemID:  c.Params("item_id"),
		Qty:     in.Qty,
		Reason:  in.Reason,
		Remarks: in.Remarks,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toArchiveResponse(record))
}

// RetireFromAllocation retira la unidad de una asignación viva: pasa de
// en-uso directo a archivado.
func (h *ArchiveHandler) RetireFromAllocation(c *fiber.Ctx) error {
	var in dto.RetireFromAllocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	record, err := h.uc.RetireFromAllocation(c.Context(), c.Params("component_id"), in.Reason, in.Remarks)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toArchiveResponse(record))
}

// ListByLab lista los retiros del lab con paginación.
func (h *ArchiveHandler) ListByLab(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	archives, err := h.uc.ListByLab(c.Params("lab_id"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toArchiveResponses(archives))
}

// ListByItem lista los retiros de un item.
func (h *ArchiveHandler) ListByItem(c *fiber.Ctx) error {
	archives, err := h.uc.ListByItem(c.Params("item_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toArchiveResponses(archives))
}

func toArchiveResponse(a *entity.Archive) *dto.ArchiveResponse {
	return &dto.ArchiveResponse{
		ID:        a.ID,
		LabID:     a.LabID,
		ItemID:    a.ItemID,
		Qty:       a.Qty,
		Reason:    a.Reason,
		Remarks:   a.Remarks,
		CreatedAt: a.CreatedAt,
	}
}

func toArchiveResponses(archives []*entity.Archive) []*dto.ArchiveResponse {
	out := make([]*dto.ArchiveResponse, 0, len(archives))
	for _, a := range archives {
		out = append(out, toArchiveResponse(a))
	}
	return out
}
