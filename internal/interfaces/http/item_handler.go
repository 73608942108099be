package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labtrack-api/internal/application/dto"
	"github.com/jhoicas/labtrack-api/internal/application/usecase"
)

// ItemHandler maneja las peticiones HTTP para items. Los contadores son de
// solo lectura por esta vía: las mutaciones pasan por compras, asignaciones
// y retiros.
type ItemHandler struct {
	uc *usecase.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create registra un item listado con contadores en cero.
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Params("lab_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista los items del lab. ?listed_only=true oculta placeholders.
func (h *ItemHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Params("lab_id"), c.QueryBool("listed_only", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene un item.
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("item_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetCounters devuelve solo los cuatro contadores del item.
func (h *ItemHandler) GetCounters(c *fiber.Ctx) error {
	out, err := h.uc.GetCounters(c.Params("item_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update actualiza los atributos externos del item (nunca contadores).
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Params("item_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un item sin stock.
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("item_id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateUnit registra el detalle (serial/precio) de una unidad del item.
func (h *ItemHandler) CreateUnit(c *fiber.Ctx) error {
	var in dto.ItemUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddUnitInfo(c.Params("item_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListUnits lista los detalles por unidad del item.
func (h *ItemHandler) ListUnits(c *fiber.Ctx) error {
	out, err := h.uc.ListUnitInfo(c.Params("item_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateUnit modifica serial y precio de un detalle.
func (h *ItemHandler) UpdateUnit(c *fiber.Ctx) error {
	var in dto.ItemUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateUnitInfo(c.Params("unit_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteUnit elimina un detalle por unidad.
func (h *ItemHandler) DeleteUnit(c *fiber.Ctx) error {
	if err := h.uc.DeleteUnitInfo(c.Params("unit_id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
