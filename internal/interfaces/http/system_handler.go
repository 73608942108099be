package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labtrack-api/internal/application/dto"
	"github.com/jhoicas/labtrack-api/internal/application/ledger"
	"github.com/jhoicas/labtrack-api/internal/application/usecase"
	"github.com/jhoicas/labtrack-api/internal/domain/entity"
)

// SystemHandler maneja las peticiones HTTP para sistemas y sus componentes
// (asignación, liberación, reasignación, desarme).
type SystemHandler struct {
	uc         *usecase.SystemUseCase
	allocation *ledger.AllocationUseCase
}

// NewSystemHandler construye el handler.
func NewSystemHandler(uc *usecase.SystemUseCase, allocation *ledger.AllocationUseCase) *SystemHandler {
	return &SystemHandler{uc: uc, allocation: allocation}
}

// Create registra un sistema vacío en estado not_working.
func (h *SystemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSystemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Params("lab_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista los sistemas del lab.
func (h *SystemHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Params("lab_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene un sistema.
func (h *SystemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("sys_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update actualiza nombre y/o estado del sistema.
func (h *SystemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSystemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Params("sys_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete desarma el sistema: libera todos sus componentes y lo elimina.
func (h *SystemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("sys_id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListComponents lista las asignaciones vivas de un sistema.
func (h *SystemHandler) ListComponents(c *fiber.Ctx) error {
	out, err := h.uc.ListComponents(c.Params("sys_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListComponentsByItem lista las asignaciones que consumen unidades de un item.
func (h *SystemHandler) ListComponentsByItem(c *fiber.Ctx) error {
	out, err := h.uc.ListComponentsByItem(c.Params("item_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Allocate asigna una unidad de un item a un slot del sistema.
func (h *SystemHandler) Allocate(c *fiber.Ctx) error {
	var in dto.AllocateComponentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	component, err := h.allocation.Allocate(c.Context(), ledger.AllocateInput{
		SystemID:      c.Params("sys_id"),
		ComponentType: in.ComponentType,
		ItemID:        in.ItemID,
		SerialNo:      in.SerialNo,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toComponentResponse(component))
}

// Release libera la unidad de una asignación: vuelve a disponible.
func (h *SystemHandler) Release(c *fiber.Ctx) error {
	if err := h.allocation.Release(c.Context(), c.Params("component_id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reassign cambia el item al que apunta una asignación, ajustando los
// contadores de ambos items en una transacción.
func (h *SystemHandler) Reassign(c *fiber.Ctx) error {
	var in dto.ReassignComponentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.allocation.Reassign(c.Context(), c.Params("component_id"), in.NewItemID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toComponentResponse(component *entity.SystemComponent) *dto.ComponentResponse {
	return &dto.ComponentResponse{
		ID:            component.ID,
		SystemID:      component.SystemID,
		ItemID:        component.ItemID,
		ComponentType: component.ComponentType,
		SerialNo:      component.SerialNo,
		CreatedAt:     component.CreatedAt,
	}
}
