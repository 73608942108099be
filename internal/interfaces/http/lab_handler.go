package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labtrack-api/internal/application/dto"
	"github.com/jhoicas/labtrack-api/internal/application/usecase"
)

// LabHandler maneja las peticiones HTTP para laboratorios y su configuración.
type LabHandler struct {
	uc *usecase.LabUseCase
}

// NewLabHandler construye el handler.
func NewLabHandler(uc *usecase.LabUseCase) *LabHandler {
	return &LabHandler{uc: uc}
}

// Create registra un laboratorio en la organización del contexto.
func (h *LabHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLabRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(GetOrgID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista los laboratorios de la organización.
func (h *LabHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetOrgID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene un laboratorio.
func (h *LabHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("lab_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update actualiza nombre y/o sala.
func (h *LabHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLabRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Params("lab_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un laboratorio sin stock vivo.
func (h *LabHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("lab_id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// EnsureSettings crea la configuración del lab si no existe y la devuelve.
// Idempotente: llamadas repetidas devuelven la misma configuración.
func (h *LabHandler) EnsureSettings(c *fiber.Ctx) error {
	out, err := h.uc.EnsureSettings(c.Params("lab_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateSettings reemplaza la configuración de pestañas del lab.
func (h *LabHandler) UpdateSettings(c *fiber.Ctx) error {
	var in dto.LabSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateSettings(c.Params("lab_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
