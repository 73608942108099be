package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labtrack-api/internal/application/dto"
	"github.com/jhoicas/labtrack-api/internal/application/usecase"
)

// CatalogHandler maneja categorías, marcas y proveedores.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateCategory(c.Params("lab_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.uc.ListCategories(c.Params("lab_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteCategory elimina la categoría y deja sin categoría a sus items.
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.uc.DeleteCategory(c.Params("category_id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CatalogHandler) CreateBrand(c *fiber.Ctx) error {
	var in dto.CreateBrandRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateBrand(c.Params("lab_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CatalogHandler) ListBrands(c *fiber.Ctx) error {
	out, err := h.uc.ListBrands(c.Params("lab_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteBrand elimina la marca y deja sin marca a sus items.
func (h *CatalogHandler) DeleteBrand(c *fiber.Ctx) error {
	if err := h.uc.DeleteBrand(c.Params("brand_id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CatalogHandler) CreateVendor(c *fiber.Ctx) error {
	var in dto.CreateVendorRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateVendor(GetOrgID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CatalogHandler) ListVendors(c *fiber.Ctx) error {
	out, err := h.uc.ListVendors(GetOrgID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteVendor elimina el proveedor y deja sin proveedor a sus compras.
func (h *CatalogHandler) DeleteVendor(c *fiber.Ctx) error {
	if err := h.uc.DeleteVendor(c.Params("vendor_id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
