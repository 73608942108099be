package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labtrack-api/internal/application/ledger"
	"github.com/jhoicas/labtrack-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LabUC       *usecase.LabUseCase
	ItemUC      *usecase.ItemUseCase
	SystemUC    *usecase.SystemUseCase
	CatalogUC   *usecase.CatalogUseCase
	Procurement *ledger.ProcurementUseCase
	Allocation  *ledger.AllocationUseCase
	Retirement  *ledger.RetirementUseCase
}

// Router registra las rutas de la API. Todo va detrás de ScopeMiddleware:
// esta API no autentica, solo acota los datos a la organización del header.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", ScopeMiddleware())

	// Labs y configuración
	labHandler := NewLabHandler(deps.LabUC)
	labs := api.Group("/labs")
	labs.Post("/", labHandler.Create)
	labs.Get("/", labHandler.List)
	labs.Get("/:lab_id", labHandler.GetByID)
	labs.Put("/:lab_id", labHandler.Update)
	labs.Delete("/:lab_id", labHandler.Delete)
	labs.Post("/:lab_id/settings", labHandler.EnsureSettings)
	labs.Put("/:lab_id/settings", labHandler.UpdateSettings)

	// Items
	itemHandler := NewItemHandler(deps.ItemUC)
	labs.Post("/:lab_id/items", itemHandler.Create)
	labs.Get("/:lab_id/items", itemHandler.List)
	items := api.Group("/items")
	items.Get("/:item_id", itemHandler.GetByID)
	items.Get("/:item_id/counters", itemHandler.GetCounters)
	items.Put("/:item_id", itemHandler.Update)
	items.Delete("/:item_id", itemHandler.Delete)
	items.Post("/:item_id/units", itemHandler.CreateUnit)
	items.Get("/:item_id/units", itemHandler.ListUnits)
	units := api.Group("/units")
	units.Put("/:unit_id", itemHandler.UpdateUnit)
	units.Delete("/:unit_id", itemHandler.DeleteUnit)

	// Compras: alta, máquina de estados y recepción a stock
	purchaseHandler := NewPurchaseHandler(deps.Procurement)
	labs.Post("/:lab_id/purchases", purchaseHandler.Create)
	labs.Get("/:lab_id/purchases", purchaseHandler.List)
	purchases := api.Group("/purchases")
	purchases.Get("/:purchase_id", purchaseHandler.GetByID)
	purchases.Post("/:purchase_id/approve", purchaseHandler.Approve)
	purchases.Post("/:purchase_id/reject", purchaseHandler.Reject)
	purchases.Post("/:purchase_id/complete", purchaseHandler.Complete)
	purchases.Post("/:purchase_id/receive", purchaseHandler.Receive)
	purchases.Delete("/:purchase_id", purchaseHandler.Delete)

	// Sistemas y componentes
	systemHandler := NewSystemHandler(deps.SystemUC, deps.Allocation)
	labs.Post("/:lab_id/systems", systemHandler.Create)
	labs.Get("/:lab_id/systems", systemHandler.List)
	systems := api.Group("/systems")
	systems.Get("/:sys_id", systemHandler.GetByID)
	systems.Put("/:sys_id", systemHandler.Update)
	systems.Delete("/:sys_id", systemHandler.Delete)
	systems.Get("/:sys_id/components", systemHandler.ListComponents)
	systems.Post("/:sys_id/components", systemHandler.Allocate)
	items.Get("/:item_id/components", systemHandler.ListComponentsByItem)
	components := api.Group("/components")
	components.Delete("/:component_id", systemHandler.Release)
	components.Put("/:component_id/item", systemHandler.Reassign)

	// Retiros
	archiveHandler := NewArchiveHandler(deps.Retirement)
	items.Post("/:item_id/retire", archiveHandler.RetireFromStock)
	components.Post("/:component_id/retire", archiveHandler.RetireFromAllocation)
	labs.Get("/:lab_id/archives", archiveHandler.ListByLab)
	items.Get("/:item_id/archives", archiveHandler.ListByItem)

	// Catálogo: categorías, marcas y proveedores
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	labs.Post("/:lab_id/categories", catalogHandler.CreateCategory)
	labs.Get("/:lab_id/categories", catalogHandler.ListCategories)
	api.Delete("/categories/:category_id", catalogHandler.DeleteCategory)
	labs.Post("/:lab_id/brands", catalogHandler.CreateBrand)
	labs.Get("/:lab_id/brands", catalogHandler.ListBrands)
	api.Delete("/brands/:brand_id", catalogHandler.DeleteBrand)
	vendors := api.Group("/vendors")
	vendors.Post("/", catalogHandler.CreateVendor)
	vendors.Get("/", catalogHandler.ListVendors)
	vendors.Delete("/:vendor_id", catalogHandler.DeleteVendor)
}
