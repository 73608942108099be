package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labtrack-api/internal/application/dto"
	"github.com/jhoicas/labtrack-api/internal/application/ledger"
	"github.com/jhoicas/labtrack-api/internal/application/usecase"
	"github.com/jhoicas/labtrack-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/labtrack-api/internal/interfaces/http"
)

const testOrgID = "org-test"

// buildTestApp arma la API completa sobre el backend en memoria.
func buildTestApp() *fiber.App {
	st := memory.NewStore()
	runner := memory.NewTxRunner(st)

	procurementUC := ledger.NewProcurementUseCase(runner, st.Purchases(), st.Items(), st.Vendors())
	allocationUC := ledger.NewAllocationUseCase(runner)
	retirementUC := ledger.NewRetirementUseCase(runner, st.Archives())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		LabUC:       usecase.NewLabUseCase(st.Labs(), st.Items()),
		ItemUC:      usecase.NewItemUseCase(st.Items(), st.Categories(), st.Brands(), st.ItemUnits()),
		SystemUC:    usecase.NewSystemUseCase(st.Systems(), st.Components(), allocationUC),
		CatalogUC:   usecase.NewCatalogUseCase(st.Categories(), st.Brands(), st.Vendors(), st.Items(), st.Purchases()),
		Procurement: procurementUC,
		Allocation:  allocationUC,
		Retirement:  retirementUC,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Org-ID", testOrgID)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return out
}

func TestScopeMiddlewareRequiresOrgHeader(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/labs/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHealthIsPublic(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestPurchaseLifecycleOverHTTP(t *testing.T) {
	app := buildTestApp()

	// Lab
	resp := doJSON(t, app, http.MethodPost, "/api/labs/", dto.CreateLabRequest{Name: "Lab de Redes", RoomNo: 101})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	lab := decode[dto.LabResponse](t, resp)

	// Compra de un item nuevo
	resp = doJSON(t, app, http.MethodPost, "/api/labs/"+lab.ID+"/purchases", map[string]any{
		"new_item_name": "switch 24 puertos",
		"qty":           3,
		"unit_price":    "120.50",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	purchase := decode[dto.PurchaseResponse](t, resp)
	assert.Equal(t, "requested", purchase.Status)

	// requested → approved → completed → recibido
	resp = doJSON(t, app, http.MethodPost, "/api/purchases/"+purchase.ID+"/approve", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPost, "/api/purchases/"+purchase.ID+"/complete", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPost, "/api/purchases/"+purchase.ID+"/receive", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	received := decode[dto.PurchaseResponse](t, resp)
	assert.True(t, received.AddedToStock)

	// El placeholder quedó listado y acreditado
	resp = doJSON(t, app, http.MethodGet, "/api/items/"+purchase.ItemID+"/counters", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	counters := decode[dto.CountersDTO](t, resp)
	assert.Equal(t, dto.CountersDTO{Total: 3, Available: 3}, counters)

	// Una transición inválida responde 409
	resp = doJSON(t, app, http.MethodPost, "/api/purchases/"+purchase.ID+"/approve", nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INVALID_STATE", errBody.Code)
}

func TestAllocationOverHTTP(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/labs/", dto.CreateLabRequest{Name: "Lab A", RoomNo: 1})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	lab := decode[dto.LabResponse](t, resp)

	// Item con stock vía compra recibida
	resp = doJSON(t, app, http.MethodPost, "/api/labs/"+lab.ID+"/purchases", map[string]any{
		"new_item_name": "monitor", "qty": 2, "unit_price": "80",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	purchase := decode[dto.PurchaseResponse](t, resp)
	doJSON(t, app, http.MethodPost, "/api/purchases/"+purchase.ID+"/approve", nil)
	doJSON(t, app, http.MethodPost, "/api/purchases/"+purchase.ID+"/complete", nil)
	doJSON(t, app, http.MethodPost, "/api/purchases/"+purchase.ID+"/receive", nil)

	resp = doJSON(t, app, http.MethodPost, "/api/labs/"+lab.ID+"/systems", dto.CreateSystemRequest{Name: "pc-01"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	sys := decode[dto.SystemResponse](t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/systems/"+sys.ID+"/components", dto.AllocateComponentRequest{
		ItemID: purchase.ItemID, ComponentType: "Monitor",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	component := decode[dto.ComponentResponse](t, resp)

	resp = doJSON(t, app, http.MethodGet, "/api/items/"+purchase.ItemID+"/counters", nil)
	counters := decode[dto.CountersDTO](t, resp)
	assert.Equal(t, dto.CountersDTO{Total: 2, Available: 1, InUse: 1}, counters)

	// Retirar la unidad montada
	resp = doJSON(t, app, http.MethodPost, "/api/components/"+component.ID+"/retire", dto.RetireFromAllocationRequest{
		Reason: "depreciation", Remarks: "pantalla quemada",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/items/"+purchase.ItemID+"/counters", nil)
	counters = decode[dto.CountersDTO](t, resp)
	assert.Equal(t, dto.CountersDTO{Total: 2, Available: 1, Archived: 1}, counters)
}

func TestAllocateWithoutStockReturnsConflict(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/labs/", dto.CreateLabRequest{Name: "Lab B", RoomNo: 2})
	lab := decode[dto.LabResponse](t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/labs/"+lab.ID+"/items", dto.CreateItemRequest{Name: "teclado"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	item := decode[dto.ItemResponse](t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/labs/"+lab.ID+"/systems", dto.CreateSystemRequest{Name: "pc-02"})
	sys := decode[dto.SystemResponse](t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/systems/"+sys.ID+"/components", dto.AllocateComponentRequest{
		ItemID: item.ID, ComponentType: "Keyboard",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)
}

func TestLabSettingsEnsureIsIdempotent(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/labs/", dto.CreateLabRequest{Name: "Lab C", RoomNo: 3})
	lab := decode[dto.LabResponse](t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/labs/"+lab.ID+"/settings", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	first := decode[dto.LabSettingsResponse](t, resp)

	// Personalizar y volver a asegurar: no se pisa lo guardado
	resp = doJSON(t, app, http.MethodPut, "/api/labs/"+lab.ID+"/settings", dto.LabSettingsRequest{
		ItemsTab: true, SystemsTab: false, CategoriesTab: true, BrandsTab: false,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/labs/"+lab.ID+"/settings", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	again := decode[dto.LabSettingsResponse](t, resp)
	assert.Equal(t, lab.ID, first.LabID)
	assert.True(t, again.ItemsTab)
	assert.False(t, again.SystemsTab)
}
