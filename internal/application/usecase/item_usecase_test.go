package usecase_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labtrack-api/internal/application/dto"
	"github.com/jhoicas/labtrack-api/internal/application/usecase"
	"github.com/jhoicas/labtrack-api/internal/domain"
	"github.com/jhoicas/labtrack-api/internal/domain/entity"
	"github.com/jhoicas/labtrack-api/internal/domain/stock"
	"github.com/jhoicas/labtrack-api/internal/infrastructure/memory"
)

func newItemFixture() (*memory.Store, *usecase.ItemUseCase) {
	st := memory.NewStore()
	return st, usecase.NewItemUseCase(st.Items(), st.Categories(), st.Brands(), st.ItemUnits())
}

func TestItemCreateStartsListedWithZeroCounters(t *testing.T) {
	_, uc := newItemFixture()

	out, err := uc.Create("lab-1", dto.CreateItemRequest{Name: "osciloscopio", UnitOfMeasure: "unidad"})
	require.NoError(t, err)
	assert.True(t, out.Listed)
	assert.Equal(t, dto.CountersDTO{}, out.Counters)
	assert.Len(t, out.Code, 5)
}

func TestItemCreateValidatesRefs(t *testing.T) {
	st, uc := newItemFixture()

	// Categoría de otro lab
	cat := &entity.Category{ID: uuid.New().String(), LabID: "otro-lab", Name: "medición", CreatedAt: time.Now()}
	require.NoError(t, st.Categories().Create(cat))

	_, err := uc.Create("lab-1", dto.CreateItemRequest{Name: "multímetro", CategoryID: cat.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create("lab-1", dto.CreateItemRequest{Name: "multímetro", BrandID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemUpdateNeverTouchesCounters(t *testing.T) {
	st, uc := newItemFixture()
	out, err := uc.Create("lab-1", dto.CreateItemRequest{Name: "fuente"})
	require.NoError(t, err)

	item, err := st.Items().GetByID(out.ID)
	require.NoError(t, err)
	item.Counters = stock.Counters{Total: 4, Available: 4}
	require.NoError(t, st.Items().Update(item))

	name := "fuente regulada"
	updated, err := uc.Update(out.ID, dto.UpdateItemRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "fuente regulada", updated.Name)
	assert.Equal(t, dto.CountersDTO{Total: 4, Available: 4}, updated.Counters)
}

func TestItemDeleteRejectedWhileInStock(t *testing.T) {
	st, uc := newItemFixture()
	out, err := uc.Create("lab-1", dto.CreateItemRequest{Name: "protoboard"})
	require.NoError(t, err)

	item, err := st.Items().GetByID(out.ID)
	require.NoError(t, err)
	item.Counters = stock.Counters{Total: 1, Archived: 1}
	require.NoError(t, st.Items().Update(item))

	// Hasta el stock archivado bloquea el borrado: el historial debe
	// seguir apuntando a un item existente
	assert.ErrorIs(t, uc.Delete(out.ID), domain.ErrConflict)

	item.Counters = stock.Counters{}
	require.NoError(t, st.Items().Update(item))
	assert.NoError(t, uc.Delete(out.ID))
}

func TestLabDeleteRequiresCleanItems(t *testing.T) {
	st := memory.NewStore()
	labUC := usecase.NewLabUseCase(st.Labs(), st.Items())

	lab, err := labUC.Create("org-1", dto.CreateLabRequest{Name: "Lab Física", RoomNo: 12})
	require.NoError(t, err)

	item := &entity.Item{
		ID: uuid.New().String(), LabID: lab.ID, Code: "AAAAA", Name: "imán",
		Listed: true, Counters: stock.Counters{Total: 1, Available: 1},
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, st.Items().Create(item))

	assert.ErrorIs(t, labUC.Delete(lab.ID), domain.ErrConflict)

	require.NoError(t, st.Items().UpdateCounters(item.ID, stock.Counters{}))
	assert.NoError(t, labUC.Delete(lab.ID))
}

func TestEnsureSettingsIsIdempotent(t *testing.T) {
	st := memory.NewStore()
	labUC := usecase.NewLabUseCase(st.Labs(), st.Items())

	lab, err := labUC.Create("org-1", dto.CreateLabRequest{Name: "Lab Química", RoomNo: 3})
	require.NoError(t, err)

	first, err := labUC.EnsureSettings(lab.ID)
	require.NoError(t, err)
	assert.True(t, first.ItemsTab)

	// Personalizar y volver a asegurar: lo guardado no se pisa
	_, err = labUC.UpdateSettings(lab.ID, dto.LabSettingsRequest{ItemsTab: true})
	require.NoError(t, err)
	again, err := labUC.EnsureSettings(lab.ID)
	require.NoError(t, err)
	assert.False(t, again.SystemsTab)

	_, err = labUC.EnsureSettings("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogDeleteClearsReferences(t *testing.T) {
	st := memory.NewStore()
	catalogUC := usecase.NewCatalogUseCase(st.Categories(), st.Brands(), st.Vendors(), st.Items(), st.Purchases())
	itemUC := usecase.NewItemUseCase(st.Items(), st.Categories(), st.Brands(), st.ItemUnits())

	cat, err := catalogUC.CreateCategory("lab-1", dto.CreateCategoryRequest{Name: "óptica"})
	require.NoError(t, err)
	item, err := itemUC.Create("lab-1", dto.CreateItemRequest{Name: "lente", CategoryID: cat.ID})
	require.NoError(t, err)

	require.NoError(t, catalogUC.DeleteCategory(cat.ID))

	got, err := itemUC.GetByID(item.ID)
	require.NoError(t, err)
	assert.Empty(t, got.CategoryID)
}

func TestUnitInfoCappedByTotal(t *testing.T) {
	st, uc := newItemFixture()
	out, err := uc.Create("lab-1", dto.CreateItemRequest{Name: "proyector"})
	require.NoError(t, err)

	item, err := st.Items().GetByID(out.ID)
	require.NoError(t, err)
	item.Counters = stock.Counters{Total: 2, Available: 2}
	require.NoError(t, st.Items().Update(item))

	_, err = uc.AddUnitInfo(out.ID, dto.ItemUnitRequest{SerialNo: "PRJ-001", Price: decimal.NewFromInt(900)})
	require.NoError(t, err)
	_, err = uc.AddUnitInfo(out.ID, dto.ItemUnitRequest{SerialNo: "PRJ-002"})
	require.NoError(t, err)

	// Nunca más detalles que unidades totales
	_, err = uc.AddUnitInfo(out.ID, dto.ItemUnitRequest{SerialNo: "PRJ-003"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	units, err := uc.ListUnitInfo(out.ID)
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "PRJ-001", units[0].SerialNo)
}

func TestUnitInfoValidationAndLifecycle(t *testing.T) {
	st, uc := newItemFixture()
	out, err := uc.Create("lab-1", dto.CreateItemRequest{Name: "router"})
	require.NoError(t, err)

	item, err := st.Items().GetByID(out.ID)
	require.NoError(t, err)
	item.Counters = stock.Counters{Total: 1, Available: 1}
	require.NoError(t, st.Items().Update(item))

	_, err = uc.AddUnitInfo(out.ID, dto.ItemUnitRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.AddUnitInfo("no-existe", dto.ItemUnitRequest{SerialNo: "R-1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	unit, err := uc.AddUnitInfo(out.ID, dto.ItemUnitRequest{SerialNo: "R-1"})
	require.NoError(t, err)

	updated, err := uc.UpdateUnitInfo(unit.ID, dto.ItemUnitRequest{SerialNo: "R-1B", Price: decimal.NewFromInt(150)})
	require.NoError(t, err)
	assert.Equal(t, "R-1B", updated.SerialNo)

	require.NoError(t, uc.DeleteUnitInfo(unit.ID))
	assert.ErrorIs(t, uc.DeleteUnitInfo(unit.ID), domain.ErrNotFound)
}

func TestItemDeleteCascadesUnitInfo(t *testing.T) {
	st, uc := newItemFixture()
	out, err := uc.Create("lab-1", dto.CreateItemRequest{Name: "cámara"})
	require.NoError(t, err)

	item, err := st.Items().GetByID(out.ID)
	require.NoError(t, err)
	item.Counters = stock.Counters{Total: 1, Available: 1}
	require.NoError(t, st.Items().Update(item))

	unit, err := uc.AddUnitInfo(out.ID, dto.ItemUnitRequest{SerialNo: "CAM-7"})
	require.NoError(t, err)

	// Con stock no se puede eliminar; al vaciar contadores sí, y el
	// detalle se va con el item
	assert.ErrorIs(t, uc.Delete(out.ID), domain.ErrConflict)
	item.Counters = stock.Counters{}
	require.NoError(t, st.Items().Update(item))
	require.NoError(t, uc.Delete(out.ID))

	got, err := st.ItemUnits().GetByID(unit.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
