package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labtrack-api/internal/application/ledger"
	"github.com/jhoicas/labtrack-api/internal/domain"
	"github.com/jhoicas/labtrack-api/internal/domain/entity"
	"github.com/jhoicas/labtrack-api/internal/domain/stock"
)

func TestRetireFromStockArchivesUnits(t *testing.T) {
	f := newFixture()
	item := f.seedItem(t, stock.Counters{Total: 5, Available: 5})

	record, err := f.retirement.RetireFromStock(context.Background(), ledger.RetireInput{
		ItemID:  item.ID,
		Qty:     2,
		Reason:  entity.ReasonConsumption,
		Remarks: "reactivos vencidos",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, record.Qty)
	assert.Equal(t, testLabID, record.LabID)

	// Total no encoge: las unidades pasan al pool archivado
	assert.Equal(t, stock.Counters{Total: 5, Available: 3, Archived: 2}, f.counters(t, item.ID))

	archives, err := f.store.Archives().ListByItem(item.ID)
	require.NoError(t, err)
	assert.Len(t, archives, 1)
}

func TestRetireFromStockInsufficientRollsBack(t *testing.T) {
	f := newFixture()
	item := f.seedItem(t, stock.Counters{Total: 3, Available: 1, InUse: 2})

	_, err := f.retirement.RetireFromStock(context.Background(), ledger.RetireInput{
		ItemID:  item.ID,
		Qty:     2,
		Reason:  entity.ReasonDepreciation,
		Remarks: "obsoleto",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, stock.Counters{Total: 3, Available: 1, InUse: 2}, f.counters(t, item.ID))
	archives, err := f.store.Archives().ListByItem(item.ID)
	require.NoError(t, err)
	assert.Empty(t, archives)
}

func TestRetireInputValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := f.seedItem(t, stock.Counters{Total: 1, Available: 1})

	cases := []struct {
		name string
		in   ledger.RetireInput
	}{
		{"sin item", ledger.RetireInput{Qty: 1, Reason: entity.ReasonConsumption, Remarks: "x"}},
		{"qty cero", ledger.RetireInput{ItemID: item.ID, Qty: 0, Reason: entity.ReasonConsumption, Remarks: "x"}},
		{"razón inválida", ledger.RetireInput{ItemID: item.ID, Qty: 1, Reason: "lost", Remarks: "x"}},
		{"sin remarks", ledger.RetireInput{ItemID: item.ID, Qty: 1, Reason: entity.ReasonConsumption}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.retirement.RetireFromStock(ctx, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRetireFromAllocationArchivesMountedUnit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := f.seedItem(t, stock.Counters{Total: 2, Available: 2})
	sys := f.seedSystem(t)

	component, err := f.allocation.Allocate(ctx, ledger.AllocateInput{
		SystemID: sys.ID, ComponentType: "Monitor", ItemID: item.ID,
	})
	require.NoError(t, err)

	record, err := f.retirement.RetireFromAllocation(ctx, component.ID, entity.ReasonDepreciation, "pantalla quemada")
	require.NoError(t, err)
	assert.Equal(t, 1, record.Qty)

	// La unidad va de en-uso directo a archivado, sin pasar por disponible
	assert.Equal(t, stock.Counters{Total: 2, Available: 1, Archived: 1}, f.counters(t, item.ID))

	got, err := f.store.Components().GetByID(component.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRetireFromAllocationUnknownComponent(t *testing.T) {
	f := newFixture()
	_, err := f.retirement.RetireFromAllocation(context.Background(), "nope", entity.ReasonConsumption, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRetireReleasedComponentRollsBack(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := f.seedItem(t, stock.Counters{Total: 2, Available: 1, InUse: 1})
	sys := f.seedSystem(t)

	c, err := f.allocation.Allocate(ctx, ledger.AllocateInput{
		SystemID: sys.ID, ComponentType: "Fuente", ItemID: item.ID,
	})
	require.NoError(t, err)
	require.NoError(t, f.allocation.Release(ctx, c.ID))

	// El registro ya fue liberado: el retiro no encuentra nada que archivar
	// y no toca contadores
	_, err = f.retirement.RetireFromAllocation(ctx, c.ID, entity.ReasonDepreciation, "baja duplicada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, stock.Counters{Total: 2, Available: 1, InUse: 1}, f.counters(t, item.ID))

	archives, err := f.store.Archives().ListByItem(item.ID)
	require.NoError(t, err)
	assert.Empty(t, archives)
}
