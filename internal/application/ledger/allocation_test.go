package ledger_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labtrack-api/internal/application/ledger"
	"github.com/jhoicas/labtrack-api/internal/domain"
	"github.com/jhoicas/labtrack-api/internal/domain/stock"
)

func TestAllocateMovesUnitToInUse(t *testing.T) {
	f := newFixture()
	item := f.seedItem(t, stock.Counters{Total: 3, Available: 3})
	sys := f.seedSystem(t)

	component, err := f.allocation.Allocate(context.Background(), ledger.AllocateInput{
		SystemID:      sys.ID,
		ComponentType: "Monitor",
		ItemID:        item.ID,
		SerialNo:      "SN-001",
	})
	require.NoError(t, err)
	assert.Equal(t, item.ID, component.ItemID)

	assert.Equal(t, stock.Counters{Total: 3, Available: 2, InUse: 1}, f.counters(t, item.ID))

	components, err := f.store.Components().ListBySystem(sys.ID)
	require.NoError(t, err)
	assert.Len(t, components, 1)
}

func TestAllocateWithoutAvailabilityFails(t *testing.T) {
	f := newFixture()
	item := f.seedItem(t, stock.Counters{Total: 2, InUse: 2})
	sys := f.seedSystem(t)

	_, err := f.allocation.Allocate(context.Background(), ledger.AllocateInput{
		SystemID:      sys.ID,
		ComponentType: "RAM",
		ItemID:        item.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La transacción se revirtió: ni contadores ni componente
	assert.Equal(t, stock.Counters{Total: 2, InUse: 2}, f.counters(t, item.ID))
	components, err := f.store.Components().ListBySystem(sys.ID)
	require.NoError(t, err)
	assert.Empty(t, components)
}

func TestReleaseReturnsUnitToAvailable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := f.seedItem(t, stock.Counters{Total: 1, Available: 1})
	sys := f.seedSystem(t)

	component, err := f.allocation.Allocate(ctx, ledger.AllocateInput{
		SystemID: sys.ID, ComponentType: "Processor", ItemID: item.ID,
	})
	require.NoError(t, err)

	require.NoError(t, f.allocation.Release(ctx, component.ID))

	assert.Equal(t, stock.Counters{Total: 1, Available: 1}, f.counters(t, item.ID))
	got, err := f.store.Components().GetByID(component.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReassignSwapsCountersAtomically(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	oldItem := f.seedItem(t, stock.Counters{Total: 1, Available: 1})
	newItem := f.seedItem(t, stock.Counters{Total: 2, Available: 2})
	sys := f.seedSystem(t)

	component, err := f.allocation.Allocate(ctx, ledger.AllocateInput{
		SystemID: sys.ID, ComponentType: "Monitor", ItemID: oldItem.ID,
	})
	require.NoError(t, err)

	require.NoError(t, f.allocation.Reassign(ctx, component.ID, newItem.ID))

	assert.Equal(t, stock.Counters{Total: 1, Available: 1}, f.counters(t, oldItem.ID))
	assert.Equal(t, stock.Counters{Total: 2, Available: 1, InUse: 1}, f.counters(t, newItem.ID))

	got, err := f.store.Components().GetByID(component.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, newItem.ID, got.ItemID)
}

func TestReassignWithoutAvailabilityLeavesEverythingIntact(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	oldItem := f.seedItem(t, stock.Counters{Total: 1, Available: 1})
	newItem := f.seedItem(t, stock.Counters{Total: 1, InUse: 1})
	sys := f.seedSystem(t)

	component, err := f.allocation.Allocate(ctx, ledger.AllocateInput{
		SystemID: sys.ID, ComponentType: "RAM", ItemID: oldItem.ID,
	})
	require.NoError(t, err)

	err = f.allocation.Reassign(ctx, component.ID, newItem.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nunca hay intercambio parcial
	assert.Equal(t, stock.Counters{Total: 1, InUse: 1}, f.counters(t, oldItem.ID))
	assert.Equal(t, stock.Counters{Total: 1, InUse: 1}, f.counters(t, newItem.ID))
	got, err := f.store.Components().GetByID(component.ID)
	require.NoError(t, err)
	assert.Equal(t, oldItem.ID, got.ItemID)
}

func TestReassignToSameItemIsNoop(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := f.seedItem(t, stock.Counters{Total: 1, Available: 1})
	sys := f.seedSystem(t)

	component, err := f.allocation.Allocate(ctx, ledger.AllocateInput{
		SystemID: sys.ID, ComponentType: "Monitor", ItemID: item.ID,
	})
	require.NoError(t, err)

	require.NoError(t, f.allocation.Reassign(ctx, component.ID, item.ID))
	assert.Equal(t, stock.Counters{Total: 1, InUse: 1}, f.counters(t, item.ID))
}

func TestDismantleSystemReleasesAllComponents(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	itemA := f.seedItem(t, stock.Counters{Total: 2, Available: 2})
	itemB := f.seedItem(t, stock.Counters{Total: 1, Available: 1})
	sys := f.seedSystem(t)

	_, err := f.allocation.Allocate(ctx, ledger.AllocateInput{
		SystemID: sys.ID, ComponentType: "Processor", ItemID: itemA.ID,
	})
	require.NoError(t, err)
	_, err = f.allocation.Allocate(ctx, ledger.AllocateInput{
		SystemID: sys.ID, ComponentType: "Monitor", ItemID: itemB.ID,
	})
	require.NoError(t, err)

	require.NoError(t, f.allocation.DismantleSystem(ctx, sys.ID))

	assert.Equal(t, stock.Counters{Total: 2, Available: 2}, f.counters(t, itemA.ID))
	assert.Equal(t, stock.Counters{Total: 1, Available: 1}, f.counters(t, itemB.ID))

	got, err := f.store.Systems().GetByID(sys.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	components, err := f.store.Components().ListBySystem(sys.ID)
	require.NoError(t, err)
	assert.Empty(t, components)
}

func TestConcurrentAllocationOfLastUnit(t *testing.T) {
	f := newFixture()
	item := f.seedItem(t, stock.Counters{Total: 1, Available: 1})
	sys := f.seedSystem(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.allocation.Allocate(context.Background(), ledger.AllocateInput{
				SystemID: sys.ID, ComponentType: "RAM", ItemID: item.ID,
			})
		}(i)
	}
	wg.Wait()

	// Exactamente una asignación gana la última unidad
	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
			insufficient++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, stock.Counters{Total: 1, InUse: 1}, f.counters(t, item.ID))
}

func TestReleaseSameComponentTwiceReturnsUnitOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := f.seedItem(t, stock.Counters{Total: 2, Available: 2})
	sys := f.seedSystem(t)

	c1, err := f.allocation.Allocate(ctx, ledger.AllocateInput{
		SystemID: sys.ID, ComponentType: "Disco", ItemID: item.ID,
	})
	require.NoError(t, err)
	_, err = f.allocation.Allocate(ctx, ledger.AllocateInput{
		SystemID: sys.ID, ComponentType: "RAM", ItemID: item.ID,
	})
	require.NoError(t, err)

	require.NoError(t, f.allocation.Release(ctx, c1.ID))
	// La segunda liberación del mismo registro ya no lo encuentra y no
	// vuelve a acreditar la unidad
	err = f.allocation.Release(ctx, c1.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, stock.Counters{Total: 2, Available: 1, InUse: 1}, f.counters(t, item.ID))
}

func TestAllocateIntoDismantledSystemFails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := f.seedItem(t, stock.Counters{Total: 1, Available: 1})
	sys := f.seedSystem(t)

	require.NoError(t, f.allocation.DismantleSystem(ctx, sys.ID))

	_, err := f.allocation.Allocate(ctx, ledger.AllocateInput{
		SystemID: sys.ID, ComponentType: "Teclado", ItemID: item.ID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Nada quedó huérfano ni se movieron contadores
	assert.Equal(t, stock.Counters{Total: 1, Available: 1}, f.counters(t, item.ID))
	components, err := f.store.Components().ListBySystem(sys.ID)
	require.NoError(t, err)
	assert.Empty(t, components)
}
