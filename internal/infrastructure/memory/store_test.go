package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labtrack-api/internal/domain"
	"github.com/jhoicas/labtrack-api/internal/domain/entity"
	"github.com/jhoicas/labtrack-api/internal/domain/repository"
	"github.com/jhoicas/labtrack-api/internal/domain/stock"
)

func seedItem(t *testing.T, st *Store, id string, c stock.Counters) {
	t.Helper()
	require.NoError(t, st.Items().Create(&entity.Item{
		ID: id, LabID: "lab-1", Code: id, Name: "x", Listed: true,
		Counters: c, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
}

func TestTxRunnerCommitsOnSuccess(t *testing.T) {
	st := NewStore()
	seedItem(t, st, "a", stock.Counters{Total: 1, Available: 1})

	err := NewTxRunner(st).Run(context.Background(), func(
		itemRepo repository.ItemRepository,
		_ repository.PurchaseRepository,
		_ repository.ComponentRepository,
		_ repository.ArchiveRepository,
		_ repository.SystemRepository,
	) error {
		return itemRepo.UpdateCounters("a", stock.Counters{Total: 1, InUse: 1})
	})
	require.NoError(t, err)

	item, err := st.Items().GetByID("a")
	require.NoError(t, err)
	assert.Equal(t, stock.Counters{Total: 1, InUse: 1}, item.Counters)
}

func TestTxRunnerRestoresSnapshotOnError(t *testing.T) {
	st := NewStore()
	seedItem(t, st, "a", stock.Counters{Total: 2, Available: 2})
	boom := errors.New("boom")

	err := NewTxRunner(st).Run(context.Background(), func(
		itemRepo repository.ItemRepository,
		_ repository.PurchaseRepository,
		componentRepo repository.ComponentRepository,
		_ repository.ArchiveRepository,
		_ repository.SystemRepository,
	) error {
		if err := itemRepo.UpdateCounters("a", stock.Counters{Total: 2, InUse: 2}); err != nil {
			return err
		}
		if err := componentRepo.Create(&entity.SystemComponent{ID: "c1", SystemID: "s1", ItemID: "a"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// Ninguna de las dos escrituras sobrevive
	item, err := st.Items().GetByID("a")
	require.NoError(t, err)
	assert.Equal(t, stock.Counters{Total: 2, Available: 2}, item.Counters)
	component, err := st.Components().GetByID("c1")
	require.NoError(t, err)
	assert.Nil(t, component)
}

func TestTxRunnerHonorsCancelledContext(t *testing.T) {
	st := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewTxRunner(st).Run(ctx, func(
		repository.ItemRepository,
		repository.PurchaseRepository,
		repository.ComponentRepository,
		repository.ArchiveRepository,
		repository.SystemRepository,
	) error {
		t.Fatal("no debería ejecutarse")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadsReturnCopies(t *testing.T) {
	st := NewStore()
	seedItem(t, st, "a", stock.Counters{Total: 1, Available: 1})

	item, err := st.Items().GetByID("a")
	require.NoError(t, err)
	item.Name = "mutado"

	again, err := st.Items().GetByID("a")
	require.NoError(t, err)
	assert.Equal(t, "x", again.Name)
}

func TestComponentDeleteMissingReturnsNotFound(t *testing.T) {
	st := NewStore()
	require.NoError(t, st.Components().Create(&entity.SystemComponent{
		ID: "c1", SystemID: "s1", ItemID: "i1", ComponentType: "RAM", CreatedAt: time.Now(),
	}))

	require.NoError(t, st.Components().Delete("c1"))
	// El segundo borrado debe fallar, no confirmar en silencio
	assert.ErrorIs(t, st.Components().Delete("c1"), domain.ErrNotFound)
	assert.ErrorIs(t, st.Components().UpdateItem("c1", "i2"), domain.ErrNotFound)
}
