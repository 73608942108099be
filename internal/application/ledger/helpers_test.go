package ledger_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labtrack-api/internal/application/ledger"
	"github.com/jhoicas/labtrack-api/internal/domain/entity"
	"github.com/jhoicas/labtrack-api/internal/domain/stock"
	"github.com/jhoicas/labtrack-api/internal/infrastructure/memory"
)

const testLabID = "lab-1"

// fixture arma los casos de uso del ledger sobre el store en memoria.
type fixture struct {
	store       *memory.Store
	procurement *ledger.ProcurementUseCase
	allocation  *ledger.AllocationUseCase
	retirement  *ledger.RetirementUseCase
}

func newFixture() *fixture {
	st := memory.NewStore()
	runner := memory.NewTxRunner(st)
	return &fixture{
		store:       st,
		procurement: ledger.NewProcurementUseCase(runner, st.Purchases(), st.Items(), st.Vendors()),
		allocation:  ledger.NewAllocationUseCase(runner),
		retirement:  ledger.NewRetirementUseCase(runner, st.Archives()),
	}
}

// seedItem crea un item listado con los contadores dados.
func (f *fixture) seedItem(t *testing.T, c stock.Counters) *entity.Item {
	t.Helper()
	item := &entity.Item{
		ID:        uuid.New().String(),
		LabID:     testLabID,
		Code:      uuid.New().String(),
		Name:      "monitor 24\"",
		Listed:    true,
		Counters:  c,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, f.store.Items().Create(item))
	return item
}

// seedSystem crea un sistema vacío en el lab de prueba.
func (f *fixture) seedSystem(t *testing.T) *entity.System {
	t.Helper()
	sys := &entity.System{
		ID:        uuid.New().String(),
		LabID:     testLabID,
		Code:      uuid.New().String(),
		Name:      "pc-01",
		Status:    entity.SystemNotWorking,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, f.store.Systems().Create(sys))
	return sys
}

// counters relee los contadores actuales de un item.
func (f *fixture) counters(t *testing.T, itemID string) stock.Counters {
	t.Helper()
	item, err := f.store.Items().GetByID(itemID)
	require.NoError(t, err)
	require.NotNil(t, item)
	return item.Counters
}
