package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labtrack-api/internal/domain"
	"github.com/jhoicas/labtrack-api/internal/domain/stock"
)

func TestCredit_IncrementaTotalYDisponible(t *testing.T) {
	c := stock.Counters{}
	out, err := c.Credit(5)
	require.NoError(t, err)
	assert.Equal(t, stock.Counters{Total: 5, Available: 5}, out)
	// El valor original no se modifica (receptor por valor)
	assert.Equal(t, stock.Counters{}, c)
}

func TestCredit_CantidadNoPositiva(t *testing.T) {
	c := stock.Counters{Total: 3, Available: 3}
	for _, qty := range []int{0, -1} {
		_, err := c.Credit(qty)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "qty=%d debe rechazarse", qty)
	}
}

func TestMove_DisponibleAEnUso(t *testing.T) {
	c := stock.Counters{Total: 5, Available: 5}
	out, err := c.Move(stock.PoolAvailable, stock.PoolInUse, 3)
	require.NoError(t, err)
	assert.Equal(t, stock.Counters{Total: 5, Available: 2, InUse: 3}, out)
	require.NoError(t, out.Validate())
}

func TestMove_StockInsuficiente(t *testing.T) {
	c := stock.Counters{Total: 5, Available: 2, InUse: 3}
	_, err := c.Move(stock.PoolAvailable, stock.PoolInUse, 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestMove_NoCambiaTotal(t *testing.T) {
	c := stock.Counters{Total: 10, Available: 4, InUse: 5, Archived: 1}
	out, err := c.Move(stock.PoolInUse, stock.PoolArchived, 2)
	require.NoError(t, err)
	assert.Equal(t, 10, out.Total)
	assert.Equal(t, stock.Counters{Total: 10, Available: 4, InUse: 3, Archived: 3}, out)
}

func TestMove_MismoPoolRechazado(t *testing.T) {
	c := stock.Counters{Total: 5, Available: 5}
	_, err := c.Move(stock.PoolAvailable, stock.PoolAvailable, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMove_PoolDesconocido(t *testing.T) {
	c := stock.Counters{Total: 5, Available: 5}
	_, err := c.Move(stock.Pool("lost"), stock.PoolInUse, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDebit_ReduceTotalYPool(t *testing.T) {
	c := stock.Counters{Total: 5, Available: 5}
	out, err := c.Debit(stock.PoolAvailable, 2)
	require.NoError(t, err)
	assert.Equal(t, stock.Counters{Total: 3, Available: 3}, out)
}

func TestDebit_StockInsuficiente(t *testing.T) {
	c := stock.Counters{Total: 5, Available: 5}
	_, err := c.Debit(stock.PoolInUse, 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	_, err = c.Debit(stock.PoolAvailable, 6)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestValidate_DetectaInconsistencias(t *testing.T) {
	casos := []struct {
		nombre string
		c      stock.Counters
	}{
		{"total no cuadra", stock.Counters{Total: 5, Available: 2, InUse: 2}},
		{"contador negativo", stock.Counters{Total: 0, Available: -1, InUse: 1}},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			assert.ErrorIs(t, tc.c.Validate(), domain.ErrInvariantViolation)
		})
	}
}

func TestValidate_EstadoCeroEsValido(t *testing.T) {
	assert.NoError(t, stock.Counters{}.Validate())
}
