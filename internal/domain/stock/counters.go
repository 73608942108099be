// Package stock contiene la aritmética pura de contadores de un item.
// Los cuatro contadores (total, disponible, en uso, archivado) solo se
// mutan a través de estas operaciones; la persistencia del nuevo estado
// ocurre siempre dentro de una transacción con la fila bloqueada.
package stock

import (
	"fmt"

	"github.com/jhoicas/labtrack-api/internal/domain"
)

// Pool identifica uno de los contadores en los que puede residir una unidad.
type Pool string

const (
	PoolAvailable Pool = "available"
	PoolInUse     Pool = "in_use"
	PoolArchived  Pool = "archived"
)

// Counters agrupa los cuatro contadores de un item.
// Invariante: Total == Available + InUse + Archived, todos >= 0.
type Counters struct {
	Total     int
	Available int
	InUse     int
	Archived  int
}

// Validate verifica el invariante. Un fallo aquí es un bug de un ledger
// que llama mal a Credit/Debit/Move, nunca un error recuperable del usuario.
func (c Counters) Validate() error {
	if c.Total < 0 || c.Available < 0 || c.InUse < 0 || c.Archived < 0 {
		return fmt.Errorf("%w: contador negativo %+v", domain.ErrInvariantViolation, c)
	}
	if c.Total != c.Available+c.InUse+c.Archived {
		return fmt.Errorf("%w: total=%d != %d+%d+%d", domain.ErrInvariantViolation,
			c.Total, c.Available, c.InUse, c.Archived)
	}
	return nil
}

// Credit incrementa Total y Available en qty. Es la única operación que
// aumenta Total (recepción de una compra a stock).
func (c Counters) Credit(qty int) (Counters, error) {
	if qty <= 0 {
		return c, domain.ErrInvalidInput
	}
	out := c
	out.Total += qty
	out.Available += qty
	if err := out.Validate(); err != nil {
		return c, err
	}
	return out, nil
}

// Debit retira qty unidades del pool indicado reduciendo también Total.
// Es el modelo de "encogimiento permanente"; los ledgers de retiro usan
// Move hacia PoolArchived en su lugar, para que Total quede auditable.
func (c Counters) Debit(pool Pool, qty int) (Counters, error) {
	if qty <= 0 {
		return c, domain.ErrInvalidInput
	}
	out := c
	v, err := out.get(pool)
	if err != nil {
		return c, err
	}
	if v < qty {
		return c, domain.ErrInsufficientStock
	}
	out.set(pool, v-qty)
	out.Total -= qty
	if err := out.Validate(); err != nil {
		return c, err
	}
	return out, nil
}

// Move redistribuye qty unidades de un pool a otro sin cambiar Total.
// Si el pool origen no alcanza, devuelve ErrInsufficientStock y el estado
// original intacto.
func (c Counters) Move(from, to Pool, qty int) (Counters, error) {
	if qty <= 0 || from == to {
		return c, domain.ErrInvalidInput
	}
	out := c
	src, err := out.get(from)
	if err != nil {
		return c, err
	}
	dst, err := out.get(to)
	if err != nil {
		return c, err
	}
	if src < qty {
		return c, domain.ErrInsufficientStock
	}
	out.set(from, src-qty)
	out.set(to, dst+qty)
	if err := out.Validate(); err != nil {
		return c, err
	}
	return out, nil
}

func (c Counters) get(p Pool) (int, error) {
	switch p {
	case PoolAvailable:
		return c.Available, nil
	case PoolInUse:
		return c.InUse, nil
	case PoolArchived:
		return c.Archived, nil
	}
	return 0, fmt.Errorf("%w: pool desconocido %q", domain.ErrInvalidInput, p)
}

func (c *Counters) set(p Pool, v int) {
	switch p {
	case PoolAvailable:
		c.Available = v
	case PoolInUse:
		c.InUse = v
	case PoolArchived:
		c.Archived = v
	}
}
