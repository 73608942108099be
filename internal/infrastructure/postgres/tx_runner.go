package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/labtrack-api/internal/application/ledger"
	"github.com/jhoicas/labtrack-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Es la
// disciplina transaccional de los ledgers: los GetForUpdate dentro del
// callback bloquean filas hasta el Commit/Rollback, serializando las
// operaciones concurrentes sobre el mismo item.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	purchaseRepo repository.PurchaseRepository,
	componentRepo repository.ComponentRepository,
	archiveRepo repository.ArchiveRepository,
	systemRepo repository.SystemRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	itemRepo := NewItemRepository(tx)
	purchaseRepo := NewPurchaseRepository(tx)
	componentRepo := NewComponentRepository(tx)
	archiveRepo := NewArchiveRepository(tx)
	systemRepo := NewSystemRepository(tx)

	if err := fn(itemRepo, purchaseRepo, componentRepo, archiveRepo, systemRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
