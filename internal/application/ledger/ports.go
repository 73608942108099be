// Package ledger implementa las tres operaciones que mutan contadores de
// stock: recepción de compras, asignación a sistemas y retiro permanente.
// Toda mutación ocurre dentro de una transacción del TxRunner con la fila
// del item bloqueada (SELECT FOR UPDATE), de forma que las operaciones
// concurrentes sobre el mismo item se serializan y el invariante
// total == disponible + en_uso + archivado se preserva en todo momento.
package ledger

import (
	"context"

	"github.com/jhoicas/labtrack-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Commit si fn devuelve nil, Rollback si no:
// o se aplican todas las escrituras de una operación o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		purchaseRepo repository.PurchaseRepository,
		componentRepo repository.ComponentRepository,
		archiveRepo repository.ArchiveRepository,
		systemRepo repository.SystemRepository,
	) error) error
}
