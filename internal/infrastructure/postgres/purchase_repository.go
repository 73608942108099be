package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/labtrack-api/internal/domain/entity"
	"github.com/jhoicas/labtrack-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de compras. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `id, lab_id, item_id, vendor_id, qty, unit_price, status, added_to_stock, created_at, updated_at`

// Create persiste una compra nueva.
func (r *PurchaseRepo) Create(p *entity.Purchase) error {
	query := `
		INSERT INTO purchases (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.LabID, p.ItemID, nullable(p.VendorID), p.Qty, p.UnitPrice,
		p.Status, p.AddedToStock, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// GetByID obtiene una compra por ID. Devuelve (nil, nil) si no existe.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get purchase")
}

// GetForUpdate obtiene la compra y bloquea su fila (SELECT FOR UPDATE).
// La recepción a stock lo usa para que la doble recepción concurrente sea no-op.
func (r *PurchaseRepo) GetForUpdate(id string) (*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get purchase for update")
}

// Update escribe estado, flag de recepción y datos editables de la compra.
func (r *PurchaseRepo) Update(p *entity.Purchase) error {
	query := `
		UPDATE purchases
		SET vendor_id = $2, qty = $3, unit_price = $4, status = $5, added_to_stock = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, nullable(p.VendorID), p.Qty, p.UnitPrice, p.Status, p.AddedToStock, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase: %w", err)
	}
	return nil
}

// ListByLab lista las compras de un laboratorio, más recientes primero.
func (r *PurchaseRepo) ListByLab(labID string, limit, offset int) ([]*entity.Purchase, error) {
	query := `
		SELECT ` + purchaseColumns + ` FROM purchases
		WHERE lab_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, labID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var purchases []*entity.Purchase
	for rows.Next() {
		p, err := scanPurchaseRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

// ClearVendor deja sin proveedor a las compras del proveedor eliminado.
func (r *PurchaseRepo) ClearVendor(vendorID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchases SET vendor_id = NULL WHERE vendor_id = $1`, vendorID)
	if err != nil {
		return fmt.Errorf("clear purchase vendor: %w", err)
	}
	return nil
}

// Delete elimina una compra no recibida.
func (r *PurchaseRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM purchases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	return nil
}

func (r *PurchaseRepo) scanOne(row pgx.Row, op string) (*entity.Purchase, error) {
	p, err := scanPurchaseRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func scanPurchaseRow(row pgx.Row) (*entity.Purchase, error) {
	var p entity.Purchase
	var vendorID *string
	err := row.Scan(
		&p.ID, &p.LabID, &p.ItemID, &vendorID, &p.Qty, &p.UnitPrice,
		&p.Status, &p.AddedToStock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.VendorID = orEmpty(vendorID)
	return &p, nil
}
