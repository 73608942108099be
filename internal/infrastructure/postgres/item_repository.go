package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/labtrack-api/internal/domain"
	"github.com/jhoicas/labtrack-api/internal/domain/entity"
	"github.com/jhoicas/labtrack-api/internal/domain/repository"
	"github.com/jhoicas/labtrack-api/internal/domain/stock"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de items. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, lab_id, code, name, unit_of_measure, category_id, brand_id, listed,
	total_qty, available_qty, in_use_qty, archived_qty, created_at, updated_at`

// Create persiste un item nuevo.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.LabID, item.Code, item.Name, nullable(item.UnitOfMeasure),
		nullable(item.CategoryID), nullable(item.BrandID), item.Listed,
		item.Counters.Total, item.Counters.Available, item.Counters.InUse, item.Counters.Archived,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un item por ID. Devuelve (nil, nil) si no existe.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get item")
}

// GetForUpdate obtiene el item y bloquea su fila (SELECT FOR UPDATE).
// Es la serialización de todas las mutaciones de contadores: solo tiene
// efecto dentro de una transacción del TxRunner.
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get item for update")
}

// Update escribe todos los campos mutables del item, contadores incluidos.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items
		SET name = $2, unit_of_measure = $3, category_id = $4, brand_id = $5, listed = $6,
		    total_qty = $7, available_qty = $8, in_use_qty = $9, archived_qty = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, nullable(item.UnitOfMeasure), nullable(item.CategoryID), nullable(item.BrandID),
		item.Listed, item.Counters.Total, item.Counters.Available, item.Counters.InUse, item.Counters.Archived,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// UpdateCounters escribe solo los cuatro contadores, ya validados por el caller.
func (r *ItemRepo) UpdateCounters(id string, c stock.Counters) error {
	query := `
		UPDATE items
		SET total_qty = $2, available_qty = $3, in_use_qty = $4, archived_qty = $5, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, c.Total, c.Available, c.InUse, c.Archived)
	if err != nil {
		return fmt.Errorf("update item counters: %w", err)
	}
	return nil
}

// ListByLab lista los items de un laboratorio, opcionalmente solo los listados.
func (r *ItemRepo) ListByLab(labID string, listedOnly bool) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE lab_id = $1`
	if listedOnly {
		query += ` AND listed = true`
	}
	query += ` ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, labID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []*entity.Item
	for rows.Next() {
		item, err := scanItemRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// CodeExists verifica si un código corto ya está en uso.
func (r *ItemRepo) CodeExists(code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM items WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check item code: %w", err)
	}
	return exists, nil
}

// ClearCategory deja sin categoría a los items que apuntaban a la eliminada.
func (r *ItemRepo) ClearCategory(categoryID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE items SET category_id = NULL WHERE category_id = $1`, categoryID)
	if err != nil {
		return fmt.Errorf("clear item category: %w", err)
	}
	return nil
}

// ClearBrand deja sin marca a los items que apuntaban a la eliminada.
func (r *ItemRepo) ClearBrand(brandID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE items SET brand_id = NULL WHERE brand_id = $1`, brandID)
	if err != nil {
		return fmt.Errorf("clear item brand: %w", err)
	}
	return nil
}

// Delete elimina un item. El caso de uso ya verificó que no tenga stock.
func (r *ItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (r *ItemRepo) scanOne(row pgx.Row, op string) (*entity.Item, error) {
	item, err := scanItemRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

func scanItemRow(row pgx.Row) (*entity.Item, error) {
	var item entity.Item
	var uom, categoryID, brandID *string
	err := row.Scan(
		&item.ID, &item.LabID, &item.Code, &item.Name, &uom, &categoryID, &brandID, &item.Listed,
		&item.Counters.Total, &item.Counters.Available, &item.Counters.InUse, &item.Counters.Archived,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.UnitOfMeasure = orEmpty(uom)
	item.CategoryID = orEmpty(categoryID)
	item.BrandID = orEmpty(brandID)
	return &item, nil
}
