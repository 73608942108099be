package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/labtrack-api/internal/domain"
	"github.com/jhoicas/labtrack-api/internal/domain/entity"
	"github.com/jhoicas/labtrack-api/internal/domain/repository"
)

var _ repository.ItemUnitRepository = (*ItemUnitRepo)(nil)

// ItemUnitRepo implementación de ItemUnitRepository sobre PostgreSQL.
type ItemUnitRepo struct {
	q Querier
}

// NewItemUnitRepository construye el adaptador de detalles por unidad.
func NewItemUnitRepository(q Querier) *ItemUnitRepo {
	return &ItemUnitRepo{q: q}
}

const itemUnitColumns = `id, item_id, serial_no, price, created_at`

// Create persiste un registro de detalle de unidad.
func (r *ItemUnitRepo) Create(u *entity.ItemUnitInfo) error {
	query := `
		INSERT INTO item_unit_info (` + itemUnitColumns + `)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.ItemID, u.SerialNo, u.Price, u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item unit info: %w", err)
	}
	return nil
}

// GetByID obtiene un registro. Devuelve (nil, nil) si no existe.
func (r *ItemUnitRepo) GetByID(id string) (*entity.ItemUnitInfo, error) {
	query := `SELECT ` + itemUnitColumns + ` FROM item_unit_info WHERE id = $1`
	u, err := scanItemUnitRow(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item unit info: %w", err)
	}
	return u, nil
}

// Update modifica serial y precio del registro.
func (r *ItemUnitRepo) Update(u *entity.ItemUnitInfo) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE item_unit_info SET serial_no = $2, price = $3 WHERE id = $1`,
		u.ID, u.SerialNo, u.Price)
	if err != nil {
		return fmt.Errorf("update item unit info: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByItem lista los registros de detalle de un item.
func (r *ItemUnitRepo) ListByItem(itemID string) ([]*entity.ItemUnitInfo, error) {
	query := `
		SELECT ` + itemUnitColumns + ` FROM item_unit_info
		WHERE item_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list item unit info: %w", err)
	}
	defer rows.Close()

	var units []*entity.ItemUnitInfo
	for rows.Next() {
		u, err := scanItemUnitRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item unit info: %w", err)
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

// CountByItem cuenta los registros de un item.
func (r *ItemUnitRepo) CountByItem(itemID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM item_unit_info WHERE item_id = $1`, itemID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count item unit info: %w", err)
	}
	return count, nil
}

// Delete elimina un registro.
func (r *ItemUnitRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM item_unit_info WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item unit info: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByItem elimina todos los registros de un item.
func (r *ItemUnitRepo) DeleteByItem(itemID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM item_unit_info WHERE item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete item unit info by item: %w", err)
	}
	return nil
}

func scanItemUnitRow(row pgx.Row) (*entity.ItemUnitInfo, error) {
	var u entity.ItemUnitInfo
	err := row.Scan(&u.ID, &u.ItemID, &u.SerialNo, &u.Price, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
