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

var _ repository.ComponentRepository = (*ComponentRepo)(nil)

// ComponentRepo implementación de ComponentRepository sobre PostgreSQL.
// Cada fila es el registro de asignación de exactamente una unidad física.
type ComponentRepo struct {
	q Querier
}

// NewComponentRepository construye el adaptador de componentes.
func NewComponentRepository(q Querier) *ComponentRepo {
	return &ComponentRepo{q: q}
}

const componentColumns = `id, system_id, item_id, component_type, serial_no, created_at`

// Create registra la asignación de una unidad a un slot del sistema.
func (r *ComponentRepo) Create(c *entity.SystemComponent) error {
	query := `
		INSERT INTO system_components (` + componentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.SystemID, c.ItemID, c.ComponentType, nullable(c.SerialNo), c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert component: %w", err)
	}
	return nil
}

// GetByID obtiene un registro de asignación. Devuelve (nil, nil) si no existe.
func (r *ComponentRepo) GetByID(id string) (*entity.SystemComponent, error) {
	query := `SELECT ` + componentColumns + ` FROM system_components WHERE id = $1`
	c, err := scanComponentRow(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get component: %w", err)
	}
	return c, nil
}

// GetForUpdate obtiene el registro bloqueando su fila hasta el fin de la
// transacción. Devuelve (nil, nil) si no existe.
func (r *ComponentRepo) GetForUpdate(id string) (*entity.SystemComponent, error) {
	query := `SELECT ` + componentColumns + ` FROM system_components WHERE id = $1 FOR UPDATE`
	c, err := scanComponentRow(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get component for update: %w", err)
	}
	return c, nil
}

// UpdateItem reapunta el registro a otro item (reasignación).
func (r *ComponentRepo) UpdateItem(id, itemID string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE system_components SET item_id = $2 WHERE id = $1`, id, itemID)
	if err != nil {
		return fmt.Errorf("update component item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListBySystem lista los componentes montados en un sistema.
func (r *ComponentRepo) ListBySystem(systemID string) ([]*entity.SystemComponent, error) {
	query := `
		SELECT ` + componentColumns + ` FROM system_components
		WHERE system_id = $1 ORDER BY component_type, created_at`
	return r.list(query, systemID)
}

// ListByItem lista los componentes que consumen unidades de un item.
func (r *ComponentRepo) ListByItem(itemID string) ([]*entity.SystemComponent, error) {
	query := `
		SELECT ` + componentColumns + ` FROM system_components
		WHERE item_id = $1 ORDER BY created_at`
	return r.list(query, itemID)
}

// Delete elimina el registro de asignación (liberación o retiro de la unidad).
// Si la fila ya desapareció (otra transacción ganó la carrera) devuelve
// ErrNotFound para que el caller aborte su movimiento de contadores.
func (r *ComponentRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM system_components WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete component: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ComponentRepo) list(query, arg string) ([]*entity.SystemComponent, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}
	defer rows.Close()

	var components []*entity.SystemComponent
	for rows.Next() {
		c, err := scanComponentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan component: %w", err)
		}
		components = append(components, c)
	}
	return components, rows.Err()
}

func scanComponentRow(row pgx.Row) (*entity.SystemComponent, error) {
	var c entity.SystemComponent
	var serialNo *string
	err := row.Scan(&c.ID, &c.SystemID, &c.ItemID, &c.ComponentType, &serialNo, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.SerialNo = orEmpty(serialNo)
	return &c, nil
}
