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

var _ repository.SystemRepository = (*SystemRepo)(nil)

// SystemRepo implementación de SystemRepository sobre PostgreSQL.
type SystemRepo struct {
	q Querier
}

// NewSystemRepository construye el adaptador de sistemas.
func NewSystemRepository(q Querier) *SystemRepo {
	return &SystemRepo{q: q}
}

const systemColumns = `id, lab_id, code, name, status, created_at, updated_at`

// Create persiste un sistema nuevo.
func (r *SystemRepo) Create(s *entity.System) error {
	query := `
		INSERT INTO systems (` + systemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.LabID, s.Code, s.Name, s.Status, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert system: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert system: %w", err)
	}
	return nil
}

// GetByID obtiene un sistema por ID. Devuelve (nil, nil) si no existe.
func (r *SystemRepo) GetByID(id string) (*entity.System, error) {
	query := `SELECT ` + systemColumns + ` FROM systems WHERE id = $1`
	s, err := scanSystemRow(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get system: %w", err)
	}
	return s, nil
}

// Update escribe nombre y estado del sistema.
func (r *SystemRepo) Update(s *entity.System) error {
	query := `UPDATE systems SET name = $2, status = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, s.ID, s.Name, s.Status, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update system: %w", err)
	}
	return nil
}

// ListByLab lista los sistemas de un laboratorio.
func (r *SystemRepo) ListByLab(labID string) ([]*entity.System, error) {
	query := `SELECT ` + systemColumns + ` FROM systems WHERE lab_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, labID)
	if err != nil {
		return nil, fmt.Errorf("list systems: %w", err)
	}
	defer rows.Close()

	var systems []*entity.System
	for rows.Next() {
		s, err := scanSystemRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan system: %w", err)
		}
		systems = append(systems, s)
	}
	return systems, rows.Err()
}

// CodeExists indica si el código corto ya está en uso por algún sistema.
func (r *SystemRepo) CodeExists(code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM systems WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("system code exists: %w", err)
	}
	return exists, nil
}

// Delete elimina un sistema. Los componentes deben liberarse antes.
func (r *SystemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM systems WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete system: %w", err)
	}
	return nil
}

func scanSystemRow(row pgx.Row) (*entity.System, error) {
	var s entity.System
	err := row.Scan(&s.ID, &s.LabID, &s.Code, &s.Name, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
