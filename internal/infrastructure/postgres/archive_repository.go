package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/labtrack-api/internal/domain/entity"
	"github.com/jhoicas/labtrack-api/internal/domain/repository"
)

var _ repository.ArchiveRepository = (*ArchiveRepo)(nil)

// ArchiveRepo implementación de ArchiveRepository sobre PostgreSQL.
// Solo inserta y lee: los retiros son inmutables.
type ArchiveRepo struct {
	q Querier
}

// NewArchiveRepository construye el adaptador de retiros.
func NewArchiveRepository(q Querier) *ArchiveRepo {
	return &ArchiveRepo{q: q}
}

const archiveColumns = `id, lab_id, item_id, qty, reason, remarks, created_at`

// Create persiste un registro de retiro.
func (r *ArchiveRepo) Create(a *entity.Archive) error {
	query := `
		INSERT INTO archives (` + archiveColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.LabID, a.ItemID, a.Qty, a.Reason, nullable(a.Remarks), a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert archive: %w", err)
	}
	return nil
}

// GetByID obtiene un retiro por ID. Devuelve (nil, nil) si no existe.
func (r *ArchiveRepo) GetByID(id string) (*entity.Archive, error) {
	query := `SELECT ` + archiveColumns + ` FROM archives WHERE id = $1`
	a, err := scanArchiveRow(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get archive: %w", err)
	}
	return a, nil
}

// ListByLab lista los retiros de un laboratorio, más recientes primero.
func (r *ArchiveRepo) ListByLab(labID string, limit, offset int) ([]*entity.Archive, error) {
	query := `
		SELECT ` + archiveColumns + ` FROM archives
		WHERE lab_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, labID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list archives: %w", err)
	}
	defer rows.Close()
	return collectArchives(rows)
}

// ListByItem lista los retiros de un item, más recientes primero.
func (r *ArchiveRepo) ListByItem(itemID string) ([]*entity.Archive, error) {
	query := `
		SELECT ` + archiveColumns + ` FROM archives
		WHERE item_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list item archives: %w", err)
	}
	defer rows.Close()
	return collectArchives(rows)
}

func collectArchives(rows pgx.Rows) ([]*entity.Archive, error) {
	var archives []*entity.Archive
	for rows.Next() {
		a, err := scanArchiveRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan archive: %w", err)
		}
		archives = append(archives, a)
	}
	return archives, rows.Err()
}

func scanArchiveRow(row pgx.Row) (*entity.Archive, error) {
	var a entity.Archive
	var remarks *string
	err := row.Scan(&a.ID, &a.LabID, &a.ItemID, &a.Qty, &a.Reason, &remarks, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	a.Remarks = orEmpty(remarks)
	return &a, nil
}
