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

var _ repository.LabRepository = (*LabRepo)(nil)

// LabRepo implementación de LabRepository sobre PostgreSQL. Incluye la
// configuración del laboratorio (lab_settings, una fila por lab).
type LabRepo struct {
	q Querier
}

// NewLabRepository construye el adaptador de laboratorios.
func NewLabRepository(q Querier) *LabRepo {
	return &LabRepo{q: q}
}

// Create persiste un laboratorio nuevo.
func (r *LabRepo) Create(lab *entity.Lab) error {
	query := `
		INSERT INTO labs (id, org_id, name, room_no, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		lab.ID, lab.OrgID, lab.Name, lab.RoomNo, lab.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert lab: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert lab: %w", err)
	}
	return nil
}

// GetByID obtiene un laboratorio por ID. Devuelve (nil, nil) si no existe.
func (r *LabRepo) GetByID(id string) (*entity.Lab, error) {
	query := `SELECT id, org_id, name, room_no, created_at FROM labs WHERE id = $1`
	var lab entity.Lab
	err := r.q.QueryRow(context.Background(), query, id).
		Scan(&lab.ID, &lab.OrgID, &lab.Name, &lab.RoomNo, &lab.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lab: %w", err)
	}
	return &lab, nil
}

// Update escribe nombre y número de sala del laboratorio.
func (r *LabRepo) Update(lab *entity.Lab) error {
	query := `UPDATE labs SET name = $2, room_no = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, lab.ID, lab.Name, lab.RoomNo)
	if err != nil {
		return fmt.Errorf("update lab: %w", err)
	}
	return nil
}

// ListByOrg lista los laboratorios de una organización.
func (r *LabRepo) ListByOrg(orgID string) ([]*entity.Lab, error) {
	query := `SELECT id, org_id, name, room_no, created_at FROM labs WHERE org_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, orgID)
	if err != nil {
		return nil, fmt.Errorf("list labs: %w", err)
	}
	defer rows.Close()

	var labs []*entity.Lab
	for rows.Next() {
		var lab entity.Lab
		if err := rows.Scan(&lab.ID, &lab.OrgID, &lab.Name, &lab.RoomNo, &lab.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lab: %w", err)
		}
		labs = append(labs, &lab)
	}
	return labs, rows.Err()
}

// Delete elimina un laboratorio y su configuración.
func (r *LabRepo) Delete(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM lab_settings WHERE lab_id = $1`, id); err != nil {
		return fmt.Errorf("delete lab settings: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM labs WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete lab: %w", err)
	}
	return nil
}

// GetSettings obtiene la configuración del lab. Devuelve (nil, nil) si aún
// no existe; la creación es explícita vía UpsertSettings.
func (r *LabRepo) GetSettings(labID string) (*entity.LabSettings, error) {
	query := `
		SELECT lab_id, items_tab, systems_tab, categories_tab, brands_tab
		FROM lab_settings WHERE lab_id = $1`
	var s entity.LabSettings
	err := r.q.QueryRow(context.Background(), query, labID).
		Scan(&s.LabID, &s.ItemsTab, &s.SystemsTab, &s.CategoriesTab, &s.BrandsTab)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lab settings: %w", err)
	}
	return &s, nil
}

// UpsertSettings crea o reemplaza la configuración del lab (ON CONFLICT).
func (r *LabRepo) UpsertSettings(s *entity.LabSettings) error {
	query := `
		INSERT INTO lab_settings (lab_id, items_tab, systems_tab, categories_tab, brands_tab)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (lab_id) DO UPDATE SET
			items_tab = EXCLUDED.items_tab,
			systems_tab = EXCLUDED.systems_tab,
			categories_tab = EXCLUDED.categories_tab,
			brands_tab = EXCLUDED.brands_tab`
	_, err := r.q.Exec(context.Background(), query,
		s.LabID, s.ItemsTab, s.SystemsTab, s.CategoriesTab, s.BrandsTab,
	)
	if err != nil {
		return fmt.Errorf("upsert lab settings: %w", err)
	}
	return nil
}
