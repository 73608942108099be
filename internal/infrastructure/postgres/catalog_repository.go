package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/labtrack-api/internal/domain/entity"
	"github.com/jhoicas/labtrack-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.BrandRepository    = (*BrandRepo)(nil)
	_ repository.VendorRepository   = (*VendorRepo)(nil)
)

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(c *entity.Category) error {
	query := `INSERT INTO categories (id, lab_id, name, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.LabID, c.Name, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	query := `SELECT id, lab_id, name, created_at FROM categories WHERE id = $1`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, id).
		Scan(&c.ID, &c.LabID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) ListByLab(labID string) ([]*entity.Category, error) {
	query := `SELECT id, lab_id, name, created_at FROM categories WHERE lab_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, labID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.LabID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// BrandRepo implementación de BrandRepository sobre PostgreSQL.
type BrandRepo struct {
	q Querier
}

// NewBrandRepository construye el adaptador de marcas.
func NewBrandRepository(q Querier) *BrandRepo {
	return &BrandRepo{q: q}
}

func (r *BrandRepo) Create(b *entity.Brand) error {
	query := `INSERT INTO brands (id, lab_id, name, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, b.ID, b.LabID, b.Name, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert brand: %w", err)
	}
	return nil
}

func (r *BrandRepo) GetByID(id string) (*entity.Brand, error) {
	query := `SELECT id, lab_id, name, created_at FROM brands WHERE id = $1`
	var b entity.Brand
	err := r.q.QueryRow(context.Background(), query, id).
		Scan(&b.ID, &b.LabID, &b.Name, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return &b, nil
}

func (r *BrandRepo) ListByLab(labID string) ([]*entity.Brand, error) {
	query := `SELECT id, lab_id, name, created_at FROM brands WHERE lab_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, labID)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var brands []*entity.Brand
	for rows.Next() {
		var b entity.Brand
		if err := rows.Scan(&b.ID, &b.LabID, &b.Name, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		brands = append(brands, &b)
	}
	return brands, rows.Err()
}

func (r *BrandRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete brand: %w", err)
	}
	return nil
}

// VendorRepo implementación de VendorRepository sobre PostgreSQL.
type VendorRepo struct {
	q Querier
}

// NewVendorRepository construye el adaptador de proveedores.
func NewVendorRepository(q Querier) *VendorRepo {
	return &VendorRepo{q: q}
}

func (r *VendorRepo) Create(v *entity.Vendor) error {
	query := `INSERT INTO vendors (id, org_id, name, address, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.OrgID, v.Name, nullable(v.Address), v.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

func (r *VendorRepo) GetByID(id string) (*entity.Vendor, error) {
	query := `SELECT id, org_id, name, address, created_at FROM vendors WHERE id = $1`
	var v entity.Vendor
	var address *string
	err := r.q.QueryRow(context.Background(), query, id).
		Scan(&v.ID, &v.OrgID, &v.Name, &address, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	v.Address = orEmpty(address)
	return &v, nil
}

func (r *VendorRepo) ListByOrg(orgID string) ([]*entity.Vendor, error) {
	query := `SELECT id, org_id, name, address, created_at FROM vendors WHERE org_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, orgID)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	var vendors []*entity.Vendor
	for rows.Next() {
		var v entity.Vendor
		var address *string
		if err := rows.Scan(&v.ID, &v.OrgID, &v.Name, &address, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		v.Address = orEmpty(address)
		vendors = append(vendors, &v)
	}
	return vendors, rows.Err()
}

func (r *VendorRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vendor: %w", err)
	}
	return nil
}
