package dto

import "time"

// CreateLabRequest body para POST /api/labs.
type CreateLabRequest struct {
	Name   string `json:"name"`
	RoomNo int    `json:"room_no"`
}

// UpdateLabRequest body para PUT /api/labs/:lab_id.
type UpdateLabRequest struct {
	Name   *string `json:"name,omitempty"`
	RoomNo *int    `json:"room_no,omitempty"`
}

// LabResponse representación de un laboratorio.
type LabResponse struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"org_id"`
	Name      string    `json:"name"`
	RoomNo    int       `json:"room_no"`
	CreatedAt time.Time `json:"created_at"`
}

// LabSettingsRequest body para PUT /api/labs/:lab_id/settings.
type LabSettingsRequest struct {
	ItemsTab      bool `json:"items_tab"`
	SystemsTab    bool `json:"systems_tab"`
	CategoriesTab bool `json:"categories_tab"`
	BrandsTab     bool `json:"brands_tab"`
}

// LabSettingsResponse pestañas habilitadas de un laboratorio.
type LabSettingsResponse struct {
	LabID         string `json:"lab_id"`
	ItemsTab      bool   `json:"items_tab"`
	SystemsTab    bool   `json:"systems_tab"`
	CategoriesTab bool   `json:"categories_tab"`
	BrandsTab     bool   `json:"brands_tab"`
}

// CreateCategoryRequest body para POST /api/labs/:lab_id/categories.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse representación de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	LabID     string    `json:"lab_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateBrandRequest body para POST /api/labs/:lab_id/brands.
type CreateBrandRequest struct {
	Name string `json:"name"`
}

// BrandResponse representación de una marca.
type BrandResponse struct {
	ID        string    `json:"id"`
	LabID     string    `json:"lab_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateVendorRequest body para POST /api/vendors.
type CreateVendorRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// VendorResponse representación de un proveedor.
type VendorResponse struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"org_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
