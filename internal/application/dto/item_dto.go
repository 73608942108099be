package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/labs/:lab_id/items.
// Un item declarado directamente nace listado y con contadores en cero;
// el stock entra solo por recepción de compras.
type CreateItemRequest struct {
	Name          string `json:"name"`
	UnitOfMeasure string `json:"unit_of_measure,omitempty"`
	CategoryID    string `json:"category_id,omitempty"`
	BrandID       string `json:"brand_id,omitempty"`
}

// UpdateItemRequest body para PUT /api/labs/:lab_id/items/:item_id.
// Los contadores no son editables por esta vía.
type UpdateItemRequest struct {
	Name          *string `json:"name,omitempty"`
	UnitOfMeasure *string `json:"unit_of_measure,omitempty"`
	CategoryID    *string `json:"category_id,omitempty"`
	BrandID       *string `json:"brand_id,omitempty"`
}

// CountersDTO los cuatro contadores de un item.
type CountersDTO struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	InUse     int `json:"in_use"`
	Archived  int `json:"archived"`
}

// ItemUnitRequest body para crear o actualizar el detalle de una unidad
// (serial y precio). price es opcional.
type ItemUnitRequest struct {
	SerialNo string          `json:"serial_no"`
	Price    decimal.Decimal `json:"price,omitempty"`
}

// ItemUnitResponse representación del detalle de una unidad.
type ItemUnitResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	SerialNo  string          `json:"serial_no"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

// ItemResponse representación de un item.
type ItemResponse struct {
	ID            string      `json:"id"`
	LabID         string      `json:"lab_id"`
	Code          string      `json:"code"`
	Name          string      `json:"name"`
	UnitOfMeasure string      `json:"unit_of_measure,omitempty"`
	CategoryID    string      `json:"category_id,omitempty"`
	BrandID       string      `json:"brand_id,omitempty"`
	Listed        bool        `json:"listed"`
	Counters      CountersDTO `json:"counters"`
	CreatedAt     time.Time   `json:"created_at"`
}
