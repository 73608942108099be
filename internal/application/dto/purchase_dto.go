package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest body para POST /api/labs/:lab_id/purchases.
// Exactamente uno de item_id o new_item_name debe venir informado.
type CreatePurchaseRequest struct {
	ItemID      string          `json:"item_id,omitempty"`
	NewItemName string          `json:"new_item_name,omitempty"`
	VendorID    string          `json:"vendor_id,omitempty"`
	Qty         int             `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// PurchaseResponse representación de una compra.
type PurchaseResponse struct {
	ID           string          `json:"id"`
	LabID        string          `json:"lab_id"`
	ItemID       string          `json:"item_id"`
	VendorID     string          `json:"vendor_id,omitempty"`
	Qty          int             `json:"qty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Status       string          `json:"status"`
	AddedToStock bool            `json:"added_to_stock"`
	CreatedAt    time.Time       `json:"created_at"`
}
