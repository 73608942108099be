package dto

import "time"

// RetireFromStockRequest body para POST /api/labs/:lab_id/items/:item_id/retire.
type RetireFromStockRequest struct {
	Qty     int    `json:"qty"`
	Reason  string `json:"reason"` // consumption | depreciation
	Remarks string `json:"remarks"`
}

// RetireFromAllocationRequest body para POST .../components/:component_id/retire.
type RetireFromAllocationRequest struct {
	Reason  string `json:"reason"`
	Remarks string `json:"remarks"`
}

// ArchiveResponse representación de un retiro.
type ArchiveResponse struct {
	ID        string    `json:"id"`
	LabID     string    `json:"lab_id"`
	ItemID    string    `json:"item_id"`
	Qty       int       `json:"qty"`
	Reason    string    `json:"reason"`
	Remarks   string    `json:"remarks"`
	CreatedAt time.Time `json:"created_at"`
}
