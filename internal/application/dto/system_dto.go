package dto

import "time"

// CreateSystemRequest body para POST /api/labs/:lab_id/systems.
type CreateSystemRequest struct {
	Name string `json:"name"`
}

// UpdateSystemRequest body para PUT /api/labs/:lab_id/systems/:sys_id.
type UpdateSystemRequest struct {
	Name   *string `json:"name,omitempty"`
	Status *string `json:"status,omitempty"`
}

// SystemResponse representación de un sistema.
type SystemResponse struct {
	ID        string    `json:"id"`
	LabID     string    `json:"lab_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// AllocateComponentRequest body para POST .../systems/:sys_id/components.
type AllocateComponentRequest struct {
	ItemID        string `json:"item_id"`
	ComponentType string `json:"component_type"`
	SerialNo      string `json:"serial_no,omitempty"`
}

// ReassignComponentRequest body para PUT .../components/:component_id/item.
type ReassignComponentRequest struct {
	NewItemID string `json:"new_item_id"`
}

// ComponentResponse representación de una asignación.
type ComponentResponse struct {
	ID            string    `json:"id"`
	SystemID      string    `json:"system_id"`
	ItemID        string    `json:"item_id"`
	ComponentType string    `json:"component_type"`
	SerialNo      string    `json:"serial_no,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
