package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una compra.
// requested → approved → completed, o requested → rejected (terminal).
const (
	PurchaseRequested = "requested"
	PurchaseApproved  = "approved"
	PurchaseRejected  = "rejected"
	PurchaseCompleted = "completed"
)

// Purchase representa una solicitud de compra contra un item (existente o
// placeholder recién creado). AddedToStock es independiente del estado: solo
// puede pasar a true una vez, con estado completed, en la misma transacción
// que acredita los contadores del item.
type Purchase struct {
	ID           string
	LabID        string
	ItemID       string
	VendorID     string // vacío si el proveedor fue eliminado
	Qty          int
	UnitPrice    decimal.Decimal
	Status       string
	AddedToStock bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanTransition valida la máquina de estados. rejected y completed son
// terminales: ninguna transición sale de ellos.
func (p *Purchase) CanTransition(to string) bool {
	switch p.Status {
	case PurchaseRequested:
		return to == PurchaseApproved || to == PurchaseRejected
	case PurchaseApproved:
		return to == PurchaseCompleted
	}
	return false
}

// Vendor proveedor al que se le compra; referencia opaca a la organización.
type Vendor struct {
	ID        string
	OrgID     string
	Name      string
	Address   string
	CreatedAt time.Time
}
