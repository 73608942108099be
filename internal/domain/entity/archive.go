package entity

import "time"

// Razones de retiro permanente.
const (
	ReasonConsumption  = "consumption"
	ReasonDepreciation = "depreciation"
)

// Archive registra el retiro permanente de unidades del stock usable
// (consumo o depreciación), distinto de una asignación temporal. Las
// unidades pasan al pool archivado sin encoger Total, para que el registro
// quede auditable. Inmutable una vez creado.
type Archive struct {
	ID        string
	LabID     string
	ItemID    string
	Qty       int
	Reason    string
	Remarks   string
	CreatedAt time.Time
}

// ValidArchiveReason verifica que la razón sea una de las permitidas.
func ValidArchiveReason(r string) bool {
	return r == ReasonConsumption || r == ReasonDepreciation
}
