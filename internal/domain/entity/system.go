package entity

import "time"

// Estados de un sistema (activo compuesto).
const (
	SystemWorking     = "working"
	SystemNotWorking  = "not_working"
	SystemItemMissing = "item_missing"
)

// System representa un activo compuesto (ej. un equipo de escritorio) armado
// a partir de unidades asignadas que ocupan slots nombrados.
type System struct {
	ID        string
	LabID     string
	Code      string // código corto único (5 caracteres)
	Name      string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidSystemStatus verifica que el estado sea uno de los permitidos.
func ValidSystemStatus(s string) bool {
	return s == SystemWorking || s == SystemNotWorking || s == SystemItemMissing
}

// SystemComponent es el registro de asignación: exactamente una unidad física
// de un item ocupando un slot (ComponentType) de un sistema. Crearlo mueve
// una unidad de disponible a en-uso; eliminarlo la devuelve (o la archiva,
// si el retiro ocurre con la unidad aún montada).
//
// Dos componentes con el mismo ComponentType pueden coexistir en un sistema:
// este ledger no reemplaza asignaciones implícitamente, el caller debe
// liberar primero.
type SystemComponent struct {
	ID            string
	SystemID      string
	ItemID        string
	ComponentType string // slot nombrado: Processor, RAM, Monitor, ...
	SerialNo      string
	CreatedAt     time.Time
}
