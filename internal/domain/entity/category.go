package entity

import "time"

// Category clasifica items dentro de un laboratorio. Atributo externo:
// no participa en los invariantes de stock.
type Category struct {
	ID        string
	LabID     string
	Name      string
	CreatedAt time.Time
}

// Brand marca de los items de un laboratorio. Igual que Category, solo
// clasifica: eliminarla deja la referencia del item en vacío.
type Brand struct {
	ID        string
	LabID     string
	Name      string
	CreatedAt time.Time
}
