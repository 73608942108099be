package entity

import "time"

// Lab representa un laboratorio: el ámbito al que pertenecen items, sistemas,
// compras y archivos. OrgID es una referencia opaca que resuelve la capa
// externa de autorización; este núcleo solo la usa como filtro.
type Lab struct {
	ID        string
	OrgID     string
	Name      string
	RoomNo    int
	CreatedAt time.Time
}

// LabSettings pestañas visibles en la UI de un laboratorio.
// Se crea de forma explícita e idempotente vía EnsureSettings, nunca como
// efecto colateral de una lectura.
type LabSettings struct {
	LabID         string
	ItemsTab      bool
	SystemsTab    bool
	CategoriesTab bool
	BrandsTab     bool
}
