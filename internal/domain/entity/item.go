package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/labtrack-api/internal/domain/stock"
)

// Item representa un tipo de unidad de catálogo (ej. "monitor 24 pulgadas")
// rastreado por contadores agregados, no por seriales individuales.
// Los contadores solo se mutan a través de los ledgers (compras, asignación,
// retiro); nunca directamente desde la capa HTTP.
//
// Un item "no listado" (Listed=false) es un placeholder creado por una compra
// de un item aún no catalogado: todos sus contadores quedan en cero hasta la
// recepción a stock, que lo promueve a listado.
type Item struct {
	ID            string
	LabID         string
	Code          string // código corto único (5 caracteres)
	Name          string
	UnitOfMeasure string
	CategoryID    string // vacío si no tiene categoría
	BrandID       string // vacío si no tiene marca
	Listed        bool
	Counters      stock.Counters
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InStock indica si algún contador es distinto de cero. Un item con stock
// no puede eliminarse.
func (i *Item) InStock() bool {
	c := i.Counters
	return c.Total != 0 || c.Available != 0 || c.InUse != 0 || c.Archived != 0
}

// ItemUnitInfo detalle opcional de una unidad física concreta de un item:
// serial y precio de compra. Los contadores siguen siendo la fuente de
// verdad del stock; estos registros son anotaciones, por eso nunca puede
// haber más registros que unidades totales del item.
type ItemUnitInfo struct {
	ID        string
	ItemID    string
	SerialNo  string
	Price     decimal.Decimal // cero si no se registró precio
	CreatedAt time.Time
}
