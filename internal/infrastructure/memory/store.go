// Package memory implementa los puertos de repositorio sobre mapas en
// memoria, con un TxRunner que serializa las transacciones con un mutex y
// restaura un snapshot si la función falla. Se usa en tests de casos de uso
// y como backend liviano para entornos sin PostgreSQL.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/labtrack-api/internal/application/ledger"
	"github.com/jhoicas/labtrack-api/internal/domain/entity"
	"github.com/jhoicas/labtrack-api/internal/domain/repository"
)

// Store guarda todas las entidades por valor, indexadas por ID. Los mapas
// nunca exponen punteros internos: cada lectura devuelve una copia.
type Store struct {
	mu sync.Mutex

	items      map[string]entity.Item
	units      map[string]entity.ItemUnitInfo
	purchases  map[string]entity.Purchase
	vendors    map[string]entity.Vendor
	systems    map[string]entity.System
	components map[string]entity.SystemComponent
	archives   map[string]entity.Archive
	labs       map[string]entity.Lab
	settings   map[string]entity.LabSettings
	categories map[string]entity.Category
	brands     map[string]entity.Brand
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		items:      make(map[string]entity.Item),
		units:      make(map[string]entity.ItemUnitInfo),
		purchases:  make(map[string]entity.Purchase),
		vendors:    make(map[string]entity.Vendor),
		systems:    make(map[string]entity.System),
		components: make(map[string]entity.SystemComponent),
		archives:   make(map[string]entity.Archive),
		labs:       make(map[string]entity.Lab),
		settings:   make(map[string]entity.LabSettings),
		categories: make(map[string]entity.Category),
		brands:     make(map[string]entity.Brand),
	}
}

// lock toma el mutex del store salvo que el caller ya lo tenga (dentro de
// una transacción). Devuelve la función de liberación.
func (s *Store) lock(held bool) func() {
	if held {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// snapshot copia todos los mapas. Las entidades se guardan por valor, así
// que copiar el mapa basta para aislar el snapshot de escrituras posteriores.
type snapshot struct {
	items      map[string]entity.Item
	units      map[string]entity.ItemUnitInfo
	purchases  map[string]entity.Purchase
	vendors    map[string]entity.Vendor
	systems    map[string]entity.System
	components map[string]entity.SystemComponent
	archives   map[string]entity.Archive
	labs       map[string]entity.Lab
	settings   map[string]entity.LabSettings
	categories map[string]entity.Category
	brands     map[string]entity.Brand
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		items:      copyMap(s.items),
		units:      copyMap(s.units),
		purchases:  copyMap(s.purchases),
		vendors:    copyMap(s.vendors),
		systems:    copyMap(s.systems),
		components: copyMap(s.components),
		archives:   copyMap(s.archives),
		labs:       copyMap(s.labs),
		settings:   copyMap(s.settings),
		categories: copyMap(s.categories),
		brands:     copyMap(s.brands),
	}
}

func (s *Store) restore(snap snapshot) {
	s.items = snap.items
	s.units = snap.units
	s.purchases = snap.purchases
	s.vendors = snap.vendors
	s.systems = snap.systems
	s.components = snap.components
	s.archives = snap.archives
	s.labs = snap.labs
	s.settings = snap.settings
	s.categories = snap.categories
	s.brands = snap.brands
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Repositorios sin transacción: cada llamada toma y libera el mutex.

func (s *Store) Items() *ItemRepo           { return &ItemRepo{st: s} }
func (s *Store) ItemUnits() *ItemUnitRepo   { return &ItemUnitRepo{st: s} }
func (s *Store) Purchases() *PurchaseRepo   { return &PurchaseRepo{st: s} }
func (s *Store) Vendors() *VendorRepo       { return &VendorRepo{st: s} }
func (s *Store) Systems() *SystemRepo       { return &SystemRepo{st: s} }
func (s *Store) Components() *ComponentRepo { return &ComponentRepo{st: s} }
func (s *Store) Archives() *ArchiveRepo     { return &ArchiveRepo{st: s} }
func (s *Store) Labs() *LabRepo             { return &LabRepo{st: s} }
func (s *Store) Categories() *CategoryRepo  { return &CategoryRepo{st: s} }
func (s *Store) Brands() *BrandRepo         { return &BrandRepo{st: s} }

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta fn con el mutex del store tomado de punta a punta, lo
// que serializa las transacciones igual que los bloqueos de fila en
// PostgreSQL. Si fn falla, restaura el snapshot tomado al inicio: o se
// aplican todas las escrituras o ninguna.
type TxRunner struct {
	st *Store
}

// NewTxRunner construye el runner transaccional sobre el store.
func NewTxRunner(st *Store) *TxRunner {
	return &TxRunner{st: st}
}

// Run implementa ledger.TxRunner.
func (t *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	purchaseRepo repository.PurchaseRepository,
	componentRepo repository.ComponentRepository,
	archiveRepo repository.ArchiveRepository,
	systemRepo repository.SystemRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.st.mu.Lock()
	defer t.st.mu.Unlock()

	snap := t.st.snapshot()
	err := fn(
		&ItemRepo{st: t.st, inTx: true},
		&PurchaseRepo{st: t.st, inTx: true},
		&ComponentRepo{st: t.st, inTx: true},
		&ArchiveRepo{st: t.st, inTx: true},
		&SystemRepo{st: t.st, inTx: true},
	)
	if err != nil {
		t.st.restore(snap)
		return err
	}
	return nil
}
