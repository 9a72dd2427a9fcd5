package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DetalleCarta holds the card-specific attributes of a catalog entry.
// Stored flattened on the productos table.
type DetalleCarta struct {
	SetNombre   string `gorm:"column:carta_set"`
	NumeroCarta string `gorm:"column:carta_numero"`
	Rareza      string `gorm:"column:carta_rareza"`
	Acabado     string `gorm:"column:carta_acabado"` // "Foil" | "No-Foil" | "Reverse Holo" | "Texturizada"
	Anio        int    `gorm:"column:carta_anio"`
}

// Producto represents a catalog entry: a single card, a sealed box, sleeves, etc.
// Stock is a non-negative counter; every decrement goes through a conditional
// UPDATE so it can never cross zero. Products are never deleted — archiving
// sets ArchivedAt and removes them from all sale surfaces.
type Producto struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CategoriaID  string          `gorm:"index;not null"` // TCG game: Pokémon, Magic, Yu-Gi-Oh!, One Piece, Lorcana
	SubCategoria string          `gorm:"not null"`       // Cartas Sueltas | Sobres | Sellados | Carpetas | Protectores
	Nombre       string          `gorm:"index;not null"`
	Condicion    string          `gorm:"not null;default:'Menta'"` // Menta | Casi Nueva (NM) | Poco Uso (LP) | Uso Moderado (MP) | Muy Usada (HP) | Dañada
	PrecioCompra decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioVenta  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock        int             `gorm:"not null;default:0;check:stock >= 0"`
	Detalle      DetalleCarta    `gorm:"embedded"`
	ImagenURL    string

	// Auction fields — a product flagged EsSubasta accepts bids through the
	// live storefront; OfertaActual is nil until the first valid bid lands.
	EsSubasta    bool             `gorm:"not null;default:false"`
	OfertaActual *decimal.Decimal `gorm:"type:decimal(12,2)"`
	FinSubasta   *time.Time

	EsDrop     bool `gorm:"not null;default:false"`
	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Archivado reports whether the product is excluded from sale surfaces.
func (p *Producto) Archivado() bool { return p.ArchivedAt != nil }

// PrecioActualSubasta returns the price a new bid must beat: the current bid
// when one exists, the sale price otherwise.
func (p *Producto) PrecioActualSubasta() decimal.Decimal {
	if p.OfertaActual != nil {
		return *p.OfertaActual
	}
	return p.PrecioVenta
}
