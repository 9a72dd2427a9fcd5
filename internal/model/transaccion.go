package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EstadoTransaccion is the lifecycle state of a sale.
// Pendiente is the only non-terminal state.
type EstadoTransaccion string

const (
	EstadoPendiente EstadoTransaccion = "Pendiente"
	EstadoPagado    EstadoTransaccion = "Pagado"
	EstadoCancelado EstadoTransaccion = "Cancelado"
)

// Valida reports whether the value is a known estado.
func (e EstadoTransaccion) Valida() bool {
	switch e {
	case EstadoPendiente, EstadoPagado, EstadoCancelado:
		return true
	}
	return false
}

// Transicionar validates the state change and returns the new estado.
// The only legal moves are Pendiente → Pagado and Pendiente → Cancelado;
// Pagado and Cancelado are terminal.
func (e EstadoTransaccion) Transicionar(nuevo EstadoTransaccion) (EstadoTransaccion, error) {
	if !nuevo.Valida() {
		return e, fmt.Errorf("estado desconocido: %q", string(nuevo))
	}
	if e != EstadoPendiente || nuevo == EstadoPendiente {
		return e, fmt.Errorf("transición no permitida: %s → %s", e, nuevo)
	}
	return nuevo, nil
}

// OrigenTransaccion identifies the sale path that produced a transaction.
type OrigenTransaccion string

const (
	OrigenPOS     OrigenTransaccion = "POS"
	OrigenClaim   OrigenTransaccion = "CLAIM"
	OrigenSubasta OrigenTransaccion = "SUBASTA"
)

// Transaccion is the immutable record of a completed or pending sale.
// Total and the per-line price snapshots are fixed at creation time and never
// recomputed; the estado field is the only mutable attribute, and only through
// EstadoTransaccion.Transicionar. Rows are never deleted.
type Transaccion struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha      time.Time         `gorm:"index;not null"`
	Vendedor   string            `gorm:"not null"` // display name snapshot
	VendedorID string            `gorm:"index;not null"`
	TerminalID *uuid.UUID        `gorm:"type:uuid;index"` // nil for CLAIM sales
	Cliente    string            `gorm:"not null"`
	Total      decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	Estado     EstadoTransaccion `gorm:"type:varchar(20);not null;default:'Pendiente'"`
	Origen     OrigenTransaccion `gorm:"type:varchar(20);not null"`
	CreatedAt  time.Time

	Items []TransaccionItem `gorm:"foreignKey:TransaccionID"`
}

func (Transaccion) TableName() string { return "transacciones" }

// TransaccionItem is a product snapshot inside a transaction. Nombre and
// Precio are copied at settlement time so later catalog edits cannot alter
// recorded history.
type TransaccionItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TransaccionID uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductoID    uuid.UUID       `gorm:"type:uuid;not null"`
	Nombre        string          `gorm:"not null"`
	Cantidad      int             `gorm:"not null"`
	Precio        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (TransaccionItem) TableName() string { return "transaccion_items" }
