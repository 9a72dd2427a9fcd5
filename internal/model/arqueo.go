package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Arqueo is the immutable closing report of one terminal session.
// TotalVentas and CantidadVentas reflect exactly the transactions attributed
// to the terminal with fecha inside [FechaApertura, FechaCierre). Created once
// per close, never updated or deleted.
type Arqueo struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TerminalID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	TerminalNombre string          `gorm:"not null"` // snapshot — terminal can be renamed later
	VendedorID     uuid.UUID       `gorm:"type:uuid;not null"`
	VendedorNombre string          `gorm:"not null"`
	FechaApertura  time.Time       `gorm:"not null"`
	FechaCierre    time.Time       `gorm:"index;not null"`
	TotalVentas    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CantidadVentas int             `gorm:"not null"`
	CreatedAt      time.Time
}
