package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Gasto is an operating expense entry for the financial dashboard.
// Categoria: "Logística" | "Marketing" | "Personal" | "Alquiler/Stand" | "Otros"
type Gasto struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Descripcion string          `gorm:"not null"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Fecha       time.Time       `gorm:"index;not null"`
	Categoria   string          `gorm:"type:varchar(30);not null"`
	CreatedAt   time.Time
}
