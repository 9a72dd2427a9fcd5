package model

import (
	"time"

	"github.com/google/uuid"
)

// EventoLive is a live-stream collection: a subset of the catalog offered for
// claiming while the event is active.
type EventoLive struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Titulo      string    `gorm:"not null"`
	Descripcion string
	Fecha       time.Time `gorm:"not null"`
	Activa      bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Productos []EventoLiveProducto `gorm:"foreignKey:EventoID"`
}

func (EventoLive) TableName() string { return "eventos_live" }

// EventoLiveProducto links an event to one claimable product.
type EventoLiveProducto struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventoID   uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null"`
}

func (EventoLiveProducto) TableName() string { return "eventos_live_productos" }
