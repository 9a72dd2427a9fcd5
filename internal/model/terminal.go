package model

import (
	"time"

	"github.com/google/uuid"
)

// Terminal is a physical or virtual caja. At most one operator holds it at a
// time: Activa plus the owner snapshot flip together under a conditional
// UPDATE, so two concurrent opens can never both win.
type Terminal struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	Ubicacion string
	Activa    bool `gorm:"not null;default:false"`

	// Owner snapshot — set on open, cleared on close. UltimaApertura survives
	// the close so the last session window stays inspectable.
	UserID         *uuid.UUID `gorm:"type:uuid;index"`
	UserName       *string
	UltimaApertura *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Terminal) TableName() string { return "terminales" }

// AbiertaPor reports whether the terminal is currently held by userID.
func (t *Terminal) AbiertaPor(userID uuid.UUID) bool {
	return t.Activa && t.UserID != nil && *t.UserID == userID
}
