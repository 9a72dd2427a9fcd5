package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles gate access to the financial surfaces (gastos, arqueo history,
// transaction administration). Personal can operate the POS and terminals.
const (
	RolAdministrador = "Administrador"
	RolPersonal      = "Personal"
)

// Usuario is an operator profile.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre       string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Rol          string    `gorm:"type:varchar(20);not null"`
	AvatarURL    string
	Activo       bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
