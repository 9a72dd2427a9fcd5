package model

import (
	"time"

	"github.com/google/uuid"
)

// Sorteo is a raffle run during a live event. Participants accumulate while
// Activo; drawing a winner deactivates the raffle.
type Sorteo struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Titulo    string    `gorm:"not null"`
	Ganador   *string
	Fecha     time.Time `gorm:"not null"`
	Activo    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Participantes []SorteoParticipante `gorm:"foreignKey:SorteoID"`
}

// SorteoParticipante is one entry in a raffle.
type SorteoParticipante struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SorteoID uuid.UUID `gorm:"type:uuid;index;not null"`
	Nombre   string    `gorm:"not null"`
}
