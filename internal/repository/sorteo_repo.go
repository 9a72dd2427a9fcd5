package repository

import (
	"context"

	"github.com/razziiel/tcgnoa/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SorteoRepository interface {
	Create(ctx context.Context, s *model.Sorteo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sorteo, error)
	List(ctx context.Context) ([]model.Sorteo, error)
	AgregarParticipante(ctx context.Context, p *model.SorteoParticipante) error

	// Finalizar records the winner and deactivates, keyed on activo=true so a
	// raffle can only be drawn once.
	Finalizar(ctx context.Context, id uuid.UUID, ganador string) (bool, error)
}

type sorteoRepo struct{ db *gorm.DB }

func NewSorteoRepository(db *gorm.DB) SorteoRepository { return &sorteoRepo{db: db} }

func (r *sorteoRepo) Create(ctx context.Context, s *model.Sorteo) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sorteoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sorteo, error) {
	var s model.Sorteo
	err := r.db.WithContext(ctx).Preload("Participantes").First(&s, id).Error
	return &s, err
}

func (r *sorteoRepo) List(ctx context.Context) ([]model.Sorteo, error) {
	var sorteos []model.Sorteo
	err := r.db.WithContext(ctx).Preload("Participantes").Order("fecha DESC").Find(&sorteos).Error
	return sorteos, err
}

func (r *sorteoRepo) AgregarParticipante(ctx context.Context, p *model.SorteoParticipante) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *sorteoRepo) Finalizar(ctx context.Context, id uuid.UUID, ganador string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Sorteo{}).
		Where("id = ? AND activo = true", id).
		Updates(map[string]interface{}{"ganador": ganador, "activo": false})
	return res.RowsAffected > 0, res.Error
}
