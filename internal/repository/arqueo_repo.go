package repository

import (
	"context"

	"github.com/razziiel/tcgnoa/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ArqueoRepository is append-only: arqueos are immutable audit records.
type ArqueoRepository interface {
	// CreateTx runs inside the terminal-close transaction so the arqueo and
	// the terminal release commit or roll back together.
	CreateTx(tx *gorm.DB, a *model.Arqueo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Arqueo, error)
	List(ctx context.Context, page, limit int) ([]model.Arqueo, int64, error)
}

type arqueoRepo struct{ db *gorm.DB }

func NewArqueoRepository(db *gorm.DB) ArqueoRepository { return &arqueoRepo{db: db} }

func (r *arqueoRepo) CreateTx(tx *gorm.DB, a *model.Arqueo) error {
	return tx.Create(a).Error
}

func (r *arqueoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Arqueo, error) {
	var a model.Arqueo
	err := r.db.WithContext(ctx).First(&a, id).Error
	return &a, err
}

func (r *arqueoRepo) List(ctx context.Context, page, limit int) ([]model.Arqueo, int64, error) {
	var arqueos []model.Arqueo
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Arqueo{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("fecha_cierre DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&arqueos).Error
	return arqueos, total, err
}
