package repository

import (
	"context"

	"github.com/razziiel/tcgnoa/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventoLiveRepository interface {
	Create(ctx context.Context, e *model.EventoLive) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.EventoLive, error)
	List(ctx context.Context) ([]model.EventoLive, error)
	ListActivos(ctx context.Context) ([]model.EventoLive, error)
	Update(ctx context.Context, e *model.EventoLive) error
	SetActiva(ctx context.Context, id uuid.UUID, activa bool) error
	ReplaceProductos(ctx context.Context, eventoID uuid.UUID, productoIDs []uuid.UUID) error
}

type eventoLiveRepo struct{ db *gorm.DB }

func NewEventoLiveRepository(db *gorm.DB) EventoLiveRepository { return &eventoLiveRepo{db: db} }

func (r *eventoLiveRepo) Create(ctx context.Context, e *model.EventoLive) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *eventoLiveRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.EventoLive, error) {
	var e model.EventoLive
	err := r.db.WithContext(ctx).Preload("Productos").First(&e, id).Error
	return &e, err
}

func (r *eventoLiveRepo) List(ctx context.Context) ([]model.EventoLive, error) {
	var eventos []model.EventoLive
	err := r.db.WithContext(ctx).Preload("Productos").Order("fecha DESC").Find(&eventos).Error
	return eventos, err
}

func (r *eventoLiveRepo) ListActivos(ctx context.Context) ([]model.EventoLive, error) {
	var eventos []model.EventoLive
	err := r.db.WithContext(ctx).Preload("Productos").
		Where("activa = true").
		Order("fecha DESC").
		Find(&eventos).Error
	return eventos, err
}

func (r *eventoLiveRepo) Update(ctx context.Context, e *model.EventoLive) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *eventoLiveRepo) SetActiva(ctx context.Context, id uuid.UUID, activa bool) error {
	return r.db.WithContext(ctx).Model(&model.EventoLive{}).
		Where("id = ?", id).
		Update("activa", activa).Error
}

func (r *eventoLiveRepo) ReplaceProductos(ctx context.Context, eventoID uuid.UUID, productoIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("evento_id = ?", eventoID).
			Delete(&model.EventoLiveProducto{}).Error; err != nil {
			return err
		}
		for _, pid := range productoIDs {
			link := model.EventoLiveProducto{EventoID: eventoID, ProductoID: pid}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
