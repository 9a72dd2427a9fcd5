package repository

import (
	"context"
	"time"

	"github.com/razziiel/tcgnoa/internal/dto"
	"github.com/razziiel/tcgnoa/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ResumenSesion aggregates a terminal session's sales for the arqueo.
type ResumenSesion struct {
	Total    decimal.Decimal
	Cantidad int
}

type TransaccionRepository interface {
	// CreateTx appends an immutable transaction (with item snapshots) inside
	// an open DB transaction so the caller can pair it with stock decrements.
	CreateTx(tx *gorm.DB, t *model.Transaccion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Transaccion, error)
	List(ctx context.Context, filter dto.TransaccionFilter) ([]model.Transaccion, int64, error)
	UpdateEstado(ctx context.Context, id uuid.UUID, estado model.EstadoTransaccion) error

	// ResumenSesionTx sums and counts the transactions attributed to a
	// terminal with fecha in [desde, hasta). Runs inside the close transaction
	// so the arqueo sees exactly the committed session window.
	ResumenSesionTx(tx *gorm.DB, terminalID uuid.UUID, desde, hasta time.Time) (*ResumenSesion, error)

	// TotalPorOrigen feeds the financial dashboard: sum of non-cancelled sales
	// grouped by origen.
	TotalPorOrigen(ctx context.Context) (map[model.OrigenTransaccion]decimal.Decimal, error)

	DB() *gorm.DB
}

type transaccionRepo struct{ db *gorm.DB }

func NewTransaccionRepository(db *gorm.DB) TransaccionRepository { return &transaccionRepo{db: db} }

func (r *transaccionRepo) CreateTx(tx *gorm.DB, t *model.Transaccion) error {
	return tx.Create(t).Error
}

func (r *transaccionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Transaccion, error) {
	var t model.Transaccion
	err := r.db.WithContext(ctx).Preload("Items").First(&t, id).Error
	return &t, err
}

func (r *transaccionRepo) List(ctx context.Context, filter dto.TransaccionFilter) ([]model.Transaccion, int64, error) {
	var transacciones []model.Transaccion
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Transaccion{})
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Origen != "" {
		q = q.Where("origen = ?", filter.Origen)
	}
	if filter.TerminalID != "" {
		q = q.Where("terminal_id = ?", filter.TerminalID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").
		Order("fecha DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&transacciones).Error
	return transacciones, total, err
}

func (r *transaccionRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado model.EstadoTransaccion) error {
	return r.db.WithContext(ctx).Model(&model.Transaccion{}).
		Where("id = ?", id).
		Update("estado", estado).Error
}

func (r *transaccionRepo) ResumenSesionTx(tx *gorm.DB, terminalID uuid.UUID, desde, hasta time.Time) (*ResumenSesion, error) {
	var row struct {
		Total    decimal.Decimal
		Cantidad int
	}
	err := tx.Model(&model.Transaccion{}).
		Select("COALESCE(SUM(total), 0) AS total, COUNT(*) AS cantidad").
		Where("terminal_id = ? AND fecha >= ? AND fecha < ?", terminalID, desde, hasta).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &ResumenSesion{Total: row.Total, Cantidad: row.Cantidad}, nil
}

func (r *transaccionRepo) TotalPorOrigen(ctx context.Context) (map[model.OrigenTransaccion]decimal.Decimal, error) {
	var rows []struct {
		Origen model.OrigenTransaccion
		Total  decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Transaccion{}).
		Select("origen, COALESCE(SUM(total), 0) AS total").
		Where("estado <> ?", model.EstadoCancelado).
		Group("origen").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	sums := make(map[model.OrigenTransaccion]decimal.Decimal, len(rows))
	for _, row := range rows {
		sums[row.Origen] = row.Total
	}
	return sums, nil
}

func (r *transaccionRepo) DB() *gorm.DB { return r.db }
