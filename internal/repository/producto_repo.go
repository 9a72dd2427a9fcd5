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

// ProductoRepository defines the data access contract for the catalog.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	ListVendibles(ctx context.Context) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	Archivar(ctx context.Context, id uuid.UUID, cuando time.Time) error
	Restaurar(ctx context.Context, id uuid.UUID) error
	SetSubasta(ctx context.Context, id uuid.UUID, esSubasta bool) error

	// AjustarStock applies a manual delta. Negative deltas are conditional on
	// sufficient stock; returns false when the guard fails.
	AjustarStock(ctx context.Context, id uuid.UUID, delta int) (bool, error)

	// DescontarStockTx decrements stock inside a settlement transaction.
	// The UPDATE is keyed on stock >= cantidad; returns false (no rows) when
	// the product lacks stock, so the caller can roll back the whole sale.
	DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (bool, error)

	// Ofertar records a bid conditionally: the row is only touched when monto
	// still beats the stored current bid (or the sale price when no bid
	// exists). Returns false when the precondition fails.
	Ofertar(ctx context.Context, id uuid.UUID, monto decimal.Decimal) (bool, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var productos []model.Producto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Producto{})

	// Archivado filter: "true" = solo archivados, "all" = todos, default = activos
	switch filter.Archivado {
	case "true":
		q = q.Where("archived_at IS NOT NULL")
	case "all":
		// no filter
	default:
		q = q.Where("archived_at IS NULL")
	}

	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}
	if filter.Categoria != "" {
		q = q.Where("categoria_id = ?", filter.Categoria)
	}
	if filter.SubCategoria != "" {
		q = q.Where("sub_categoria = ?", filter.SubCategoria)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) ListVendibles(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Where("archived_at IS NULL").
		Order("nombre ASC").
		Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Archivar(ctx context.Context, id uuid.UUID, cuando time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("id = ?", id).
		Update("archived_at", cuando).Error
}

func (r *productoRepo) Restaurar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("id = ?", id).
		Update("archived_at", nil).Error
}

func (r *productoRepo) SetSubasta(ctx context.Context, id uuid.UUID, esSubasta bool) error {
	// Toggling in either direction resets the bid — a fresh auction must be
	// beaten against the sale price, not a stale bid.
	return r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"es_subasta": esSubasta, "oferta_actual": nil}).Error
}

func (r *productoRepo) AjustarStock(ctx context.Context, id uuid.UUID, delta int) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id)
	if delta < 0 {
		q = q.Where("stock >= ?", -delta)
	}
	res := q.Update("stock", gorm.Expr("stock + ?", delta))
	return res.RowsAffected > 0, res.Error
}

func (r *productoRepo) DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (bool, error) {
	res := tx.Model(&model.Producto{}).
		Where("id = ? AND stock >= ?", id, cantidad).
		Update("stock", gorm.Expr("stock - ?", cantidad))
	return res.RowsAffected > 0, res.Error
}

func (r *productoRepo) Ofertar(ctx context.Context, id uuid.UUID, monto decimal.Decimal) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("id = ? AND es_subasta = true AND archived_at IS NULL", id).
		Where("(oferta_actual IS NULL OR oferta_actual < ?) AND (oferta_actual IS NOT NULL OR precio_venta < ?)", monto, monto).
		Update("oferta_actual", monto)
	return res.RowsAffected > 0, res.Error
}

func (r *productoRepo) DB() *gorm.DB { return r.db }
