package repository

import (
	"context"
	"errors"
	"time"

	"github.com/razziiel/tcgnoa/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TerminalRepository interface {
	Create(ctx context.Context, t *model.Terminal) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Terminal, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Terminal, error)
	List(ctx context.Context) ([]model.Terminal, error)
	FindAbiertaPorUsuario(ctx context.Context, userID uuid.UUID) (*model.Terminal, error)

	// Abrir claims the terminal with a compare-and-swap on activa=false.
	// Returns false when the terminal was already open — the existing owner is
	// never overwritten, no matter who races.
	Abrir(ctx context.Context, id, userID uuid.UUID, userName string, apertura time.Time) (bool, error)

	// CerrarTx releases the terminal inside the close transaction, keyed on
	// activa=true AND the caller being the recorded owner.
	CerrarTx(tx *gorm.DB, id, userID uuid.UUID) (bool, error)

	DB() *gorm.DB
}

type terminalRepo struct{ db *gorm.DB }

func NewTerminalRepository(db *gorm.DB) TerminalRepository { return &terminalRepo{db: db} }

func (r *terminalRepo) Create(ctx context.Context, t *model.Terminal) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *terminalRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Terminal, error) {
	var t model.Terminal
	err := r.db.WithContext(ctx).First(&t, id).Error
	return &t, err
}

func (r *terminalRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Terminal, error) {
	var t model.Terminal
	err := tx.First(&t, id).Error
	return &t, err
}

func (r *terminalRepo) List(ctx context.Context) ([]model.Terminal, error) {
	var terminales []model.Terminal
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&terminales).Error
	return terminales, err
}

func (r *terminalRepo) FindAbiertaPorUsuario(ctx context.Context, userID uuid.UUID) (*model.Terminal, error) {
	var t model.Terminal
	err := r.db.WithContext(ctx).
		Where("activa = true AND user_id = ?", userID).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *terminalRepo) Abrir(ctx context.Context, id, userID uuid.UUID, userName string, apertura time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Terminal{}).
		Where("id = ? AND activa = false", id).
		Updates(map[string]interface{}{
			"activa":          true,
			"user_id":         userID,
			"user_name":       userName,
			"ultima_apertura": apertura,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *terminalRepo) CerrarTx(tx *gorm.DB, id, userID uuid.UUID) (bool, error) {
	res := tx.Model(&model.Terminal{}).
		Where("id = ? AND activa = true AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"activa":    false,
			"user_id":   nil,
			"user_name": nil,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *terminalRepo) DB() *gorm.DB { return r.db }
