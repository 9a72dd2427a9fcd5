package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/razziiel/tcgnoa/internal/dto"
	"github.com/razziiel/tcgnoa/internal/model"
	"github.com/razziiel/tcgnoa/internal/notify"
	"github.com/razziiel/tcgnoa/internal/repository"
	"github.com/razziiel/tcgnoa/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Operador identifies the authenticated seller attributed to a sale.
type Operador struct {
	ID     uuid.UUID
	Nombre string
}

// Synthetic identity attributed to live-claim sales — claims come from the
// public storefront, not from an operator session.
const (
	VendedorLive   = "Sistema Live"
	VendedorLiveID = "system"
	ClienteLive    = "Usuario Live"
)

// VentaService is the single path through which a sale becomes a persisted
// Transaccion plus a stock mutation. POS checkout, live claims, and auction
// bids all settle here.
type VentaService interface {
	CompletarVenta(ctx context.Context, op Operador, req dto.CompletarVentaRequest) (*dto.TransaccionResponse, error)
	RegistrarClaim(ctx context.Context, productoID uuid.UUID) (*dto.TransaccionResponse, error)
	Ofertar(ctx context.Context, productoID uuid.UUID, monto decimal.Decimal) error
	ActualizarEstado(ctx context.Context, id uuid.UUID, nuevo model.EstadoTransaccion) error
	Listar(ctx context.Context, filter dto.TransaccionFilter) (*dto.TransaccionListResponse, error)
}

type ventaService struct {
	repo       repository.TransaccionRepository
	productos  repository.ProductoRepository
	terminales repository.TerminalRepository
	carrito    CarritoService
	notifier   notify.Notifier
	dispatcher *worker.Dispatcher
}

func NewVentaService(
	repo repository.TransaccionRepository,
	productos repository.ProductoRepository,
	terminales repository.TerminalRepository,
	carrito CarritoService,
	notifier notify.Notifier,
	dispatcher *worker.Dispatcher,
) VentaService {
	return &ventaService{
		repo:       repo,
		productos:  productos,
		terminales: terminales,
		carrito:    carrito,
		notifier:   notifier,
		dispatcher: dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── CompletarVenta ────────────────────────────────────────────────────────────
// POS checkout. One ACID transaction covers the transaction append and every
// stock decrement: a single line with insufficient stock rolls back the whole
// sale, so the catalog never records a partial checkout.

func (s *ventaService) CompletarVenta(ctx context.Context, op Operador, req dto.CompletarVentaRequest) (*dto.TransaccionResponse, error) {
	terminal, err := s.terminales.FindAbiertaPorUsuario(ctx, op.ID)
	if err != nil {
		return nil, err
	}
	if terminal == nil {
		return nil, ErrCajaCerrada
	}

	items := s.carrito.Obtener(op.ID)
	if len(items) == 0 {
		return nil, errors.New("el carrito está vacío")
	}

	cliente := req.Cliente
	if cliente == "" {
		cliente = "Consumidor Final"
	}

	// Total is fixed here, from the cart's price snapshots. It is never
	// recomputed after creation.
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Precio.Mul(decimal.NewFromInt(int64(it.Cantidad))))
	}

	terminalID := terminal.ID
	transaccion := model.Transaccion{
		Fecha:      time.Now().UTC(),
		Vendedor:   op.Nombre,
		VendedorID: op.ID.String(),
		TerminalID: &terminalID,
		Cliente:    cliente,
		Total:      total,
		Estado:     model.EstadoPagado,
		Origen:     model.OrigenPOS,
	}
	for _, it := range items {
		transaccion.Items = append(transaccion.Items, model.TransaccionItem{
			ProductoID: it.ProductoID,
			Nombre:     it.Nombre,
			Cantidad:   it.Cantidad,
			Precio:     it.Precio,
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &transaccion); err != nil {
			return err
		}
		for _, it := range items {
			ok, err := s.productos.DescontarStockTx(tx, it.ProductoID, it.Cantidad)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("stock insuficiente para %s", it.Nombre)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.carrito.Vaciar(op.ID)
	s.notifier.Publicar(ctx, notify.ColTransacciones, "created", transaccion.ID.String())
	s.notifier.Publicar(ctx, notify.ColProductos, "updated", "")

	return transaccionToResponse(&transaccion), nil
}

// ── RegistrarClaim ────────────────────────────────────────────────────────────
// A live viewer claims one unit. The decrement is conditional on stock >= 1 in
// the same transaction as the pending-sale append, so two racing claims on the
// last unit cannot both settle.

func (s *ventaService) RegistrarClaim(ctx context.Context, productoID uuid.UUID) (*dto.TransaccionResponse, error) {
	p, err := s.productos.FindByID(ctx, productoID)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	if p.Archivado() {
		return nil, errors.New("el producto no está disponible")
	}
	if p.Stock <= 0 {
		return nil, errors.New("sin stock disponible para claim")
	}

	transaccion := model.Transaccion{
		Fecha:      time.Now().UTC(),
		Vendedor:   VendedorLive,
		VendedorID: VendedorLiveID,
		Cliente:    ClienteLive,
		Total:      p.PrecioVenta,
		Estado:     model.EstadoPendiente,
		Origen:     model.OrigenClaim,
		Items: []model.TransaccionItem{{
			ProductoID: p.ID,
			Nombre:     p.Nombre,
			Cantidad:   1,
			Precio:     p.PrecioVenta,
		}},
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ok, err := s.productos.DescontarStockTx(tx, p.ID, 1)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("sin stock disponible para claim")
		}
		return s.repo.CreateTx(tx, &transaccion)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.notifier.Publicar(ctx, notify.ColTransacciones, "created", transaccion.ID.String())
	s.notifier.Publicar(ctx, notify.ColProductos, "updated", p.ID.String())

	// Best-effort claim alert for the operator running the stream.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueClaimAlert(ctx, map[string]interface{}{
			"transaccion_id": transaccion.ID.String(),
			"producto":       p.Nombre,
			"precio":         p.PrecioVenta.String(),
		})
	}

	return transaccionToResponse(&transaccion), nil
}

// ── Ofertar ───────────────────────────────────────────────────────────────────
// Bid tracking only — no Transaccion is created until an auction is settled
// manually. The repository UPDATE is keyed on the bid still beating the stored
// price, so a stale read can never lower the recorded bid.

func (s *ventaService) Ofertar(ctx context.Context, productoID uuid.UUID, monto decimal.Decimal) error {
	ok, err := s.productos.Ofertar(ctx, productoID, monto)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("la oferta debe ser mayor a la actual")
	}
	s.notifier.Publicar(ctx, notify.ColProductos, "updated", productoID.String())
	return nil
}

// ── ActualizarEstado ──────────────────────────────────────────────────────────
// Pendiente → Pagado | Cancelado, nothing else. Cancelling a pending claim
// does not restore the decremented stock: the unit stays reserved until an
// admin re-adjusts inventory explicitly.

func (s *ventaService) ActualizarEstado(ctx context.Context, id uuid.UUID, nuevo model.EstadoTransaccion) error {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("transacción no encontrada")
	}
	siguiente, err := t.Estado.Transicionar(nuevo)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateEstado(ctx, id, siguiente); err != nil {
		return err
	}
	s.notifier.Publicar(ctx, notify.ColTransacciones, "updated", id.String())
	return nil
}

// Listar returns sales ordered by fecha descending.
func (s *ventaService) Listar(ctx context.Context, filter dto.TransaccionFilter) (*dto.TransaccionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	transacciones, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransaccionResponse, 0, len(transacciones))
	for i := range transacciones {
		items = append(items, *transaccionToResponse(&transacciones[i]))
	}
	return &dto.TransaccionListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func transaccionToResponse(t *model.Transaccion) *dto.TransaccionResponse {
	items := make([]dto.ItemTransaccionResponse, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, dto.ItemTransaccionResponse{
			ProductoID: it.ProductoID.String(),
			Nombre:     it.Nombre,
			Cantidad:   it.Cantidad,
			Precio:     it.Precio,
		})
	}
	var terminalID *string
	if t.TerminalID != nil {
		id := t.TerminalID.String()
		terminalID = &id
	}
	return &dto.TransaccionResponse{
		ID:         t.ID.String(),
		Fecha:      t.Fecha.Format(time.RFC3339),
		Vendedor:   t.Vendedor,
		VendedorID: t.VendedorID,
		TerminalID: terminalID,
		Cliente:    t.Cliente,
		Total:      t.Total,
		Estado:     string(t.Estado),
		Origen:     string(t.Origen),
		Items:      items,
	}
}
