package service

import (
	"context"
	"errors"
	"sync"

	"github.com/razziiel/tcgnoa/internal/dto"
	"github.com/razziiel/tcgnoa/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrCajaCerrada is returned when a cart operation needs an open terminal.
var ErrCajaCerrada = errors.New("Caja cerrada: abrí una terminal antes de vender")

// CarritoItem is a product snapshot plus the requested quantity. Nombre and
// Precio are frozen at add time; settlement uses these values, not the live
// catalog row.
type CarritoItem struct {
	ProductoID uuid.UUID
	Nombre     string
	Precio     decimal.Decimal
	Cantidad   int
}

// CarritoService keeps one in-memory cart per operator. Carts are process
// local and ephemeral: they never outlive the terminal session they are bound
// to, and they never touch catalog stock. Stock is only adjusted at
// settlement.
type CarritoService interface {
	// Agregar appends the product (or bumps its line). Refused with
	// ErrCajaCerrada when the operator has no open terminal.
	Agregar(ctx context.Context, operadorID, productoID uuid.UUID) error
	// FijarCantidad sets a line's quantity exactly; n ≤ 0 removes the line.
	FijarCantidad(operadorID, productoID uuid.UUID, cantidad int)
	Obtener(operadorID uuid.UUID) []CarritoItem
	Total(operadorID uuid.UUID) decimal.Decimal
	Vaciar(operadorID uuid.UUID)
	Resumen(operadorID uuid.UUID) *dto.CarritoResponse
}

type carritoService struct {
	mu        sync.Mutex
	carritos  map[uuid.UUID][]CarritoItem
	productos repository.ProductoRepository
	terminal  repository.TerminalRepository
}

func NewCarritoService(productos repository.ProductoRepository, terminal repository.TerminalRepository) CarritoService {
	return &carritoService{
		carritos:  make(map[uuid.UUID][]CarritoItem),
		productos: productos,
		terminal:  terminal,
	}
}

func (s *carritoService) Agregar(ctx context.Context, operadorID, productoID uuid.UUID) error {
	abierta, err := s.terminal.FindAbiertaPorUsuario(ctx, operadorID)
	if err != nil {
		return err
	}
	if abierta == nil {
		return ErrCajaCerrada
	}

	p, err := s.productos.FindByID(ctx, productoID)
	if err != nil {
		return errors.New("producto no encontrado")
	}
	if p.Archivado() {
		return errors.New("el producto está archivado y no puede venderse")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carritos[operadorID]
	for i := range items {
		if items[i].ProductoID == productoID {
			items[i].Cantidad++
			return nil
		}
	}
	s.carritos[operadorID] = append(items, CarritoItem{
		ProductoID: p.ID,
		Nombre:     p.Nombre,
		Precio:     p.PrecioVenta,
		Cantidad:   1,
	})
	return nil
}

func (s *carritoService) FijarCantidad(operadorID, productoID uuid.UUID, cantidad int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carritos[operadorID]
	if cantidad <= 0 {
		filtered := items[:0]
		for _, it := range items {
			if it.ProductoID != productoID {
				filtered = append(filtered, it)
			}
		}
		s.carritos[operadorID] = filtered
		return
	}
	for i := range items {
		if items[i].ProductoID == productoID {
			items[i].Cantidad = cantidad
			return
		}
	}
}

func (s *carritoService) Obtener(operadorID uuid.UUID) []CarritoItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carritos[operadorID]
	out := make([]CarritoItem, len(items))
	copy(out, items)
	return out
}

func (s *carritoService) Total(operadorID uuid.UUID) decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Obtener(operadorID) {
		total = total.Add(it.Precio.Mul(decimal.NewFromInt(int64(it.Cantidad))))
	}
	return total
}

func (s *carritoService) Vaciar(operadorID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carritos, operadorID)
}

func (s *carritoService) Resumen(operadorID uuid.UUID) *dto.CarritoResponse {
	items := s.Obtener(operadorID)
	resp := &dto.CarritoResponse{Items: make([]dto.CarritoItemResponse, 0, len(items)), Total: decimal.Zero}
	for _, it := range items {
		subtotal := it.Precio.Mul(decimal.NewFromInt(int64(it.Cantidad)))
		resp.Items = append(resp.Items, dto.CarritoItemResponse{
			ProductoID: it.ProductoID.String(),
			Nombre:     it.Nombre,
			Precio:     it.Precio,
			Cantidad:   it.Cantidad,
			Subtotal:   subtotal,
		})
		resp.Total = resp.Total.Add(subtotal)
	}
	return resp
}
