package service

// In-memory repository stubs. DB() returns nil so runTx executes the
// callback directly, without a real transaction.

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/razziiel/tcgnoa/internal/dto"
	"github.com/razziiel/tcgnoa/internal/model"
	"github.com/razziiel/tcgnoa/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── ProductoRepository ───────────────────────────────────────────────────────

type stubProductoRepo struct {
	mu        sync.Mutex
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) seed(p model.Producto) uuid.UUID {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.productos[p.ID] = &p
	return p.ID
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	p.ID = uuid.New()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	copia := *p
	return &copia, nil
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) ListVendibles(_ context.Context) ([]model.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Producto
	for _, p := range r.productos {
		if p.ArchivedAt == nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copia := *p
	r.productos[p.ID] = &copia
	return nil
}

func (r *stubProductoRepo) Archivar(_ context.Context, id uuid.UUID, cuando time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.productos[id]; ok {
		p.ArchivedAt = &cuando
	}
	return nil
}

func (r *stubProductoRepo) Restaurar(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.productos[id]; ok {
		p.ArchivedAt = nil
	}
	return nil
}

func (r *stubProductoRepo) SetSubasta(_ context.Context, id uuid.UUID, esSubasta bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.productos[id]; ok {
		p.EsSubasta = esSubasta
		p.OfertaActual = nil
	}
	return nil
}

func (r *stubProductoRepo) AjustarStock(_ context.Context, id uuid.UUID, delta int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok {
		return false, nil
	}
	if delta < 0 && p.Stock < -delta {
		return false, nil
	}
	p.Stock += delta
	return true, nil
}

func (r *stubProductoRepo) DescontarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok || p.Stock < cantidad {
		return false, nil
	}
	p.Stock -= cantidad
	return true, nil
}

func (r *stubProductoRepo) Ofertar(_ context.Context, id uuid.UUID, monto decimal.Decimal) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok || !p.EsSubasta || p.ArchivedAt != nil {
		return false, nil
	}
	if p.OfertaActual == nil {
		if !p.PrecioVenta.LessThan(monto) {
			return false, nil
		}
	} else if !p.OfertaActual.LessThan(monto) {
		return false, nil
	}
	copia := monto
	p.OfertaActual = &copia
	return true, nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

// ── TerminalRepository ───────────────────────────────────────────────────────

type stubTerminalRepo struct {
	mu         sync.Mutex
	terminales map[uuid.UUID]*model.Terminal
}

func newStubTerminalRepo() *stubTerminalRepo {
	return &stubTerminalRepo{terminales: make(map[uuid.UUID]*model.Terminal)}
}

func (r *stubTerminalRepo) seed(t model.Terminal) uuid.UUID {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.terminales[t.ID] = &t
	return t.ID
}

func (r *stubTerminalRepo) Create(_ context.Context, t *model.Terminal) error {
	t.ID = uuid.New()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.terminales[t.ID] = t
	return nil
}

func (r *stubTerminalRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Terminal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.terminales[id]
	if !ok {
		return nil, errors.New("not found")
	}
	copia := *t
	return &copia, nil
}

func (r *stubTerminalRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Terminal, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubTerminalRepo) List(_ context.Context) ([]model.Terminal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Terminal, 0, len(r.terminales))
	for _, t := range r.terminales {
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubTerminalRepo) FindAbiertaPorUsuario(_ context.Context, userID uuid.UUID) (*model.Terminal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.terminales {
		if t.Activa && t.UserID != nil && *t.UserID == userID {
			copia := *t
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *stubTerminalRepo) Abrir(_ context.Context, id, userID uuid.UUID, userName string, apertura time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.terminales[id]
	if !ok || t.Activa {
		return false, nil
	}
	t.Activa = true
	t.UserID = &userID
	t.UserName = &userName
	t.UltimaApertura = &apertura
	return true, nil
}

func (r *stubTerminalRepo) CerrarTx(_ *gorm.DB, id, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.terminales[id]
	if !ok || !t.Activa || t.UserID == nil || *t.UserID != userID {
		return false, nil
	}
	t.Activa = false
	t.UserID = nil
	t.UserName = nil
	return true, nil
}

func (r *stubTerminalRepo) DB() *gorm.DB { return nil }

// ── TransaccionRepository ────────────────────────────────────────────────────

type stubTransaccionRepo struct {
	mu            sync.Mutex
	transacciones []*model.Transaccion
}

func newStubTransaccionRepo() *stubTransaccionRepo { return &stubTransaccionRepo{} }

func (r *stubTransaccionRepo) CreateTx(_ *gorm.DB, t *model.Transaccion) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transacciones = append(r.transacciones, t)
	return nil
}

func (r *stubTransaccionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Transaccion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.transacciones {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubTransaccionRepo) List(_ context.Context, filter dto.TransaccionFilter) ([]model.Transaccion, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Transaccion
	for _, t := range r.transacciones {
		if filter.Estado != "" && filter.Estado != "all" && string(t.Estado) != filter.Estado {
			continue
		}
		if filter.Origen != "" && string(t.Origen) != filter.Origen {
			continue
		}
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (r *stubTransaccionRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado model.EstadoTransaccion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.transacciones {
		if t.ID == id {
			t.Estado = estado
			return nil
		}
	}
	return errors.New("not found")
}

func (r *stubTransaccionRepo) ResumenSesionTx(_ *gorm.DB, terminalID uuid.UUID, desde, hasta time.Time) (*repository.ResumenSesion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resumen := &repository.ResumenSesion{Total: decimal.Zero}
	for _, t := range r.transacciones {
		if t.TerminalID == nil || *t.TerminalID != terminalID {
			continue
		}
		if t.Fecha.Before(desde) || !t.Fecha.Before(hasta) {
			continue
		}
		resumen.Total = resumen.Total.Add(t.Total)
		resumen.Cantidad++
	}
	return resumen, nil
}

func (r *stubTransaccionRepo) TotalPorOrigen(_ context.Context) (map[model.OrigenTransaccion]decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sums := make(map[model.OrigenTransaccion]decimal.Decimal)
	for _, t := range r.transacciones {
		if t.Estado == model.EstadoCancelado {
			continue
		}
		sums[t.Origen] = sums[t.Origen].Add(t.Total)
	}
	return sums, nil
}

func (r *stubTransaccionRepo) DB() *gorm.DB { return nil }

// ── ArqueoRepository ─────────────────────────────────────────────────────────

type stubArqueoRepo struct {
	mu      sync.Mutex
	arqueos []*model.Arqueo
}

func newStubArqueoRepo() *stubArqueoRepo { return &stubArqueoRepo{} }

func (r *stubArqueoRepo) CreateTx(_ *gorm.DB, a *model.Arqueo) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.arqueos = append(r.arqueos, a)
	return nil
}

func (r *stubArqueoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Arqueo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.arqueos {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubArqueoRepo) List(_ context.Context, page, limit int) ([]model.Arqueo, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Arqueo, 0, len(r.arqueos))
	for _, a := range r.arqueos {
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}
