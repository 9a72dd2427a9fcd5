package service

import (
	"context"
	"testing"
	"time"

	"github.com/razziiel/tcgnoa/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCarritoFixture(t *testing.T) (*stubProductoRepo, *stubTerminalRepo, CarritoService, Operador) {
	t.Helper()
	productos := newStubProductoRepo()
	terminales := newStubTerminalRepo()
	svc := NewCarritoService(productos, terminales)
	op := Operador{ID: uuid.New(), Nombre: "Ana"}
	return productos, terminales, svc, op
}

func abrirCajaPara(t *testing.T, terminales *stubTerminalRepo, op Operador) {
	t.Helper()
	id := terminales.seed(model.Terminal{Nombre: "Caja"})
	ok, err := terminales.Abrir(context.Background(), id, op.ID, op.Nombre, time.Now().UTC())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAgregarSinCajaAbierta(t *testing.T) {
	productos, _, svc, op := newCarritoFixture(t)
	carta := productos.seed(model.Producto{Nombre: "Eevee", PrecioVenta: decimal.NewFromInt(50), Stock: 5})

	err := svc.Agregar(context.Background(), op.ID, carta)
	require.ErrorIs(t, err, ErrCajaCerrada)
	assert.Empty(t, svc.Obtener(op.ID))
}

func TestAgregarAcumulaLinea(t *testing.T) {
	productos, terminales, svc, op := newCarritoFixture(t)
	abrirCajaPara(t, terminales, op)
	carta := productos.seed(model.Producto{Nombre: "Eevee", PrecioVenta: decimal.NewFromInt(50), Stock: 5})

	ctx := context.Background()
	require.NoError(t, svc.Agregar(ctx, op.ID, carta))
	require.NoError(t, svc.Agregar(ctx, op.ID, carta))

	items := svc.Obtener(op.ID)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Cantidad)
	assert.True(t, decimal.NewFromInt(100).Equal(svc.Total(op.ID)))
}

func TestAgregarProductoArchivado(t *testing.T) {
	productos, terminales, svc, op := newCarritoFixture(t)
	abrirCajaPara(t, terminales, op)
	ahora := time.Now().UTC()
	carta := productos.seed(model.Producto{Nombre: "Eevee", PrecioVenta: decimal.NewFromInt(50), Stock: 5, ArchivedAt: &ahora})

	err := svc.Agregar(context.Background(), op.ID, carta)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "archivado")
}

func TestFijarCantidad(t *testing.T) {
	productos, terminales, svc, op := newCarritoFixture(t)
	abrirCajaPara(t, terminales, op)
	carta := productos.seed(model.Producto{Nombre: "Eevee", PrecioVenta: decimal.NewFromInt(50), Stock: 5})

	require.NoError(t, svc.Agregar(context.Background(), op.ID, carta))
	svc.FijarCantidad(op.ID, carta, 4)

	items := svc.Obtener(op.ID)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Cantidad)

	// Cantidad ≤ 0 removes the line.
	svc.FijarCantidad(op.ID, carta, 0)
	assert.Empty(t, svc.Obtener(op.ID))
}

func TestPrecioCongeladoAlAgregar(t *testing.T) {
	productos, terminales, svc, op := newCarritoFixture(t)
	abrirCajaPara(t, terminales, op)
	carta := productos.seed(model.Producto{Nombre: "Eevee", PrecioVenta: decimal.NewFromInt(50), Stock: 5})

	ctx := context.Background()
	require.NoError(t, svc.Agregar(ctx, op.ID, carta))

	// Price change after the add does not touch the cart snapshot.
	p, _ := productos.FindByID(ctx, carta)
	p.PrecioVenta = decimal.NewFromInt(999)
	require.NoError(t, productos.Update(ctx, p))

	items := svc.Obtener(op.ID)
	require.Len(t, items, 1)
	assert.True(t, decimal.NewFromInt(50).Equal(items[0].Precio))
}

func TestVaciar(t *testing.T) {
	productos, terminales, svc, op := newCarritoFixture(t)
	abrirCajaPara(t, terminales, op)
	carta := productos.seed(model.Producto{Nombre: "Eevee", PrecioVenta: decimal.NewFromInt(50), Stock: 5})

	require.NoError(t, svc.Agregar(context.Background(), op.ID, carta))
	svc.Vaciar(op.ID)
	assert.Empty(t, svc.Obtener(op.ID))
	assert.True(t, svc.Total(op.ID).IsZero())
}

func TestCarritosIndependientesPorOperador(t *testing.T) {
	productos, terminales, svc, ana := newCarritoFixture(t)
	abrirCajaPara(t, terminales, ana)
	beto := Operador{ID: uuid.New(), Nombre: "Beto"}
	abrirCajaPara(t, terminales, beto)

	carta := productos.seed(model.Producto{Nombre: "Eevee", PrecioVenta: decimal.NewFromInt(50), Stock: 5})

	ctx := context.Background()
	require.NoError(t, svc.Agregar(ctx, ana.ID, carta))
	assert.Empty(t, svc.Obtener(beto.ID))
	assert.Len(t, svc.Obtener(ana.ID), 1)
}
