package service

import (
	"context"
	"testing"
	"time"

	"github.com/razziiel/tcgnoa/internal/dto"
	"github.com/razziiel/tcgnoa/internal/model"
	"github.com/razziiel/tcgnoa/internal/notify"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ventaFixture struct {
	productos     *stubProductoRepo
	terminales    *stubTerminalRepo
	transacciones *stubTransaccionRepo
	carrito       CarritoService
	svc           VentaService
}

func newVentaFixture() *ventaFixture {
	productos := newStubProductoRepo()
	terminales := newStubTerminalRepo()
	transacciones := newStubTransaccionRepo()
	carrito := NewCarritoService(productos, terminales)
	svc := NewVentaService(transacciones, productos, terminales, carrito, notify.NopNotifier{}, nil)
	return &ventaFixture{
		productos:     productos,
		terminales:    terminales,
		transacciones: transacciones,
		carrito:       carrito,
		svc:           svc,
	}
}

func (f *ventaFixture) abrirCaja(t *testing.T, op Operador) uuid.UUID {
	t.Helper()
	id := f.terminales.seed(model.Terminal{Nombre: "Caja Test"})
	ok, err := f.terminales.Abrir(context.Background(), id, op.ID, op.Nombre, time.Now().UTC())
	require.NoError(t, err)
	require.True(t, ok)
	return id
}

func TestCompletarVenta(t *testing.T) {
	f := newVentaFixture()
	op := Operador{ID: uuid.New(), Nombre: "Ana"}
	terminalID := f.abrirCaja(t, op)

	carta := f.productos.seed(model.Producto{
		Nombre: "Charizard EX", PrecioVenta: decimal.NewFromInt(845), Stock: 3,
	})

	ctx := context.Background()
	require.NoError(t, f.carrito.Agregar(ctx, op.ID, carta))
	f.carrito.FijarCantidad(op.ID, carta, 2)

	resp, err := f.svc.CompletarVenta(ctx, op, dto.CompletarVentaRequest{})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(1690).Equal(resp.Total), "total %s", resp.Total)
	assert.Equal(t, string(model.EstadoPagado), resp.Estado)
	assert.Equal(t, string(model.OrigenPOS), resp.Origen)
	assert.Equal(t, "Consumidor Final", resp.Cliente)
	assert.Equal(t, "Ana", resp.Vendedor)
	require.NotNil(t, resp.TerminalID)
	assert.Equal(t, terminalID.String(), *resp.TerminalID)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Cantidad)

	// Stock decremented, cart emptied.
	p, _ := f.productos.FindByID(ctx, carta)
	assert.Equal(t, 1, p.Stock)
	assert.Empty(t, f.carrito.Obtener(op.ID))
}

func TestCompletarVentaCajaCerrada(t *testing.T) {
	f := newVentaFixture()
	op := Operador{ID: uuid.New(), Nombre: "Ana"}

	_, err := f.svc.CompletarVenta(context.Background(), op, dto.CompletarVentaRequest{})
	require.ErrorIs(t, err, ErrCajaCerrada)
}

func TestCompletarVentaCarritoVacio(t *testing.T) {
	f := newVentaFixture()
	op := Operador{ID: uuid.New(), Nombre: "Ana"}
	f.abrirCaja(t, op)

	_, err := f.svc.CompletarVenta(context.Background(), op, dto.CompletarVentaRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrito está vacío")
}

func TestCompletarVentaStockInsuficiente(t *testing.T) {
	f := newVentaFixture()
	op := Operador{ID: uuid.New(), Nombre: "Ana"}
	f.abrirCaja(t, op)

	carta := f.productos.seed(model.Producto{
		Nombre: "Pikachu Promo", PrecioVenta: decimal.NewFromInt(200), Stock: 1,
	})

	ctx := context.Background()
	require.NoError(t, f.carrito.Agregar(ctx, op.ID, carta))
	f.carrito.FijarCantidad(op.ID, carta, 5)

	_, err := f.svc.CompletarVenta(ctx, op, dto.CompletarVentaRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stock insuficiente")
	// Cart survives a failed settlement so the operator can correct it.
	assert.NotEmpty(t, f.carrito.Obtener(op.ID))
}

func TestRegistrarClaim(t *testing.T) {
	f := newVentaFixture()
	carta := f.productos.seed(model.Producto{
		Nombre: "Umbreon VMAX", PrecioVenta: decimal.NewFromInt(1200), Stock: 1,
	})

	resp, err := f.svc.RegistrarClaim(context.Background(), carta)
	require.NoError(t, err)

	assert.Equal(t, string(model.EstadoPendiente), resp.Estado)
	assert.Equal(t, string(model.OrigenClaim), resp.Origen)
	assert.Equal(t, VendedorLive, resp.Vendedor)
	assert.Equal(t, ClienteLive, resp.Cliente)
	assert.Nil(t, resp.TerminalID)
	assert.True(t, decimal.NewFromInt(1200).Equal(resp.Total))

	p, _ := f.productos.FindByID(context.Background(), carta)
	assert.Equal(t, 0, p.Stock)

	// Last unit gone — a second claim must fail.
	_, err = f.svc.RegistrarClaim(context.Background(), carta)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sin stock")
}

func TestRegistrarClaimArchivado(t *testing.T) {
	f := newVentaFixture()
	ahora := time.Now().UTC()
	carta := f.productos.seed(model.Producto{
		Nombre: "Lugia Neo", PrecioVenta: decimal.NewFromInt(500), Stock: 2, ArchivedAt: &ahora,
	})

	_, err := f.svc.RegistrarClaim(context.Background(), carta)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no está disponible")
}

func TestOfertarMonotonia(t *testing.T) {
	f := newVentaFixture()
	carta := f.productos.seed(model.Producto{
		Nombre:      "Mewtwo Base Set",
		PrecioVenta: decimal.NewFromInt(800),
		Stock:       1,
		EsSubasta:   true,
	})
	ctx := context.Background()

	// First bid must beat the sale price.
	require.NoError(t, f.svc.Ofertar(ctx, carta, decimal.NewFromInt(850)))
	require.Error(t, f.svc.Ofertar(ctx, carta, decimal.NewFromInt(800)))
	require.NoError(t, f.svc.Ofertar(ctx, carta, decimal.NewFromInt(900)))
	require.Error(t, f.svc.Ofertar(ctx, carta, decimal.NewFromInt(850)))
	require.Error(t, f.svc.Ofertar(ctx, carta, decimal.NewFromInt(900))) // equal loses

	p, _ := f.productos.FindByID(ctx, carta)
	require.NotNil(t, p.OfertaActual)
	assert.True(t, decimal.NewFromInt(900).Equal(*p.OfertaActual))
}

func TestOfertarSinSubasta(t *testing.T) {
	f := newVentaFixture()
	carta := f.productos.seed(model.Producto{
		Nombre: "Snorlax", PrecioVenta: decimal.NewFromInt(100), Stock: 1,
	})

	err := f.svc.Ofertar(context.Background(), carta, decimal.NewFromInt(500))
	require.Error(t, err)
}

func TestActualizarEstado(t *testing.T) {
	f := newVentaFixture()
	tr := &model.Transaccion{
		Fecha:  time.Now().UTC(),
		Total:  decimal.NewFromInt(100),
		Estado: model.EstadoPendiente,
		Origen: model.OrigenClaim,
	}
	require.NoError(t, f.transacciones.CreateTx(nil, tr))

	ctx := context.Background()
	require.NoError(t, f.svc.ActualizarEstado(ctx, tr.ID, model.EstadoPagado))

	// Pagado is terminal.
	err := f.svc.ActualizarEstado(ctx, tr.ID, model.EstadoCancelado)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transición no permitida")
}

func TestActualizarEstadoCancelacionNoRestauraStock(t *testing.T) {
	f := newVentaFixture()
	carta := f.productos.seed(model.Producto{
		Nombre: "Rayquaza", PrecioVenta: decimal.NewFromInt(300), Stock: 1,
	})
	ctx := context.Background()

	resp, err := f.svc.RegistrarClaim(ctx, carta)
	require.NoError(t, err)

	id, _ := uuid.Parse(resp.ID)
	require.NoError(t, f.svc.ActualizarEstado(ctx, id, model.EstadoCancelado))

	// The unit stays reserved — restocking is an explicit admin adjustment.
	p, _ := f.productos.FindByID(ctx, carta)
	assert.Equal(t, 0, p.Stock)
}

func TestListarFiltraPorEstado(t *testing.T) {
	f := newVentaFixture()
	for _, estado := range []model.EstadoTransaccion{model.EstadoPagado, model.EstadoPendiente, model.EstadoPendiente} {
		require.NoError(t, f.transacciones.CreateTx(nil, &model.Transaccion{
			Fecha:  time.Now().UTC(),
			Total:  decimal.NewFromInt(10),
			Estado: estado,
			Origen: model.OrigenPOS,
		}))
	}

	resp, err := f.svc.Listar(context.Background(), dto.TransaccionFilter{Estado: "Pendiente"})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
}
