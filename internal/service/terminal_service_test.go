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

func newTerminalFixture() (*stubTerminalRepo, *stubTransaccionRepo, *stubArqueoRepo, TerminalService) {
	terminales := newStubTerminalRepo()
	transacciones := newStubTransaccionRepo()
	arqueos := newStubArqueoRepo()
	productos := newStubProductoRepo()
	carrito := NewCarritoService(productos, terminales)
	arqueoSvc := NewArqueoService(arqueos, transacciones)
	svc := NewTerminalService(terminales, arqueoSvc, carrito, notify.NopNotifier{}, nil)
	return terminales, transacciones, arqueos, svc
}

func TestAbrirTerminal(t *testing.T) {
	terminales, _, _, svc := newTerminalFixture()
	id := terminales.seed(model.Terminal{Nombre: "Caja Mostrador"})
	op := Operador{ID: uuid.New(), Nombre: "Ana"}

	resp, err := svc.Abrir(context.Background(), id, op)
	require.NoError(t, err)
	assert.True(t, resp.Activa)
	require.NotNil(t, resp.UserName)
	assert.Equal(t, "Ana", *resp.UserName)
	assert.NotNil(t, resp.UltimaApertura)
}

func TestAbrirTerminalYaAbierta(t *testing.T) {
	terminales, _, _, svc := newTerminalFixture()
	id := terminales.seed(model.Terminal{Nombre: "Caja Mostrador"})
	ana := Operador{ID: uuid.New(), Nombre: "Ana"}
	beto := Operador{ID: uuid.New(), Nombre: "Beto"}

	_, err := svc.Abrir(context.Background(), id, ana)
	require.NoError(t, err)

	// Second operator loses; Ana keeps the terminal.
	_, err = svc.Abrir(context.Background(), id, beto)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ya está abierta")

	terminal, _ := terminales.FindByID(context.Background(), id)
	require.NotNil(t, terminal.UserID)
	assert.Equal(t, ana.ID, *terminal.UserID)
}

func TestAbrirSegundaTerminalMismoOperador(t *testing.T) {
	terminales, _, _, svc := newTerminalFixture()
	primera := terminales.seed(model.Terminal{Nombre: "Caja 1"})
	segunda := terminales.seed(model.Terminal{Nombre: "Caja 2"})
	op := Operador{ID: uuid.New(), Nombre: "Ana"}

	_, err := svc.Abrir(context.Background(), primera, op)
	require.NoError(t, err)

	_, err = svc.Abrir(context.Background(), segunda, op)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ya tenés una caja abierta")
}

func TestCerrarTerminalGeneraArqueo(t *testing.T) {
	terminales, transacciones, arqueos, svc := newTerminalFixture()
	id := terminales.seed(model.Terminal{Nombre: "Caja Evento"})
	op := Operador{ID: uuid.New(), Nombre: "Ana"}

	_, err := svc.Abrir(context.Background(), id, op)
	require.NoError(t, err)

	// Two sales inside the session window.
	for _, monto := range []int64{100, 50} {
		terminalID := id
		_ = transacciones.CreateTx(nil, &model.Transaccion{
			Fecha:      time.Now().UTC(),
			Vendedor:   op.Nombre,
			VendedorID: op.ID.String(),
			TerminalID: &terminalID,
			Cliente:    "Consumidor Final",
			Total:      decimal.NewFromInt(monto),
			Estado:     model.EstadoPagado,
			Origen:     model.OrigenPOS,
		})
	}

	arqueo, err := svc.Cerrar(context.Background(), id, op)
	require.NoError(t, err)
	require.NotNil(t, arqueo)
	assert.True(t, decimal.NewFromInt(150).Equal(arqueo.TotalVentas))
	assert.Equal(t, 2, arqueo.CantidadVentas)
	assert.Equal(t, "Caja Evento", arqueo.TerminalNombre)
	assert.Equal(t, "Ana", arqueo.VendedorNombre)
	assert.Len(t, arqueos.arqueos, 1)

	// Terminal released; owner cleared, UltimaApertura retained.
	terminal, _ := terminales.FindByID(context.Background(), id)
	assert.False(t, terminal.Activa)
	assert.Nil(t, terminal.UserID)
	assert.NotNil(t, terminal.UltimaApertura)
}

func TestCerrarExcluyeOtrasTerminales(t *testing.T) {
	terminales, transacciones, _, svc := newTerminalFixture()
	mia := terminales.seed(model.Terminal{Nombre: "Caja 1"})
	otra := terminales.seed(model.Terminal{Nombre: "Caja 2"})
	op := Operador{ID: uuid.New(), Nombre: "Ana"}

	_, err := svc.Abrir(context.Background(), mia, op)
	require.NoError(t, err)

	otraID := otra
	_ = transacciones.CreateTx(nil, &model.Transaccion{
		Fecha:      time.Now().UTC(),
		TerminalID: &otraID,
		Total:      decimal.NewFromInt(999),
		Estado:     model.EstadoPagado,
		Origen:     model.OrigenPOS,
	})

	arqueo, err := svc.Cerrar(context.Background(), mia, op)
	require.NoError(t, err)
	require.NotNil(t, arqueo)
	assert.True(t, arqueo.TotalVentas.IsZero())
	assert.Equal(t, 0, arqueo.CantidadVentas)
}

func TestCerrarTerminalAjena(t *testing.T) {
	terminales, _, _, svc := newTerminalFixture()
	id := terminales.seed(model.Terminal{Nombre: "Caja 1"})
	ana := Operador{ID: uuid.New(), Nombre: "Ana"}
	beto := Operador{ID: uuid.New(), Nombre: "Beto"}

	_, err := svc.Abrir(context.Background(), id, ana)
	require.NoError(t, err)

	_, err = svc.Cerrar(context.Background(), id, beto)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "solo el operador que abrió la caja")
}

func TestCerrarTerminalCerradaEsNoOp(t *testing.T) {
	terminales, _, arqueos, svc := newTerminalFixture()
	id := terminales.seed(model.Terminal{Nombre: "Caja 1"})
	op := Operador{ID: uuid.New(), Nombre: "Ana"}

	_, err := svc.Abrir(context.Background(), id, op)
	require.NoError(t, err)
	_, err = svc.Cerrar(context.Background(), id, op)
	require.NoError(t, err)

	// Second close: no error, no arqueo, no duplicate.
	arqueo, err := svc.Cerrar(context.Background(), id, op)
	require.NoError(t, err)
	assert.Nil(t, arqueo)
	assert.Len(t, arqueos.arqueos, 1)
}

func TestReabrirDespuesDeCerrar(t *testing.T) {
	terminales, _, _, svc := newTerminalFixture()
	id := terminales.seed(model.Terminal{Nombre: "Caja 1"})
	ana := Operador{ID: uuid.New(), Nombre: "Ana"}
	beto := Operador{ID: uuid.New(), Nombre: "Beto"}

	_, err := svc.Abrir(context.Background(), id, ana)
	require.NoError(t, err)
	_, err = svc.Cerrar(context.Background(), id, ana)
	require.NoError(t, err)

	resp, err := svc.Abrir(context.Background(), id, beto)
	require.NoError(t, err)
	require.NotNil(t, resp.UserName)
	assert.Equal(t, "Beto", *resp.UserName)
}

func TestAbiertaDe(t *testing.T) {
	terminales, _, _, svc := newTerminalFixture()
	id := terminales.seed(model.Terminal{Nombre: "Caja 1"})
	op := Operador{ID: uuid.New(), Nombre: "Ana"}

	resp, err := svc.AbiertaDe(context.Background(), op.ID)
	require.NoError(t, err)
	assert.Nil(t, resp)

	_, err = svc.Abrir(context.Background(), id, op)
	require.NoError(t, err)

	resp, err = svc.AbiertaDe(context.Background(), op.ID)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "Caja 1", resp.Nombre)
}

func TestCrearTerminal(t *testing.T) {
	_, _, _, svc := newTerminalFixture()
	resp, err := svc.Crear(context.Background(), dto.CrearTerminalRequest{Nombre: "Caja Stand", Ubicacion: "Feria"})
	require.NoError(t, err)
	assert.Equal(t, "Caja Stand", resp.Nombre)
	assert.False(t, resp.Activa)
}
