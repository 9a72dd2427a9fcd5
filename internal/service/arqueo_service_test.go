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

func TestGenerarArqueoVentanaSemiAbierta(t *testing.T) {
	transacciones := newStubTransaccionRepo()
	arqueos := newStubArqueoRepo()
	svc := NewArqueoService(arqueos, transacciones)

	terminalID := uuid.New()
	userID := uuid.New()
	nombre := "Ana"
	apertura := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	cierre := apertura.Add(4 * time.Hour)

	venta := func(fecha time.Time, monto int64) {
		tid := terminalID
		_ = transacciones.CreateTx(nil, &model.Transaccion{
			Fecha:      fecha,
			TerminalID: &tid,
			Total:      decimal.NewFromInt(monto),
			Estado:     model.EstadoPagado,
			Origen:     model.OrigenPOS,
		})
	}

	venta(apertura, 100)                      // boundary: included
	venta(apertura.Add(time.Hour), 50)        // inside
	venta(cierre, 999)                        // boundary: excluded
	venta(apertura.Add(-time.Minute), 999)    // before open: excluded
	venta(cierre.Add(time.Minute), 999)       // after close: excluded

	terminal := &model.Terminal{
		ID:             terminalID,
		Nombre:         "Caja 1",
		Activa:         true,
		UserID:         &userID,
		UserName:       &nombre,
		UltimaApertura: &apertura,
	}

	arqueo, err := svc.GenerarTx(nil, terminal, cierre)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(150).Equal(arqueo.TotalVentas), "total %s", arqueo.TotalVentas)
	assert.Equal(t, 2, arqueo.CantidadVentas)
	assert.Equal(t, apertura, arqueo.FechaApertura)
	assert.Equal(t, cierre, arqueo.FechaCierre)
}

func TestGenerarArqueoSinSesion(t *testing.T) {
	svc := NewArqueoService(newStubArqueoRepo(), newStubTransaccionRepo())

	terminal := &model.Terminal{ID: uuid.New(), Nombre: "Caja 1"}
	_, err := svc.GenerarTx(nil, terminal, time.Now().UTC())
	require.Error(t, err)
}

func TestListarArqueos(t *testing.T) {
	arqueos := newStubArqueoRepo()
	svc := NewArqueoService(arqueos, newStubTransaccionRepo())

	_ = arqueos.CreateTx(nil, &model.Arqueo{
		TerminalID:     uuid.New(),
		TerminalNombre: "Caja 1",
		VendedorID:     uuid.New(),
		VendedorNombre: "Ana",
		FechaApertura:  time.Now().Add(-2 * time.Hour),
		FechaCierre:    time.Now(),
		TotalVentas:    decimal.NewFromInt(300),
		CantidadVentas: 3,
	})

	resp, err := svc.Listar(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Caja 1", resp.Data[0].TerminalNombre)
	assert.Equal(t, 3, resp.Data[0].CantidadVentas)
	assert.Equal(t, 1, resp.Page)
}
