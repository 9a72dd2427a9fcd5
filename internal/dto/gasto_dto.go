package dto

import "github.com/shopspring/decimal"

type CrearGastoRequest struct {
	Descripcion string          `json:"descripcion" validate:"required,min=3"`
	Monto       decimal.Decimal `json:"monto"       validate:"required,gt=0"`
	Categoria   string          `json:"categoria"   validate:"required,oneof=Logística Marketing Personal Alquiler/Stand Otros"`
}

type GastoResponse struct {
	ID          string          `json:"id"`
	Descripcion string          `json:"descripcion"`
	Monto       decimal.Decimal `json:"monto"`
	Fecha       string          `json:"fecha"`
	Categoria   string          `json:"categoria"`
}

// ResumenFinancieroResponse feeds the admin dashboard.
type ResumenFinancieroResponse struct {
	VentasPOS     decimal.Decimal `json:"ventas_pos"`
	VentasClaim   decimal.Decimal `json:"ventas_claim"`
	VentasSubasta decimal.Decimal `json:"ventas_subasta"`
	TotalVentas   decimal.Decimal `json:"total_ventas"`
	TotalGastos   decimal.Decimal `json:"total_gastos"`
	Neto          decimal.Decimal `json:"neto"`
}
