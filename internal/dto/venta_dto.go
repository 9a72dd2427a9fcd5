package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// TransaccionFilter is bound from the query string of GET /v1/ventas.
type TransaccionFilter struct {
	Estado     string `form:"estado"`      // Pendiente | Pagado | Cancelado | all
	Origen     string `form:"origen"`      // POS | CLAIM | SUBASTA
	TerminalID string `form:"terminal_id"` // optional terminal attribution filter
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CompletarVentaRequest struct {
	// Cliente defaults to "Consumidor Final" when empty.
	Cliente string `json:"cliente" validate:"omitempty,max=120"`
}

type ActualizarEstadoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=Pagado Cancelado"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemTransaccionResponse struct {
	ProductoID string          `json:"producto_id"`
	Nombre     string          `json:"nombre"`
	Cantidad   int             `json:"cantidad"`
	Precio     decimal.Decimal `json:"precio"`
}

type TransaccionResponse struct {
	ID         string                    `json:"id"`
	Fecha      string                    `json:"fecha"`
	Vendedor   string                    `json:"vendedor"`
	VendedorID string                    `json:"vendedor_id"`
	TerminalID *string                   `json:"terminal_id,omitempty"`
	Cliente    string                    `json:"cliente"`
	Total      decimal.Decimal           `json:"total"`
	Estado     string                    `json:"estado"`
	Origen     string                    `json:"origen"`
	Items      []ItemTransaccionResponse `json:"items"`
}

type TransaccionListResponse struct {
	Data  []TransaccionResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}
