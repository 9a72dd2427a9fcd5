package dto

import "github.com/shopspring/decimal"

// ─── Public storefront ───────────────────────────────────────────────────────

type ClaimRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
}

type OfertaRequest struct {
	ProductoID string          `json:"producto_id" validate:"required,uuid"`
	Monto      decimal.Decimal `json:"monto"       validate:"required,gt=0"`
}

// ─── Admin event management ──────────────────────────────────────────────────

type CrearEventoLiveRequest struct {
	Titulo      string   `json:"titulo"       validate:"required,min=2"`
	Descripcion string   `json:"descripcion"`
	ProductoIDs []string `json:"producto_ids" validate:"dive,uuid"`
}

type ActualizarEventoLiveRequest struct {
	Titulo      *string  `json:"titulo"       validate:"omitempty,min=2"`
	Descripcion *string  `json:"descripcion"`
	ProductoIDs []string `json:"producto_ids" validate:"omitempty,dive,uuid"`
}

type EventoLiveResponse struct {
	ID          string   `json:"id"`
	Titulo      string   `json:"titulo"`
	Descripcion string   `json:"descripcion"`
	Fecha       string   `json:"fecha"`
	Activa      bool     `json:"activa"`
	ProductoIDs []string `json:"producto_ids"`
}
