package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearTerminalRequest struct {
	Nombre    string `json:"nombre"    validate:"required,min=2"`
	Ubicacion string `json:"ubicacion" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TerminalResponse struct {
	ID             string  `json:"id"`
	Nombre         string  `json:"nombre"`
	Ubicacion      string  `json:"ubicacion"`
	Activa         bool    `json:"activa"`
	UltimaApertura *string `json:"ultima_apertura,omitempty"`
	UserID         *string `json:"user_id,omitempty"`
	UserName       *string `json:"user_name,omitempty"`
}

type ArqueoResponse struct {
	ID             string          `json:"id"`
	TerminalID     string          `json:"terminal_id"`
	TerminalNombre string          `json:"terminal_nombre"`
	VendedorID     string          `json:"vendedor_id"`
	VendedorNombre string          `json:"vendedor_nombre"`
	FechaApertura  string          `json:"fecha_apertura"`
	FechaCierre    string          `json:"fecha_cierre"`
	TotalVentas    decimal.Decimal `json:"total_ventas"`
	CantidadVentas int             `json:"cantidad_ventas"`
}

type ArqueoListResponse struct {
	Data  []ArqueoResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
