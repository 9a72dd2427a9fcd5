package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// ProductoFilter is bound from the query string of GET /v1/productos.
type ProductoFilter struct {
	Nombre       string `form:"nombre"`
	Categoria    string `form:"categoria"`
	SubCategoria string `form:"sub_categoria"`
	Archivado    string `form:"archivado"` // "" = activos, "true" = archivados, "all" = todos
	Page         int    `form:"page,default=1"   validate:"min=1"`
	Limit        int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type DetalleCartaRequest struct {
	SetNombre   string `json:"set_nombre"`
	NumeroCarta string `json:"numero_carta"`
	Rareza      string `json:"rareza"`
	Acabado     string `json:"acabado" validate:"omitempty,oneof=Foil No-Foil 'Reverse Holo' Texturizada"`
	Anio        int    `json:"anio"    validate:"omitempty,min=1993"`
}

type CrearProductoRequest struct {
	CategoriaID  string              `json:"categoria_id"  validate:"required"`
	SubCategoria string              `json:"sub_categoria" validate:"required"`
	Nombre       string              `json:"nombre"        validate:"required,min=2"`
	Condicion    string              `json:"condicion"     validate:"required"`
	PrecioCompra decimal.Decimal     `json:"precio_compra" validate:"min=0"`
	PrecioVenta  decimal.Decimal     `json:"precio_venta"  validate:"required,gt=0"`
	Stock        int                 `json:"stock"         validate:"min=0"`
	Detalle      DetalleCartaRequest `json:"detalle"`
	ImagenURL    string              `json:"imagen_url"    validate:"omitempty,url"`
	EsDrop       bool                `json:"es_drop"`
}

type ActualizarProductoRequest struct {
	CategoriaID  *string              `json:"categoria_id"`
	SubCategoria *string              `json:"sub_categoria"`
	Nombre       *string              `json:"nombre"        validate:"omitempty,min=2"`
	Condicion    *string              `json:"condicion"`
	PrecioCompra *decimal.Decimal     `json:"precio_compra"`
	PrecioVenta  *decimal.Decimal     `json:"precio_venta"`
	Detalle      *DetalleCartaRequest `json:"detalle"`
	ImagenURL    *string              `json:"imagen_url"    validate:"omitempty,url"`
	EsDrop       *bool                `json:"es_drop"`
}

type AjustarStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type SubastaRequest struct {
	Activa bool `json:"activa"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID           string           `json:"id"`
	CategoriaID  string           `json:"categoria_id"`
	SubCategoria string           `json:"sub_categoria"`
	Nombre       string           `json:"nombre"`
	Condicion    string           `json:"condicion"`
	PrecioCompra decimal.Decimal  `json:"precio_compra"`
	PrecioVenta  decimal.Decimal  `json:"precio_venta"`
	Stock        int              `json:"stock"`
	Detalle      DetalleCartaRequest `json:"detalle"`
	ImagenURL    string           `json:"imagen_url"`
	EsSubasta    bool             `json:"es_subasta"`
	OfertaActual *decimal.Decimal `json:"oferta_actual,omitempty"`
	EsDrop       bool             `json:"es_drop"`
	ArchivedAt   *string          `json:"archived_at,omitempty"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
