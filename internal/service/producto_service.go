package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/razziiel/tcgnoa/internal/dto"
	"github.com/razziiel/tcgnoa/internal/model"
	"github.com/razziiel/tcgnoa/internal/notify"
	"github.com/razziiel/tcgnoa/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	catalogoCacheKey = "cache:catalogo_publico"
	catalogoCacheTTL = 30 * time.Second
)

// ProductoService manages the catalog: create, edit, archive/restore, auction
// toggling and manual stock adjustment. Products are never deleted.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Archivar(ctx context.Context, id uuid.UUID) error
	Restaurar(ctx context.Context, id uuid.UUID) error
	SetSubasta(ctx context.Context, id uuid.UUID, activa bool) error
	AjustarStock(ctx context.Context, id uuid.UUID, delta int) error
	// CatalogoPublico serves the live storefront: unarchived products only,
	// cached in Redis with a short TTL.
	CatalogoPublico(ctx context.Context) ([]dto.ProductoResponse, error)
}

type productoService struct {
	repo     repository.ProductoRepository
	rdb      *redis.Client
	notifier notify.Notifier
}

func NewProductoService(repo repository.ProductoRepository, rdb *redis.Client, notifier notify.Notifier) ProductoService {
	return &productoService{repo: repo, rdb: rdb, notifier: notifier}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	p := &model.Producto{
		CategoriaID:  req.CategoriaID,
		SubCategoria: req.SubCategoria,
		Nombre:       req.Nombre,
		Condicion:    req.Condicion,
		PrecioCompra: req.PrecioCompra,
		PrecioVenta:  req.PrecioVenta,
		Stock:        req.Stock,
		Detalle: model.DetalleCarta{
			SetNombre:   req.Detalle.SetNombre,
			NumeroCarta: req.Detalle.NumeroCarta,
			Rareza:      req.Detalle.Rareza,
			Acabado:     req.Detalle.Acabado,
			Anio:        req.Detalle.Anio,
		},
		ImagenURL: req.ImagenURL,
		EsDrop:    req.EsDrop,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidarCache(ctx)
	s.notifier.Publicar(ctx, notify.ColProductos, "created", p.ID.String())
	return productoToResponse(p), nil
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		items = append(items, *productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}

	if req.CategoriaID != nil {
		p.CategoriaID = *req.CategoriaID
	}
	if req.SubCategoria != nil {
		p.SubCategoria = *req.SubCategoria
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Condicion != nil {
		p.Condicion = *req.Condicion
	}
	if req.PrecioCompra != nil {
		p.PrecioCompra = *req.PrecioCompra
	}
	if req.PrecioVenta != nil {
		p.PrecioVenta = *req.PrecioVenta
	}
	if req.Detalle != nil {
		p.Detalle = model.DetalleCarta{
			SetNombre:   req.Detalle.SetNombre,
			NumeroCarta: req.Detalle.NumeroCarta,
			Rareza:      req.Detalle.Rareza,
			Acabado:     req.Detalle.Acabado,
			Anio:        req.Detalle.Anio,
		}
	}
	if req.ImagenURL != nil {
		p.ImagenURL = *req.ImagenURL
	}
	if req.EsDrop != nil {
		p.EsDrop = *req.EsDrop
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidarCache(ctx)
	s.notifier.Publicar(ctx, notify.ColProductos, "updated", id.String())
	return productoToResponse(p), nil
}

func (s *productoService) Archivar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Archivar(ctx, id, time.Now().UTC()); err != nil {
		return err
	}
	s.invalidarCache(ctx)
	s.notifier.Publicar(ctx, notify.ColProductos, "updated", id.String())
	return nil
}

func (s *productoService) Restaurar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Restaurar(ctx, id); err != nil {
		return err
	}
	s.invalidarCache(ctx)
	s.notifier.Publicar(ctx, notify.ColProductos, "updated", id.String())
	return nil
}

func (s *productoService) SetSubasta(ctx context.Context, id uuid.UUID, activa bool) error {
	if err := s.repo.SetSubasta(ctx, id, activa); err != nil {
		return err
	}
	s.invalidarCache(ctx)
	s.notifier.Publicar(ctx, notify.ColProductos, "updated", id.String())
	return nil
}

func (s *productoService) AjustarStock(ctx context.Context, id uuid.UUID, delta int) error {
	ok, err := s.repo.AjustarStock(ctx, id, delta)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("el ajuste dejaría el stock en negativo")
	}
	s.invalidarCache(ctx)
	s.notifier.Publicar(ctx, notify.ColProductos, "updated", id.String())
	return nil
}

func (s *productoService) CatalogoPublico(ctx context.Context) ([]dto.ProductoResponse, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, catalogoCacheKey).Result(); err == nil {
			var cached []dto.ProductoResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return cached, nil
			}
		}
	}

	productos, err := s.repo.ListVendibles(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		items = append(items, *productoToResponse(&productos[i]))
	}

	if s.rdb != nil {
		if data, err := json.Marshal(items); err == nil {
			if err := s.rdb.Set(ctx, catalogoCacheKey, data, catalogoCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("catalogo: cache set failed")
			}
		}
	}
	return items, nil
}

func (s *productoService) invalidarCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, catalogoCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("catalogo: cache invalidation failed")
	}
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	resp := &dto.ProductoResponse{
		ID:           p.ID.String(),
		CategoriaID:  p.CategoriaID,
		SubCategoria: p.SubCategoria,
		Nombre:       p.Nombre,
		Condicion:    p.Condicion,
		PrecioCompra: p.PrecioCompra,
		PrecioVenta:  p.PrecioVenta,
		Stock:        p.Stock,
		Detalle: dto.DetalleCartaRequest{
			SetNombre:   p.Detalle.SetNombre,
			NumeroCarta: p.Detalle.NumeroCarta,
			Rareza:      p.Detalle.Rareza,
			Acabado:     p.Detalle.Acabado,
			Anio:        p.Detalle.Anio,
		},
		ImagenURL:    p.ImagenURL,
		EsSubasta:    p.EsSubasta,
		OfertaActual: p.OfertaActual,
		EsDrop:       p.EsDrop,
	}
	if p.ArchivedAt != nil {
		f := p.ArchivedAt.Format(time.RFC3339)
		resp.ArchivedAt = &f
	}
	return resp
}
