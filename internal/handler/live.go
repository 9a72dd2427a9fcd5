package handler

import (
	"io"
	"net/http"

	"github.com/razziiel/tcgnoa/internal/apierror"
	"github.com/razziiel/tcgnoa/internal/dto"
	"github.com/razziiel/tcgnoa/internal/notify"
	"github.com/razziiel/tcgnoa/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// LiveHandler serves the unauthenticated storefront: the claimable catalog,
// active events, claims, auction bids, and the SSE change stream that keeps
// viewers from polling.
type LiveHandler struct {
	productos service.ProductoService
	ventas    service.VentaService
	eventos   service.LiveService
	rdb       *redis.Client
}

func NewLiveHandler(productos service.ProductoService, ventas service.VentaService, eventos service.LiveService, rdb *redis.Client) *LiveHandler {
	return &LiveHandler{productos: productos, ventas: ventas, eventos: eventos, rdb: rdb}
}

// Catalogo lists every unarchived product — Redis-cached with a short TTL
// because live traffic hammers this endpoint.
func (h *LiveHandler) Catalogo(c *gin.Context) {
	items, err := h.productos.CatalogoPublico(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *LiveHandler) EventosActivos(c *gin.Context) {
	eventos, err := h.eventos.ListarActivos(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": eventos})
}

// Claim reserves a unit for the viewer and registers the pending sale.
func (h *LiveHandler) Claim(c *gin.Context) {
	var req dto.ClaimRequest
	if !bindAndValidate(c, &req) {
		return
	}
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("producto_id inválido"))
		return
	}
	resp, err := h.ventas.RegistrarClaim(c.Request.Context(), productoID)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Oferta records an auction bid. Lower-or-equal bids lose, always.
func (h *LiveHandler) Oferta(c *gin.Context) {
	var req dto.OfertaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("producto_id inválido"))
		return
	}
	if err := h.ventas.Ofertar(c.Request.Context(), productoID, req.Monto); err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ─── Admin event management ──────────────────────────────────────────────────

func (h *LiveHandler) CrearEvento(c *gin.Context) {
	var req dto.CrearEventoLiveRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.eventos.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *LiveHandler) ListarEventos(c *gin.Context) {
	resp, err := h.eventos.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *LiveHandler) ActualizarEvento(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ActualizarEventoLiveRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.eventos.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ToggleEvento flips visibility — an active event exposes its products to
// the live storefront.
func (h *LiveHandler) ToggleEvento(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.eventos.Toggle(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Stream relays collection change events as Server-Sent Events. The client
// re-fetches the named collection on each event.
func (h *LiveHandler) Stream(c *gin.Context) {
	coleccion := c.DefaultQuery("coleccion", notify.ColProductos)
	switch coleccion {
	case notify.ColProductos, notify.ColEventosLive, notify.ColSorteos:
	default:
		c.JSON(http.StatusBadRequest, apierror.New("Colección no disponible"))
		return
	}

	eventos, err := notify.Suscribir(c.Request.Context(), h.rdb, coleccion)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Stream no disponible"))
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		ev, ok := <-eventos
		if !ok {
			return false
		}
		c.SSEvent("cambio", ev)
		return true
	})
}
