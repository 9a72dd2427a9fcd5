package handler

import (
	"errors"
	"net/http"

	"github.com/razziiel/tcgnoa/internal/apierror"
	"github.com/razziiel/tcgnoa/internal/dto"
	"github.com/razziiel/tcgnoa/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CarritoHandler struct{ svc service.CarritoService }

func NewCarritoHandler(svc service.CarritoService) *CarritoHandler {
	return &CarritoHandler{svc: svc}
}

func (h *CarritoHandler) Obtener(c *gin.Context) {
	op, ok := operadorFromClaims(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.Resumen(op.ID))
}

func (h *CarritoHandler) Agregar(c *gin.Context) {
	op, ok := operadorFromClaims(c)
	if !ok {
		return
	}
	var req dto.AgregarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("producto_id inválido"))
		return
	}
	if err := h.svc.Agregar(c.Request.Context(), op.ID, productoID); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrCajaCerrada) {
			status = http.StatusConflict
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, h.svc.Resumen(op.ID))
}

func (h *CarritoHandler) FijarCantidad(c *gin.Context) {
	op, ok := operadorFromClaims(c)
	if !ok {
		return
	}
	productoID, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.FijarCantidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.svc.FijarCantidad(op.ID, productoID, req.Cantidad)
	c.JSON(http.StatusOK, h.svc.Resumen(op.ID))
}

func (h *CarritoHandler) Vaciar(c *gin.Context) {
	op, ok := operadorFromClaims(c)
	if !ok {
		return
	}
	h.svc.Vaciar(op.ID)
	c.Status(http.StatusNoContent)
}
