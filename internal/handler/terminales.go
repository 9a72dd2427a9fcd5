package handler

import (
	"net/http"

	"github.com/razziiel/tcgnoa/internal/apierror"
	"github.com/razziiel/tcgnoa/internal/dto"
	"github.com/razziiel/tcgnoa/internal/service"

	"github.com/gin-gonic/gin"
)

type TerminalHandler struct{ svc service.TerminalService }

func NewTerminalHandler(svc service.TerminalService) *TerminalHandler {
	return &TerminalHandler{svc: svc}
}

func (h *TerminalHandler) Crear(c *gin.Context) {
	var req dto.CrearTerminalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TerminalHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Abrir claims the terminal for the authenticated operator.
func (h *TerminalHandler) Abrir(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	op, ok := operadorFromClaims(c)
	if !ok {
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), id, op)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cerrar settles the session: the arqueo is generated and the terminal is
// released atomically. Closing an already-closed terminal returns 204.
func (h *TerminalHandler) Cerrar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	op, ok := operadorFromClaims(c)
	if !ok {
		return
	}
	arqueo, err := h.svc.Cerrar(c.Request.Context(), id, op)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	if arqueo == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, arqueo)
}

// Abierta returns the operator's currently open terminal, 404 when none.
func (h *TerminalHandler) Abierta(c *gin.Context) {
	op, ok := operadorFromClaims(c)
	if !ok {
		return
	}
	resp, err := h.svc.AbiertaDe(c.Request.Context(), op.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	if resp == nil {
		c.JSON(http.StatusNotFound, apierror.New("Sin caja abierta"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
