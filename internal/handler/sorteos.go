package handler

import (
	"net/http"

	"github.com/razziiel/tcgnoa/internal/apierror"
	"github.com/razziiel/tcgnoa/internal/dto"
	"github.com/razziiel/tcgnoa/internal/service"

	"github.com/gin-gonic/gin"
)

type SorteoHandler struct{ svc service.SorteoService }

func NewSorteoHandler(svc service.SorteoService) *SorteoHandler { return &SorteoHandler{svc: svc} }

func (h *SorteoHandler) Crear(c *gin.Context) {
	var req dto.CrearSorteoRequest
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

func (h *SorteoHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// Participar is public — viewers enter from the live page by name.
func (h *SorteoHandler) Participar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ParticiparRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Participar(c.Request.Context(), id, req.Nombre); err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Realizar draws the winner. Only once per sorteo.
func (h *SorteoHandler) Realizar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Realizar(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
