package handler

import (
	"net/http"

	"github.com/razziiel/tcgnoa/internal/apierror"
	"github.com/razziiel/tcgnoa/internal/dto"
	"github.com/razziiel/tcgnoa/internal/middleware"
	"github.com/razziiel/tcgnoa/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Perfil echoes the identity baked into the JWT — the frontend uses it to
// rehydrate the session after a reload.
func (h *AuthHandler) Perfil(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":     claims.UserID,
		"nombre": claims.Nombre,
		"rol":    claims.Rol,
	})
}
