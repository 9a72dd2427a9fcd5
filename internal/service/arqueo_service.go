package service

import (
	"context"
	"errors"
	"time"

	"github.com/razziiel/tcgnoa/internal/dto"
	"github.com/razziiel/tcgnoa/internal/model"
	"github.com/razziiel/tcgnoa/internal/repository"

	"gorm.io/gorm"
)

// ArqueoService produces the immutable closing report of a terminal session.
type ArqueoService interface {
	// GenerarTx aggregates the session window [UltimaApertura, cierre) and
	// persists the arqueo inside the terminal-close transaction. The recorded
	// total is always the computed session sum.
	GenerarTx(tx *gorm.DB, terminal *model.Terminal, cierre time.Time) (*model.Arqueo, error)
	Listar(ctx context.Context, page, limit int) (*dto.ArqueoListResponse, error)
}

type arqueoService struct {
	repo          repository.ArqueoRepository
	transacciones repository.TransaccionRepository
}

func NewArqueoService(repo repository.ArqueoRepository, transacciones repository.TransaccionRepository) ArqueoService {
	return &arqueoService{repo: repo, transacciones: transacciones}
}

func (s *arqueoService) GenerarTx(tx *gorm.DB, terminal *model.Terminal, cierre time.Time) (*model.Arqueo, error) {
	if terminal.UltimaApertura == nil || terminal.UserID == nil {
		return nil, errors.New("la terminal no tiene una sesión abierta registrada")
	}

	resumen, err := s.transacciones.ResumenSesionTx(tx, terminal.ID, *terminal.UltimaApertura, cierre)
	if err != nil {
		return nil, err
	}

	vendedorNombre := ""
	if terminal.UserName != nil {
		vendedorNombre = *terminal.UserName
	}

	arqueo := &model.Arqueo{
		TerminalID:     terminal.ID,
		TerminalNombre: terminal.Nombre,
		VendedorID:     *terminal.UserID,
		VendedorNombre: vendedorNombre,
		FechaApertura:  *terminal.UltimaApertura,
		FechaCierre:    cierre,
		TotalVentas:    resumen.Total,
		CantidadVentas: resumen.Cantidad,
	}
	if err := s.repo.CreateTx(tx, arqueo); err != nil {
		return nil, err
	}
	return arqueo, nil
}

func (s *arqueoService) Listar(ctx context.Context, page, limit int) (*dto.ArqueoListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	arqueos, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ArqueoResponse, 0, len(arqueos))
	for i := range arqueos {
		items = append(items, *arqueoToResponse(&arqueos[i]))
	}
	return &dto.ArqueoListResponse{Data: items, Total: total, Page: page, Limit: limit}, nil
}

func arqueoToResponse(a *model.Arqueo) *dto.ArqueoResponse {
	return &dto.ArqueoResponse{
		ID:             a.ID.String(),
		TerminalID:     a.TerminalID.String(),
		TerminalNombre: a.TerminalNombre,
		VendedorID:     a.VendedorID.String(),
		VendedorNombre: a.VendedorNombre,
		FechaApertura:  a.FechaApertura.Format(time.RFC3339),
		FechaCierre:    a.FechaCierre.Format(time.RFC3339),
		TotalVentas:    a.TotalVentas,
		CantidadVentas: a.CantidadVentas,
	}
}
