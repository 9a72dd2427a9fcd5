package service

import (
	"context"
	"time"

	"github.com/razziiel/tcgnoa/internal/dto"
	"github.com/razziiel/tcgnoa/internal/model"
	"github.com/razziiel/tcgnoa/internal/repository"

	"github.com/google/uuid"
)

// GastoService manages operating expenses and the financial summary.
// The whole surface is Administrador-only (enforced at the router).
type GastoService interface {
	Crear(ctx context.Context, req dto.CrearGastoRequest) (*dto.GastoResponse, error)
	Listar(ctx context.Context) ([]dto.GastoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Resumen(ctx context.Context) (*dto.ResumenFinancieroResponse, error)
}

type gastoService struct {
	repo          repository.GastoRepository
	transacciones repository.TransaccionRepository
}

func NewGastoService(repo repository.GastoRepository, transacciones repository.TransaccionRepository) GastoService {
	return &gastoService{repo: repo, transacciones: transacciones}
}

func (s *gastoService) Crear(ctx context.Context, req dto.CrearGastoRequest) (*dto.GastoResponse, error) {
	g := &model.Gasto{
		Descripcion: req.Descripcion,
		Monto:       req.Monto,
		Fecha:       time.Now().UTC(),
		Categoria:   req.Categoria,
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	resp := gastoToResponse(g)
	return &resp, nil
}

func (s *gastoService) Listar(ctx context.Context) ([]dto.GastoResponse, error) {
	gastos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GastoResponse, 0, len(gastos))
	for i := range gastos {
		out = append(out, gastoToResponse(&gastos[i]))
	}
	return out, nil
}

func (s *gastoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *gastoService) Resumen(ctx context.Context) (*dto.ResumenFinancieroResponse, error) {
	ventas, err := s.transacciones.TotalPorOrigen(ctx)
	if err != nil {
		return nil, err
	}
	gastos, err := s.repo.Total(ctx)
	if err != nil {
		return nil, err
	}

	pos := ventas[model.OrigenPOS]
	claim := ventas[model.OrigenClaim]
	subasta := ventas[model.OrigenSubasta]
	total := pos.Add(claim).Add(subasta)

	return &dto.ResumenFinancieroResponse{
		VentasPOS:     pos,
		VentasClaim:   claim,
		VentasSubasta: subasta,
		TotalVentas:   total,
		TotalGastos:   gastos,
		Neto:          total.Sub(gastos),
	}, nil
}

func gastoToResponse(g *model.Gasto) dto.GastoResponse {
	return dto.GastoResponse{
		ID:          g.ID.String(),
		Descripcion: g.Descripcion,
		Monto:       g.Monto,
		Fecha:       g.Fecha.Format(time.RFC3339),
		Categoria:   g.Categoria,
	}
}
