package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/razziiel/tcgnoa/internal/dto"
	"github.com/razziiel/tcgnoa/internal/model"
	"github.com/razziiel/tcgnoa/internal/notify"
	"github.com/razziiel/tcgnoa/internal/repository"

	"github.com/google/uuid"
)

// SorteoService runs live-event raffles.
type SorteoService interface {
	Crear(ctx context.Context, req dto.CrearSorteoRequest) (*dto.SorteoResponse, error)
	Listar(ctx context.Context) ([]dto.SorteoResponse, error)
	Participar(ctx context.Context, id uuid.UUID, nombre string) error
	// Realizar draws a uniform random winner and deactivates the raffle.
	// Refused when the raffle has no participants or was already drawn.
	Realizar(ctx context.Context, id uuid.UUID) (*dto.SorteoResponse, error)
}

type sorteoService struct {
	repo     repository.SorteoRepository
	notifier notify.Notifier
}

func NewSorteoService(repo repository.SorteoRepository, notifier notify.Notifier) SorteoService {
	return &sorteoService{repo: repo, notifier: notifier}
}

func (s *sorteoService) Crear(ctx context.Context, req dto.CrearSorteoRequest) (*dto.SorteoResponse, error) {
	sorteo := &model.Sorteo{Titulo: req.Titulo, Fecha: time.Now().UTC(), Activo: true}
	if err := s.repo.Create(ctx, sorteo); err != nil {
		return nil, err
	}
	s.notifier.Publicar(ctx, notify.ColSorteos, "created", sorteo.ID.String())
	resp := sorteoToResponse(sorteo)
	return &resp, nil
}

func (s *sorteoService) Listar(ctx context.Context) ([]dto.SorteoResponse, error) {
	sorteos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SorteoResponse, 0, len(sorteos))
	for i := range sorteos {
		out = append(out, sorteoToResponse(&sorteos[i]))
	}
	return out, nil
}

func (s *sorteoService) Participar(ctx context.Context, id uuid.UUID, nombre string) error {
	sorteo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("sorteo no encontrado")
	}
	if !sorteo.Activo {
		return errors.New("el sorteo ya finalizó")
	}
	p := &model.SorteoParticipante{SorteoID: id, Nombre: nombre}
	if err := s.repo.AgregarParticipante(ctx, p); err != nil {
		return err
	}
	s.notifier.Publicar(ctx, notify.ColSorteos, "updated", id.String())
	return nil
}

func (s *sorteoService) Realizar(ctx context.Context, id uuid.UUID) (*dto.SorteoResponse, error) {
	sorteo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("sorteo no encontrado")
	}
	if !sorteo.Activo {
		return nil, errors.New("el sorteo ya finalizó")
	}
	if len(sorteo.Participantes) == 0 {
		return nil, errors.New("el sorteo no tiene participantes")
	}

	ganador := sorteo.Participantes[rand.Intn(len(sorteo.Participantes))].Nombre
	ok, err := s.repo.Finalizar(ctx, id, ganador)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("el sorteo ya finalizó")
	}

	s.notifier.Publicar(ctx, notify.ColSorteos, "updated", id.String())
	sorteo, err = s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := sorteoToResponse(sorteo)
	return &resp, nil
}

func sorteoToResponse(s *model.Sorteo) dto.SorteoResponse {
	participantes := make([]string, 0, len(s.Participantes))
	for _, p := range s.Participantes {
		participantes = append(participantes, p.Nombre)
	}
	return dto.SorteoResponse{
		ID:            s.ID.String(),
		Titulo:        s.Titulo,
		Participantes: participantes,
		Ganador:       s.Ganador,
		Fecha:         s.Fecha.Format(time.RFC3339),
		Activo:        s.Activo,
	}
}
