package service

import (
	"context"
	"errors"
	"time"

	"github.com/razziiel/tcgnoa/internal/dto"
	"github.com/razziiel/tcgnoa/internal/model"
	"github.com/razziiel/tcgnoa/internal/notify"
	"github.com/razziiel/tcgnoa/internal/repository"

	"github.com/google/uuid"
)

// LiveService manages live-stream collections: the catalog subsets offered
// for claiming while an event is active.
type LiveService interface {
	Crear(ctx context.Context, req dto.CrearEventoLiveRequest) (*dto.EventoLiveResponse, error)
	Listar(ctx context.Context) ([]dto.EventoLiveResponse, error)
	ListarActivos(ctx context.Context) ([]dto.EventoLiveResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarEventoLiveRequest) (*dto.EventoLiveResponse, error)
	Toggle(ctx context.Context, id uuid.UUID) (*dto.EventoLiveResponse, error)
}

type liveService struct {
	repo     repository.EventoLiveRepository
	notifier notify.Notifier
}

func NewLiveService(repo repository.EventoLiveRepository, notifier notify.Notifier) LiveService {
	return &liveService{repo: repo, notifier: notifier}
}

func (s *liveService) Crear(ctx context.Context, req dto.CrearEventoLiveRequest) (*dto.EventoLiveResponse, error) {
	evento := &model.EventoLive{
		Titulo:      req.Titulo,
		Descripcion: req.Descripcion,
		Fecha:       time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, evento); err != nil {
		return nil, err
	}

	if len(req.ProductoIDs) > 0 {
		ids, err := parseUUIDs(req.ProductoIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceProductos(ctx, evento.ID, ids); err != nil {
			return nil, err
		}
	}

	s.notifier.Publicar(ctx, notify.ColEventosLive, "created", evento.ID.String())
	return s.responder(ctx, evento.ID)
}

func (s *liveService) Listar(ctx context.Context) ([]dto.EventoLiveResponse, error) {
	eventos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return eventosToResponses(eventos), nil
}

func (s *liveService) ListarActivos(ctx context.Context) ([]dto.EventoLiveResponse, error) {
	eventos, err := s.repo.ListActivos(ctx)
	if err != nil {
		return nil, err
	}
	return eventosToResponses(eventos), nil
}

func (s *liveService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarEventoLiveRequest) (*dto.EventoLiveResponse, error) {
	evento, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("evento no encontrado")
	}
	if req.Titulo != nil {
		evento.Titulo = *req.Titulo
	}
	if req.Descripcion != nil {
		evento.Descripcion = *req.Descripcion
	}
	if err := s.repo.Update(ctx, evento); err != nil {
		return nil, err
	}
	if req.ProductoIDs != nil {
		ids, err := parseUUIDs(req.ProductoIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceProductos(ctx, id, ids); err != nil {
			return nil, err
		}
	}
	s.notifier.Publicar(ctx, notify.ColEventosLive, "updated", id.String())
	return s.responder(ctx, id)
}

func (s *liveService) Toggle(ctx context.Context, id uuid.UUID) (*dto.EventoLiveResponse, error) {
	evento, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("evento no encontrado")
	}
	if err := s.repo.SetActiva(ctx, id, !evento.Activa); err != nil {
		return nil, err
	}
	s.notifier.Publicar(ctx, notify.ColEventosLive, "updated", id.String())
	return s.responder(ctx, id)
}

func (s *liveService) responder(ctx context.Context, id uuid.UUID) (*dto.EventoLiveResponse, error) {
	evento, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := eventoToResponse(evento)
	return &resp, nil
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, errors.New("producto_id inválido: " + r)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func eventosToResponses(eventos []model.EventoLive) []dto.EventoLiveResponse {
	out := make([]dto.EventoLiveResponse, 0, len(eventos))
	for i := range eventos {
		out = append(out, eventoToResponse(&eventos[i]))
	}
	return out
}

func eventoToResponse(e *model.EventoLive) dto.EventoLiveResponse {
	ids := make([]string, 0, len(e.Productos))
	for _, link := range e.Productos {
		ids = append(ids, link.ProductoID.String())
	}
	return dto.EventoLiveResponse{
		ID:          e.ID.String(),
		Titulo:      e.Titulo,
		Descripcion: e.Descripcion,
		Fecha:       e.Fecha.Format(time.RFC3339),
		Activa:      e.Activa,
		ProductoIDs: ids,
	}
}
