package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/razziiel/tcgnoa/internal/dto"
	"github.com/razziiel/tcgnoa/internal/model"
	"github.com/razziiel/tcgnoa/internal/notify"
	"github.com/razziiel/tcgnoa/internal/repository"
	"github.com/razziiel/tcgnoa/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TerminalService owns the terminal session lifecycle. A terminal moves
// CERRADA → ABIERTA(operador) → CERRADA; both transitions are conditional
// UPDATEs, so concurrent opens cannot double-assign an owner and concurrent
// closes cannot duplicate an arqueo.
type TerminalService interface {
	Crear(ctx context.Context, req dto.CrearTerminalRequest) (*dto.TerminalResponse, error)
	Listar(ctx context.Context) ([]dto.TerminalResponse, error)
	// Abrir binds the terminal to the operator. Refused when the operator
	// already owns an open terminal or when the target is open under anyone.
	Abrir(ctx context.Context, terminalID uuid.UUID, op Operador) (*dto.TerminalResponse, error)
	// Cerrar generates the arqueo and releases the terminal in one DB
	// transaction. Closing an already-closed terminal is a no-op that returns
	// (nil, nil) — no duplicate arqueo.
	Cerrar(ctx context.Context, terminalID uuid.UUID, op Operador) (*dto.ArqueoResponse, error)
	// AbiertaDe returns the operator's currently open terminal, nil when none.
	AbiertaDe(ctx context.Context, operadorID uuid.UUID) (*dto.TerminalResponse, error)
}

type terminalService struct {
	repo       repository.TerminalRepository
	arqueos    ArqueoService
	carrito    CarritoService
	notifier   notify.Notifier
	dispatcher *worker.Dispatcher
}

func NewTerminalService(
	repo repository.TerminalRepository,
	arqueos ArqueoService,
	carrito CarritoService,
	notifier notify.Notifier,
	dispatcher *worker.Dispatcher,
) TerminalService {
	return &terminalService{
		repo:       repo,
		arqueos:    arqueos,
		carrito:    carrito,
		notifier:   notifier,
		dispatcher: dispatcher,
	}
}

func (s *terminalService) Crear(ctx context.Context, req dto.CrearTerminalRequest) (*dto.TerminalResponse, error) {
	terminal := &model.Terminal{Nombre: req.Nombre, Ubicacion: req.Ubicacion}
	if err := s.repo.Create(ctx, terminal); err != nil {
		return nil, err
	}
	s.notifier.Publicar(ctx, notify.ColTerminales, "created", terminal.ID.String())
	return terminalToResponse(terminal), nil
}

func (s *terminalService) Listar(ctx context.Context) ([]dto.TerminalResponse, error) {
	terminales, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TerminalResponse, 0, len(terminales))
	for i := range terminales {
		out = append(out, *terminalToResponse(&terminales[i]))
	}
	return out, nil
}

func (s *terminalService) Abrir(ctx context.Context, terminalID uuid.UUID, op Operador) (*dto.TerminalResponse, error) {
	// One open terminal per operator.
	if abierta, err := s.repo.FindAbiertaPorUsuario(ctx, op.ID); err != nil {
		return nil, err
	} else if abierta != nil {
		return nil, fmt.Errorf("ya tenés una caja abierta en %s", abierta.Nombre)
	}

	ok, err := s.repo.Abrir(ctx, terminalID, op.ID, op.Nombre, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !ok {
		// CAS on activa=false lost: either the id is unknown or another
		// operator holds the terminal. The existing owner is untouched.
		if _, ferr := s.repo.FindByID(ctx, terminalID); ferr != nil {
			return nil, errors.New("terminal no encontrada")
		}
		return nil, errors.New("la terminal ya está abierta por otro operador")
	}

	terminal, err := s.repo.FindByID(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	s.notifier.Publicar(ctx, notify.ColTerminales, "updated", terminalID.String())
	return terminalToResponse(terminal), nil
}

func (s *terminalService) Cerrar(ctx context.Context, terminalID uuid.UUID, op Operador) (*dto.ArqueoResponse, error) {
	var arqueo *model.Arqueo

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		terminal, err := findTerminalTx(s.repo, ctx, tx, terminalID)
		if err != nil {
			return errors.New("terminal no encontrada")
		}
		if !terminal.Activa {
			// Idempotent: already closed, nothing to reconcile.
			return nil
		}
		if terminal.UserID == nil || *terminal.UserID != op.ID {
			return errors.New("solo el operador que abrió la caja puede cerrarla")
		}

		cierre := time.Now().UTC()
		arqueo, err = s.arqueos.GenerarTx(tx, terminal, cierre)
		if err != nil {
			return err
		}

		ok, err := s.repo.CerrarTx(tx, terminalID, op.ID)
		if err != nil {
			return err
		}
		if !ok {
			// Someone closed it between our read and the CAS; rolling back
			// discards the arqueo we just staged.
			arqueo = nil
			return errors.New("la terminal ya fue cerrada")
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	if arqueo == nil {
		return nil, nil
	}

	// The session is over — whatever was staged in the cart dies with it.
	s.carrito.Vaciar(op.ID)
	s.notifier.Publicar(ctx, notify.ColTerminales, "updated", terminalID.String())
	s.notifier.Publicar(ctx, notify.ColArqueos, "created", arqueo.ID.String())

	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueArqueoReport(ctx, map[string]interface{}{
			"arqueo_id": arqueo.ID.String(),
		})
	}

	return arqueoToResponse(arqueo), nil
}

func (s *terminalService) AbiertaDe(ctx context.Context, operadorID uuid.UUID) (*dto.TerminalResponse, error) {
	terminal, err := s.repo.FindAbiertaPorUsuario(ctx, operadorID)
	if err != nil || terminal == nil {
		return nil, err
	}
	return terminalToResponse(terminal), nil
}

// findTerminalTx reads the terminal inside the close transaction when one is
// open, falling back to the plain context read in unit-test mode (tx == nil).
func findTerminalTx(repo repository.TerminalRepository, ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Terminal, error) {
	if tx == nil {
		return repo.FindByID(ctx, id)
	}
	return repo.FindByIDTx(tx, id)
}

func terminalToResponse(t *model.Terminal) *dto.TerminalResponse {
	resp := &dto.TerminalResponse{
		ID:        t.ID.String(),
		Nombre:    t.Nombre,
		Ubicacion: t.Ubicacion,
		Activa:    t.Activa,
	}
	if t.UltimaApertura != nil {
		f := t.UltimaApertura.Format(time.RFC3339)
		resp.UltimaApertura = &f
	}
	if t.UserID != nil {
		id := t.UserID.String()
		resp.UserID = &id
	}
	resp.UserName = t.UserName
	return resp
}
