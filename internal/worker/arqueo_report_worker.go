package worker

// arqueo_report_worker.go
// Processes arqueo PDF jobs from QueueArqueoReport: renders the session
// report to disk and, when configured, mails it to the store admin.

import (
	"context"
	"encoding/json"

	"github.com/razziiel/tcgnoa/internal/infra"
	"github.com/razziiel/tcgnoa/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ArqueoReportPayload is the job envelope sent to QueueArqueoReport.
type ArqueoReportPayload struct {
	ArqueoID string `json:"arqueo_id"`
}

type ArqueoReportWorker struct {
	arqueos     repository.ArqueoRepository
	mailer      *infra.Mailer
	adminEmail  string
	storagePath string
}

func NewArqueoReportWorker(arqueos repository.ArqueoRepository, mailer *infra.Mailer, adminEmail, storagePath string) *ArqueoReportWorker {
	return &ArqueoReportWorker{
		arqueos:     arqueos,
		mailer:      mailer,
		adminEmail:  adminEmail,
		storagePath: storagePath,
	}
}

func (w *ArqueoReportWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ArqueoReportPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}
	id, err := uuid.Parse(payload.ArqueoID)
	if err != nil {
		return err
	}

	arqueo, err := w.arqueos.FindByID(ctx, id)
	if err != nil {
		return err
	}

	path, err := infra.GenerateArqueoPDF(arqueo, w.storagePath)
	if err != nil {
		return err
	}
	log.Info().Str("arqueo_id", payload.ArqueoID).Str("path", path).Msg("arqueo_report: PDF generated")

	if w.adminEmail == "" {
		return nil
	}
	subject := "Arqueo de caja: " + arqueo.TerminalNombre
	body := "Se cerró la caja " + arqueo.TerminalNombre + " (operador: " + arqueo.VendedorNombre + ").\nSe adjunta el arqueo de la sesión."
	return w.mailer.Send(w.adminEmail, subject, body, path)
}
