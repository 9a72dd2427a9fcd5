package worker

// claim_alert_worker.go
// Processes claim notification jobs from QueueClaimAlert.
// Mails the store admin each time a viewer claims a product mid-stream so
// the seller can read it out on air.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/razziiel/tcgnoa/internal/infra"
)

// ClaimAlertPayload is the job envelope sent to QueueClaimAlert.
type ClaimAlertPayload struct {
	TransaccionID string `json:"transaccion_id"`
	Producto      string `json:"producto"`
	Precio        string `json:"precio"`
}

type ClaimAlertWorker struct {
	mailer     *infra.Mailer
	adminEmail string
}

func NewClaimAlertWorker(mailer *infra.Mailer, adminEmail string) *ClaimAlertWorker {
	return &ClaimAlertWorker{mailer: mailer, adminEmail: adminEmail}
}

func (w *ClaimAlertWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload ClaimAlertPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}
	if w.adminEmail == "" {
		// Alerts disabled — not an error, just drop the job.
		return nil
	}
	if payload.Producto == "" {
		return errors.New("claim_alert: empty producto")
	}

	subject := fmt.Sprintf("Nuevo claim: %s", payload.Producto)
	body := fmt.Sprintf(
		"Se registró un claim durante el live.\n\nProducto: %s\nPrecio: $%s\nTransacción: %s\n\nRecordá cobrarlo antes de cerrar la caja.",
		payload.Producto, payload.Precio, payload.TransaccionID,
	)
	return w.mailer.Send(w.adminEmail, subject, body, "")
}
