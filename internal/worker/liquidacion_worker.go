package worker

// liquidacion_worker.go
// Processes settlement receipt jobs from QueueLiquidacion: loads the
// liquidación, renders its PDF receipt and enqueues the email to the branch
// responsable. Runs after the settlement is marked procesada.

import (
	"context"
	"encoding/json"
	"fmt"

	"credipos/internal/infra"
	"credipos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type LiquidacionWorker struct {
	repo       repository.LiquidacionRepository
	dispatcher *Dispatcher
	pdfPath    string
}

func NewLiquidacionWorker(repo repository.LiquidacionRepository, dispatcher *Dispatcher, pdfPath string) *LiquidacionWorker {
	return &LiquidacionWorker{repo: repo, dispatcher: dispatcher, pdfPath: pdfPath}
}

// Process renders the receipt PDF and hands off delivery to the email queue.
func (w *LiquidacionWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload LiquidacionJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("liquidacion_worker: invalid payload")
		return nil // malformed payloads will never succeed, do not retry
	}

	id, err := uuid.Parse(payload.LiquidacionID)
	if err != nil {
		log.Error().Str("liquidacion_id", payload.LiquidacionID).Msg("liquidacion_worker: invalid id")
		return nil
	}

	liquidacion, err := w.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("liquidacion_worker: load %s: %w", id, err)
	}

	pdfPath, err := infra.GenerateLiquidacionPDF(liquidacion, w.pdfPath)
	if err != nil {
		return fmt.Errorf("liquidacion_worker: pdf: %w", err)
	}

	var toEmail string
	if liquidacion.Sucursal != nil && liquidacion.Sucursal.Responsable != nil &&
		liquidacion.Sucursal.Responsable.Email != nil {
		toEmail = *liquidacion.Sucursal.Responsable.Email
	}
	if toEmail == "" {
		log.Warn().Str("liquidacion_id", id.String()).
			Msg("liquidacion_worker: responsable has no email, receipt kept on disk only")
		return nil
	}

	emailJob := EmailJobPayload{
		ToEmail: toEmail,
		Subject: "Comprobante de liquidacion " + id.String(),
		Body: fmt.Sprintf(
			"Se proceso la liquidacion de la sucursal por $%s (monto liquidado $%s). Se adjunta el comprobante.",
			liquidacion.MontoDisponible.StringFixed(2), liquidacion.MontoLiquidado.StringFixed(2)),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		return fmt.Errorf("liquidacion_worker: enqueue email: %w", err)
	}

	log.Info().Str("liquidacion_id", id.String()).Str("pdf", pdfPath).
		Msg("liquidacion_worker: receipt generated")
	return nil
}
