package worker

// notify_worker.go
// Delivers queued notification emails (donation confirmations, expiry scan
// digests) via SMTP, guarded by a circuit breaker so a downed relay does not
// burn the retry budget of every queued job at once.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vahid343/food-save-city/internal/infra"

	"github.com/rs/zerolog/log"
)

// NotifyWorker processes jobs from QueueNotify.
type NotifyWorker struct {
	mailer  *infra.Mailer
	breaker *infra.Breaker
}

func NewNotifyWorker(mailer *infra.Mailer, breaker *infra.Breaker) *NotifyWorker {
	return &NotifyWorker{mailer: mailer, breaker: breaker}
}

// Process sends one notification email. A nil return acknowledges the job; an
// error hands it back to the pool for retry.
func (w *NotifyWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload NotifyPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		// Malformed payloads are not retryable
		log.Error().Err(err).Msg("notify_worker: invalid payload, dropping")
		return nil
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("notify_worker: empty to_email, dropping")
		return nil
	}

	err := w.breaker.Do(func() error {
		return w.mailer.SendNotification(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
	})
	if err != nil {
		if errors.Is(err, infra.ErrBreakerOpen) {
			return fmt.Errorf("smtp relay unavailable: %w", err)
		}
		return fmt.Errorf("send notification to %s: %w", payload.ToEmail, err)
	}

	log.Info().Str("to", payload.ToEmail).Str("subject", payload.Subject).Msg("notify_worker: email sent")
	return nil
}
