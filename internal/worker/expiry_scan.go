package worker

// expiry_scan.go
// Background goroutine that periodically sweeps the catalog for products
// close to expiry and emails a digest to the store's notification address.
// The sweep reuses the same classification rules as the dashboard so the
// email never disagrees with what the screen shows.

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vahid343/food-save-city/internal/model"
	"github.com/vahid343/food-save-city/internal/repository"
	"github.com/vahid343/food-save-city/internal/risk"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Notifier is the enqueue side of the notification queue.
type Notifier interface {
	EnqueueNotify(ctx context.Context, to, subject, body string) error
}

// ExpiryScanConfig holds all dependencies for the scan goroutine.
type ExpiryScanConfig struct {
	Products    repository.ProductRepository
	History     repository.HistoryRepository
	Notifier    Notifier
	NotifyEmail string
	Interval    time.Duration
}

// StartExpiryScan launches a goroutine that runs one sweep immediately and
// then ticks every cfg.Interval. It respects the context for graceful
// shutdown. A missing notification address disables the scan.
func StartExpiryScan(ctx context.Context, cfg ExpiryScanConfig) {
	if cfg.NotifyEmail == "" {
		log.Info().Msg("expiry_scan: no notification email configured, scan disabled")
		return
	}

	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("expiry_scan: started")
		runScan(ctx, cfg)

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("expiry_scan: shutting down")
				return
			case <-ticker.C:
				runScan(ctx, cfg)
			}
		}
	}()
}

func runScan(ctx context.Context, cfg ExpiryScanConfig) {
	now := time.Now()

	candidates, err := cfg.Products.ListCandidates(ctx, now, risk.DashboardHorizonDays)
	if err != nil {
		log.Error().Err(err).Msg("expiry_scan: failed to list candidates")
		return
	}
	if len(candidates) == 0 {
		log.Debug().Msg("expiry_scan: nothing close to expiry")
		return
	}

	donated, err := cfg.History.ProductIDsByAction(ctx, model.ActionDonation)
	if err != nil {
		log.Error().Err(err).Msg("expiry_scan: failed to load donation set")
		return
	}

	subject := fmt.Sprintf("Expiry alert: %d product(s) need a decision", len(candidates))
	body := buildDigest(candidates, donated, now)

	if err := cfg.Notifier.EnqueueNotify(ctx, cfg.NotifyEmail, subject, body); err != nil {
		log.Error().Err(err).Msg("expiry_scan: failed to enqueue digest")
		return
	}
	log.Info().Int("count", len(candidates)).Msg("expiry_scan: digest enqueued")
}

func buildDigest(candidates []model.Product, donated map[uuid.UUID]bool, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The following products expire within %d days:\n\n", risk.DashboardHorizonDays)

	for _, p := range candidates {
		daysLeft := risk.DaysUntil(p.ExpiryDate, now)
		s := risk.Classify(risk.Snapshot{
			Quantity:      p.Quantity,
			AvgDailySales: p.AvgDailySales,
		}, daysLeft, donated[p.ID])

		fmt.Fprintf(&b, "- %s (%s): %d on hand, expires %s — suggested: %s\n",
			p.Name, p.Category, p.Quantity, p.ExpiryDate.Format("2006-01-02"), s.Action)
	}

	b.WriteString("\nOpen the risk zone to confirm discounts or donations.\n")
	return b.String()
}
