package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vahid343/food-save-city/internal/dto"
	"github.com/vahid343/food-save-city/internal/model"
	"github.com/vahid343/food-save-city/internal/repository"
	"github.com/vahid343/food-save-city/internal/risk"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const defaultDiscountPercent = 30

// Notifier enqueues an async notification; satisfied by worker.Dispatcher.
// Sends are best-effort — a queue failure never fails a confirmation.
type Notifier interface {
	EnqueueNotify(ctx context.Context, to, subject, body string) error
}

// RiskService runs the risk-zone pass and records confirmed decisions.
type RiskService interface {
	// Analyze classifies every candidate product and returns suggestions in
	// store order (ascending expiry). Recomputed fresh on every call.
	Analyze(ctx context.Context) ([]dto.SuggestionResponse, error)
	// Confirm appends a ledger entry for the chosen action and, for
	// donations, zeroes the product quantity afterwards.
	Confirm(ctx context.Context, actorID uuid.UUID, req dto.ConfirmRequest) (*dto.ConfirmResponse, error)
}

type riskService struct {
	products    repository.ProductRepository
	history     repository.HistoryRepository
	notifier    Notifier
	notifyEmail string
	now         func() time.Time
}

func NewRiskService(products repository.ProductRepository, history repository.HistoryRepository, notifier Notifier, notifyEmail string) RiskService {
	return &riskService{
		products:    products,
		history:     history,
		notifier:    notifier,
		notifyEmail: notifyEmail,
		now:         time.Now,
	}
}

func (s *riskService) Analyze(ctx context.Context) ([]dto.SuggestionResponse, error) {
	// One captured now per pass — every product in the batch is judged
	// against the same instant.
	now := s.now()

	var (
		candidates []model.Product
		donated    map[uuid.UUID]bool
		discounted map[uuid.UUID]bool
	)

	// The three store reads are independent; classification waits on all of
	// them because the alreadyDonated flag comes from the donation read.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		candidates, err = s.products.ListCandidates(gctx, now, risk.ListingHorizonDays)
		return err
	})
	g.Go(func() error {
		var err error
		donated, err = s.history.ProductIDsByAction(gctx, model.ActionDonation)
		return err
	})
	g.Go(func() error {
		var err error
		discounted, err = s.history.ProductIDsByAction(gctx, model.ActionDiscount)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("risk analysis reads: %w", err)
	}

	inputs := make([]risk.Input, len(candidates))
	byID := make(map[uuid.UUID]model.Product, len(candidates))
	for i, p := range candidates {
		inputs[i] = risk.Input{
			ProductID:     p.ID,
			Quantity:      p.Quantity,
			AvgDailySales: p.AvgDailySales,
			ExpiryDate:    p.ExpiryDate,
		}
		byID[p.ID] = p
	}

	suggestions := risk.Build(inputs, donated, discounted, now)

	resp := make([]dto.SuggestionResponse, len(suggestions))
	for i, sg := range suggestions {
		p := byID[sg.ProductID]
		resp[i] = dto.SuggestionResponse{
			Product: dto.SuggestionProduct{
				ID:            p.ID.String(),
				Name:          p.Name,
				Category:      p.Category,
				Quantity:      p.Quantity,
				ExpiryDate:    p.ExpiryDate.Format("2006-01-02"),
				AvgDailySales: p.AvgDailySales,
				Price:         p.Price,
			},
			Action:            string(sg.Action),
			Reason:            sg.Reason,
			DaysLeft:          sg.DaysLeft,
			AlreadyDonated:    sg.AlreadyDonated,
			AlreadyDiscounted: sg.AlreadyDiscounted,
		}
	}
	return resp, nil
}

func (s *riskService) Confirm(ctx context.Context, actorID uuid.UUID, req dto.ConfirmRequest) (*dto.ConfirmResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid product_id: %w", err)
	}

	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	alreadyDonated, err := s.history.HasDonation(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("read donation history: %w", err)
	}
	// A donated product can never be discounted later — reject before any
	// write so a refused confirmation leaves both stores untouched.
	if req.Action == model.ActionDiscount && alreadyDonated {
		return nil, ErrAlreadyDonated
	}

	var pct *int
	if req.Action == model.ActionDiscount {
		pct = req.DiscountPercentage
		if pct == nil {
			v := defaultDiscountPercent
			pct = &v
		}
	}

	// The ledger snapshots the reason the user saw at suggestion time; if the
	// client did not echo it, re-derive it from the current product state.
	reason := req.Reason
	if reason == "" {
		daysLeft := risk.DaysUntil(p.ExpiryDate, s.now())
		snap := risk.Snapshot{Quantity: p.Quantity, AvgDailySales: p.AvgDailySales}
		reason = risk.Classify(snap, daysLeft, alreadyDonated).Reason
	}

	entry := &model.ActionEntry{
		ProductID:          productID,
		ActionType:         req.Action,
		DiscountPercentage: pct,
		Reason:             reason,
		DecidedBy:          actorID,
	}
	// Ledger append comes first: if it fails, no quantity mutation happens,
	// so every zeroed product is guaranteed a matching entry.
	if err := s.history.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("append ledger entry: %w", err)
	}

	resp := &dto.ConfirmResponse{EntryID: entry.ID.String()}

	if req.Action == model.ActionDonation {
		if err := s.products.SetQuantity(ctx, productID, 0); err != nil {
			// Ledger says donated, stock still shows >0. Surfaced as a
			// warning rather than auto-corrected — see error handling notes.
			log.Warn().
				Str("product_id", productID.String()).
				Str("entry_id", entry.ID.String()).
				Err(err).
				Msg("data consistency: donation recorded but quantity not zeroed")
			resp.Warning = "donation recorded, but the stock quantity could not be zeroed"
		} else {
			resp.QuantityZeroed = true
		}

		if s.notifier != nil && s.notifyEmail != "" {
			body := fmt.Sprintf("%s (%d units, category %s) was marked for donation.\nReason: %s",
				p.Name, p.Quantity, p.Category, reason)
			if err := s.notifier.EnqueueNotify(ctx, s.notifyEmail, "Donation prepared: "+p.Name, body); err != nil {
				log.Warn().Err(err).Msg("donation notification not enqueued")
			}
		}
	}

	return resp, nil
}
