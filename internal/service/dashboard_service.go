package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vahid343/food-save-city/internal/dto"
	"github.com/vahid343/food-save-city/internal/model"
	"github.com/vahid343/food-save-city/internal/repository"
	"github.com/vahid343/food-save-city/internal/risk"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 30 * time.Second
)

// DashboardService computes the four overview counters. Results are cached in
// redis with a short TTL so a dashboard poll does not hit Postgres four times.
type DashboardService interface {
	Stats(ctx context.Context) (*dto.DashboardStats, error)
}

type dashboardService struct {
	products repository.ProductRepository
	history  repository.HistoryRepository
	rdb      *redis.Client
	now      func() time.Time
}

func NewDashboardService(products repository.ProductRepository, history repository.HistoryRepository, rdb *redis.Client) DashboardService {
	return &dashboardService{products: products, history: history, rdb: rdb, now: time.Now}
}

func (s *dashboardService) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, statsCacheKey).Bytes(); err == nil {
			var stats dto.DashboardStats
			if jsonErr := json.Unmarshal(cached, &stats); jsonErr == nil {
				return &stats, nil
			}
		}
	}

	now := s.now()
	var stats dto.DashboardStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.TotalProducts, err = s.products.Count(gctx)
		return err
	})
	g.Go(func() error {
		// The dashboard counter uses the 3-day horizon, not the 5-day
		// listing horizon.
		var err error
		stats.RiskProducts, err = s.products.CountExpiringWithin(gctx, now, risk.DashboardHorizonDays)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Discounted, err = s.history.CountByAction(gctx, model.ActionDiscount)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Donated, err = s.history.CountByAction(gctx, model.ActionDonation)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if b, err := json.Marshal(stats); err == nil {
			// Best effort — a cache write failure is invisible to the caller.
			_ = s.rdb.Set(context.Background(), statsCacheKey, b, statsCacheTTL).Err()
		}
	}
	return &stats, nil
}
