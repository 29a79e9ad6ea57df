package service

import (
	"context"
	"time"

	"github.com/vahid343/food-save-city/internal/dto"
	"github.com/vahid343/food-save-city/internal/repository"
)

// deletedProductPlaceholder renders in place of a product that was removed
// after the decision was recorded. The ledger row itself is untouched.
const deletedProductPlaceholder = "Deleted product"

// HistoryService reads the decision ledger. The ledger has no mutating
// operations beyond the append performed by RiskService.Confirm.
type HistoryService interface {
	List(ctx context.Context, filter dto.HistoryFilter) (*dto.HistoryListResponse, error)
	// ListAll returns every row matching the filter (no pagination) for the
	// PDF report export.
	ListAll(ctx context.Context, actionType string) ([]dto.HistoryEntryResponse, error)
}

type historyService struct {
	repo repository.HistoryRepository
}

func NewHistoryService(repo repository.HistoryRepository) HistoryService {
	return &historyService{repo: repo}
}

func mapRow(r repository.HistoryRow) dto.HistoryEntryResponse {
	name := deletedProductPlaceholder
	category := "-"
	if r.ProductName != nil {
		name = *r.ProductName
	}
	if r.ProductCategory != nil {
		category = *r.ProductCategory
	}
	return dto.HistoryEntryResponse{
		ID:                 r.ID.String(),
		ProductID:          r.ProductID.String(),
		ProductName:        name,
		ProductCategory:    category,
		ActionType:         r.ActionType,
		DiscountPercentage: r.DiscountPercentage,
		Reason:             r.Reason,
		DecidedBy:          r.DecidedBy.String(),
		CreatedAt:          r.CreatedAt.Format(time.RFC3339),
	}
}

func (s *historyService) List(ctx context.Context, filter dto.HistoryFilter) (*dto.HistoryListResponse, error) {
	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.HistoryEntryResponse, len(rows))
	for i, r := range rows {
		data[i] = mapRow(r)
	}
	return &dto.HistoryListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *historyService) ListAll(ctx context.Context, actionType string) ([]dto.HistoryEntryResponse, error) {
	filter := dto.HistoryFilter{ActionType: actionType, Page: 1, Limit: 10000}
	rows, _, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.HistoryEntryResponse, len(rows))
	for i, r := range rows {
		data[i] = mapRow(r)
	}
	return data, nil
}
