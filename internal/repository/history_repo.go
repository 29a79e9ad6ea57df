package repository

import (
	"context"

	"github.com/vahid343/food-save-city/internal/dto"
	"github.com/vahid343/food-save-city/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryRow is a ledger entry joined (LEFT) with its product. ProductName
// and ProductCategory are nil when the product has been deleted since the
// decision — callers render a placeholder, never an error.
type HistoryRow struct {
	model.ActionEntry
	ProductName     *string
	ProductCategory *string
}

// HistoryRepository is the append-only decision ledger. There is deliberately
// no Update or Delete: entries are immutable once written.
type HistoryRepository interface {
	Create(ctx context.Context, e *model.ActionEntry) error
	List(ctx context.Context, filter dto.HistoryFilter) ([]HistoryRow, int64, error)
	// ProductIDsByAction returns the distinct product ids having at least one
	// entry of the given kind; the donation set gates re-offering.
	ProductIDsByAction(ctx context.Context, actionType string) (map[uuid.UUID]bool, error)
	HasDonation(ctx context.Context, productID uuid.UUID) (bool, error)
	CountByAction(ctx context.Context, actionType string) (int64, error)
}

type historyRepo struct{ db *gorm.DB }

func NewHistoryRepository(db *gorm.DB) HistoryRepository { return &historyRepo{db: db} }

func (r *historyRepo) Create(ctx context.Context, e *model.ActionEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *historyRepo) List(ctx context.Context, filter dto.HistoryFilter) ([]HistoryRow, int64, error) {
	var total int64

	q := r.db.WithContext(ctx).Model(&model.ActionEntry{})
	if filter.ActionType != "" {
		q = q.Where("action_type = ?", filter.ActionType)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []HistoryRow
	offset := (filter.Page - 1) * filter.Limit
	err := q.
		Select("action_entries.*, products.name AS product_name, products.category AS product_category").
		Joins("LEFT JOIN products ON products.id = action_entries.product_id").
		Order("action_entries.created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Scan(&rows).Error
	return rows, total, err
}

func (r *historyRepo) ProductIDsByAction(ctx context.Context, actionType string) (map[uuid.UUID]bool, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.ActionEntry{}).
		Where("action_type = ?", actionType).
		Distinct("product_id").
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, err
	}
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (r *historyRepo) HasDonation(ctx context.Context, productID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ActionEntry{}).
		Where("product_id = ? AND action_type = ?", productID, model.ActionDonation).
		Count(&n).Error
	return n > 0, err
}

func (r *historyRepo) CountByAction(ctx context.Context, actionType string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ActionEntry{}).
		Where("action_type = ?", actionType).
		Count(&n).Error
	return n, err
}
