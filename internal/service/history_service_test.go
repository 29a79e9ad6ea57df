package service

import (
	"context"
	"testing"

	"github.com/vahid343/food-save-city/internal/dto"
	"github.com/vahid343/food-save-city/internal/model"
	"github.com/vahid343/food-save-city/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRowHistoryRepo serves canned joined rows, unlike stubHistoryRepo which
// only tracks raw entries.
type stubRowHistoryRepo struct {
	stubHistoryRepo
	rows []repository.HistoryRow
}

func (r *stubRowHistoryRepo) List(_ context.Context, filter dto.HistoryFilter) ([]repository.HistoryRow, int64, error) {
	if filter.ActionType == "" {
		return r.rows, int64(len(r.rows)), nil
	}
	var out []repository.HistoryRow
	for _, row := range r.rows {
		if row.ActionType == filter.ActionType {
			out = append(out, row)
		}
	}
	return out, int64(len(out)), nil
}

func strPtr(s string) *string { return &s }

func TestHistoryListRendersDeletedProductPlaceholder(t *testing.T) {
	name := "Yogurt"
	cat := "Dairy"
	repo := &stubRowHistoryRepo{rows: []repository.HistoryRow{
		{
			ActionEntry:  model.ActionEntry{ID: uuid.New(), ProductID: uuid.New(), ActionType: model.ActionDonation, Reason: "r", DecidedBy: uuid.New()},
			ProductName:  &name,
			ProductCategory: &cat,
		},
		{
			// Product deleted after the decision — join came back empty.
			ActionEntry: model.ActionEntry{ID: uuid.New(), ProductID: uuid.New(), ActionType: model.ActionDiscount, Reason: "r", DecidedBy: uuid.New()},
		},
	}}
	svc := NewHistoryService(repo)

	resp, err := svc.List(context.Background(), dto.HistoryFilter{Page: 1, Limit: 50})
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)

	assert.Equal(t, "Yogurt", resp.Data[0].ProductName)
	assert.Equal(t, "Dairy", resp.Data[0].ProductCategory)
	assert.Equal(t, "Deleted product", resp.Data[1].ProductName)
	assert.Equal(t, "-", resp.Data[1].ProductCategory)
}

func TestHistoryListAllFiltersByAction(t *testing.T) {
	repo := &stubRowHistoryRepo{rows: []repository.HistoryRow{
		{ActionEntry: model.ActionEntry{ID: uuid.New(), ProductID: uuid.New(), ActionType: model.ActionDonation, DecidedBy: uuid.New()}, ProductName: strPtr("A"), ProductCategory: strPtr("Dairy")},
		{ActionEntry: model.ActionEntry{ID: uuid.New(), ProductID: uuid.New(), ActionType: model.ActionDiscount, DecidedBy: uuid.New()}, ProductName: strPtr("B"), ProductCategory: strPtr("Meat")},
		{ActionEntry: model.ActionEntry{ID: uuid.New(), ProductID: uuid.New(), ActionType: model.ActionDonation, DecidedBy: uuid.New()}, ProductName: strPtr("C"), ProductCategory: strPtr("Bakery")},
	}}
	svc := NewHistoryService(repo)

	out, err := svc.ListAll(context.Background(), model.ActionDonation)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "A", out[0].ProductName)
	assert.Equal(t, "C", out[1].ProductName)
}
