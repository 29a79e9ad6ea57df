package service

import (
	"context"
	"testing"

	"github.com/vahid343/food-save-city/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	products := newStubProductRepo()
	history := &stubHistoryRepo{}

	for i := 0; i < 4; i++ {
		require.NoError(t, products.Create(context.Background(), &model.Product{
			Name: "p", Quantity: 1, ExpiryDate: dateOnly(10),
		}))
	}
	products.candidates = []model.Product{{ID: uuid.New()}, {ID: uuid.New()}}

	pid := uuid.New()
	require.NoError(t, history.Create(context.Background(), &model.ActionEntry{
		ProductID: pid, ActionType: model.ActionDiscount, DecidedBy: uuid.New(),
	}))
	require.NoError(t, history.Create(context.Background(), &model.ActionEntry{
		ProductID: pid, ActionType: model.ActionDonation, DecidedBy: uuid.New(),
	}))
	require.NoError(t, history.Create(context.Background(), &model.ActionEntry{
		ProductID: uuid.New(), ActionType: model.ActionDonation, DecidedBy: uuid.New(),
	}))

	svc := NewDashboardService(products, history, nil).(*dashboardService)
	svc.now = fixedNow

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalProducts)
	assert.Equal(t, int64(2), stats.RiskProducts)
	assert.Equal(t, int64(1), stats.Discounted)
	assert.Equal(t, int64(2), stats.Donated)
}
