package worker

import (
	"testing"
	"time"

	"github.com/vahid343/food-save-city/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuildDigest(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	day := func(d int) time.Time { return time.Date(2026, 3, 10+d, 0, 0, 0, 0, time.UTC) }

	donatedID := uuid.New()
	candidates := []model.Product{
		{ID: uuid.New(), Name: "Yogurt", Category: "Dairy", Quantity: 20, AvgDailySales: 2, ExpiryDate: day(3)},
		{ID: donatedID, Name: "Milk", Category: "Dairy", Quantity: 5, AvgDailySales: 1, ExpiryDate: day(1)},
	}

	body := buildDigest(candidates, map[uuid.UUID]bool{donatedID: true}, now)

	assert.Contains(t, body, "expire within 3 days")
	assert.Contains(t, body, "Yogurt")
	assert.Contains(t, body, "suggested: discount")
	assert.Contains(t, body, "Milk")
	assert.Contains(t, body, "suggested: donation")
	assert.Contains(t, body, "expires 2026-03-11")
}
