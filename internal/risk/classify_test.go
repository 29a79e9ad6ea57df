package risk

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	cases := []struct {
		name   string
		expiry time.Time
		want   int
	}{
		{"expires today", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), 0},
		{"expires tomorrow", time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), 1},
		{"expires in five days", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), 5},
		{"expired yesterday", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), -1},
		{"partial day counts as a full day", time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC), 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DaysUntil(tc.expiry, now))
		})
	}
}

func TestClassifyDiscount(t *testing.T) {
	// quantity=20, avg=2, daysLeft=5 → expected sales 10, surplus 10
	s := Classify(Snapshot{Quantity: 20, AvgDailySales: 2}, 5, false)

	assert.Equal(t, ActionDiscount, s.Action)
	assert.Equal(t, 5, s.DaysLeft)
	assert.Contains(t, s.Reason, "5 days left")
	assert.Contains(t, s.Reason, "surplus of 10 units")
}

func TestClassifyZeroSalesRateNeverDiscounts(t *testing.T) {
	// quantity=5, avg=0, daysLeft=4 → no velocity, no discount
	s := Classify(Snapshot{Quantity: 5, AvgDailySales: 0}, 4, false)

	assert.Equal(t, ActionDonation, s.Action)
	assert.Contains(t, s.Reason, "(0.0/day)")
	assert.Contains(t, s.Reason, "5 units")
}

func TestClassifyExpiresToday(t *testing.T) {
	// quantity=3, avg=1, daysLeft=0 → too late to discount
	s := Classify(Snapshot{Quantity: 3, AvgDailySales: 1}, 0, false)

	assert.Equal(t, ActionDonation, s.Action)
	assert.Contains(t, s.Reason, "today")
}

func TestClassifyAlreadyDonatedWinsOverSurplus(t *testing.T) {
	// quantity=10, avg=5, daysLeft=1, alreadyDonated → donation no matter what
	s := Classify(Snapshot{Quantity: 10, AvgDailySales: 5}, 1, true)

	assert.Equal(t, ActionDonation, s.Action)
	assert.Equal(t, ReasonAlreadyDonated, s.Reason)
	assert.True(t, s.AlreadyDonated)
}

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		name     string
		snap     Snapshot
		daysLeft int
		want     Action
	}{
		// surplus must be strictly positive: 4 expected = 4 on hand → donation
		{"zero surplus", Snapshot{Quantity: 4, AvgDailySales: 2}, 2, ActionDonation},
		{"tiny surplus", Snapshot{Quantity: 5, AvgDailySales: 2}, 2, ActionDiscount},
		// two full days is the minimum runway for a discount
		{"one day left", Snapshot{Quantity: 50, AvgDailySales: 1}, 1, ActionDonation},
		{"two days left", Snapshot{Quantity: 50, AvgDailySales: 1}, 2, ActionDiscount},
		{"already expired", Snapshot{Quantity: 50, AvgDailySales: 1}, -2, ActionDonation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Classify(tc.snap, tc.daysLeft, false)
			assert.Equal(t, tc.want, s.Action)
		})
	}
}

func TestClassifyDonationReasons(t *testing.T) {
	expired := Classify(Snapshot{Quantity: 2, AvgDailySales: 1}, -1, false)
	assert.Contains(t, expired.Reason, "Already expired")

	tomorrow := Classify(Snapshot{Quantity: 2, AvgDailySales: 1}, 1, false)
	assert.Contains(t, tomorrow.Reason, "tomorrow")

	// stock fully covered by expected sales, so no discount applies
	slow := Classify(Snapshot{Quantity: 2, AvgDailySales: 0.5}, 4, false)
	assert.Equal(t, ActionDonation, slow.Action)
	assert.Contains(t, slow.Reason, "(0.5/day)")
	assert.Contains(t, slow.Reason, "2 units")
}

func TestClassifyIsDeterministic(t *testing.T) {
	snap := Snapshot{Quantity: 12, AvgDailySales: 1.5}
	first := Classify(snap, 3, false)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Classify(snap, 3, false))
	}
}

func TestBuildPreservesStoreOrder(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	day := func(d int) time.Time { return now.AddDate(0, 0, d).Truncate(24 * time.Hour) }

	ids := make([]uuid.UUID, 4)
	for i := range ids {
		ids[i] = uuid.New()
	}
	candidates := []Input{
		{ProductID: ids[0], Quantity: 3, AvgDailySales: 1, ExpiryDate: day(0)},
		{ProductID: ids[1], Quantity: 20, AvgDailySales: 2, ExpiryDate: day(5)},
		{ProductID: ids[2], Quantity: 5, AvgDailySales: 0, ExpiryDate: day(4)},
		{ProductID: ids[3], Quantity: 10, AvgDailySales: 5, ExpiryDate: day(1)},
	}
	donated := map[uuid.UUID]bool{ids[3]: true}
	discounted := map[uuid.UUID]bool{ids[1]: true}

	out := Build(candidates, donated, discounted, now)
	require.Len(t, out, 4)

	for i, s := range out {
		assert.Equal(t, candidates[i].ProductID, s.ProductID, "order must match input at %d", i)
	}

	assert.Equal(t, ActionDonation, out[0].Action)
	assert.Equal(t, ActionDiscount, out[1].Action)
	assert.True(t, out[1].AlreadyDiscounted)
	assert.Equal(t, ActionDonation, out[2].Action)
	assert.Equal(t, ActionDonation, out[3].Action)
	assert.Equal(t, ReasonAlreadyDonated, out[3].Reason)
}

func TestBuildSharedInstant(t *testing.T) {
	// Every candidate in a batch is judged against the same now; a product
	// expiring "tomorrow" relative to that instant says so regardless of how
	// long the batch takes to build.
	now := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	expiry := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	candidates := make([]Input, 50)
	for i := range candidates {
		candidates[i] = Input{ProductID: uuid.New(), Quantity: 1, AvgDailySales: 1, ExpiryDate: expiry}
	}
	out := Build(candidates, nil, nil, now)
	require.Len(t, out, 50)
	for _, s := range out {
		assert.Equal(t, 1, s.DaysLeft)
	}
}

func TestWindowEnd(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC), WindowEnd(now, ListingHorizonDays))
	assert.Equal(t, time.Date(2026, 3, 13, 8, 0, 0, 0, time.UTC), WindowEnd(now, DashboardHorizonDays))
}

func TestSurplusRounding(t *testing.T) {
	// avg=1.3, daysLeft=3 → expected 3.9, qty 6 → surplus 2.1 rounds to 2
	s := Classify(Snapshot{Quantity: 6, AvgDailySales: 1.3}, 3, false)
	require.Equal(t, ActionDiscount, s.Action)
	assert.Contains(t, s.Reason, fmt.Sprintf("surplus of %d units", 2))
}
