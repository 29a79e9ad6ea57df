package risk

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Action is the recommended move for a risk-zone product.
type Action string

const (
	ActionDiscount Action = "discount"
	ActionDonation Action = "donation"
)

// Snapshot carries the two product fields the decision policy reads.
type Snapshot struct {
	Quantity      int
	AvgDailySales float64
}

// Input is one candidate product handed to the suggestion builder.
type Input struct {
	ProductID     uuid.UUID
	Quantity      int
	AvgDailySales float64
	ExpiryDate    time.Time
}

// Suggestion is a transient recommendation, recomputed on every pass and
// never persisted. DaysLeft may be negative (already expired).
type Suggestion struct {
	ProductID         uuid.UUID
	Action            Action
	Reason            string
	DaysLeft          int
	AlreadyDonated    bool
	AlreadyDiscounted bool
}

// ReasonAlreadyDonated is the fixed message for rule 1. A product with a
// donation entry in the ledger is never re-offered for discount.
const ReasonAlreadyDonated = "Product has already been marked for donation."

// Classify applies the decision policy to one product snapshot. Rules are
// evaluated in precedence order, first match wins:
//
//  1. alreadyDonated → donation, fixed message.
//  2. surplus > 0 AND daysLeft >= 2 AND avgDailySales > 0 → discount,
//     where surplus = quantity − avgDailySales×daysLeft. A discount only
//     makes sense with genuine surplus, enough time, and nonzero velocity.
//  3. everything else → donation; the reason cites imminent expiry when
//     daysLeft <= 1, otherwise the low sales rate against stock on hand.
//
// The inequalities are strict where written (surplus > 0, not >=) and the
// function never fails: out-of-window inputs degrade to a donation.
func Classify(s Snapshot, daysLeft int, alreadyDonated bool) Suggestion {
	if alreadyDonated {
		return Suggestion{
			Action:         ActionDonation,
			Reason:         ReasonAlreadyDonated,
			DaysLeft:       daysLeft,
			AlreadyDonated: true,
		}
	}

	expectedSales := s.AvgDailySales * float64(daysLeft)
	surplus := float64(s.Quantity) - expectedSales

	if surplus > 0 && daysLeft >= 2 && s.AvgDailySales > 0 {
		return Suggestion{
			Action: ActionDiscount,
			Reason: fmt.Sprintf(
				"%d days left; surplus of %d units above expected sell-through. A discount can accelerate sales.",
				daysLeft, int(math.Round(surplus))),
			DaysLeft: daysLeft,
		}
	}

	var reason string
	switch {
	case daysLeft < 0:
		reason = "Already expired; no longer sellable."
	case daysLeft == 0:
		reason = "Expires today; a sale is unlikely in the remaining time."
	case daysLeft == 1:
		reason = "Expires tomorrow; a sale is unlikely in the remaining time."
	default:
		reason = fmt.Sprintf(
			"%d days left; low average daily sales (%.1f/day) for %d units on hand.",
			daysLeft, s.AvgDailySales, s.Quantity)
	}
	return Suggestion{Action: ActionDonation, Reason: reason, DaysLeft: daysLeft}
}

// Build classifies a batch of candidates against a single captured now.
// The store hands candidates ordered by expiry ascending; that order is
// preserved here — soonest-expiring products surface first and ties keep the
// store-assigned order.
func Build(candidates []Input, donated, discounted map[uuid.UUID]bool, now time.Time) []Suggestion {
	out := make([]Suggestion, 0, len(candidates))
	for _, c := range candidates {
		daysLeft := DaysUntil(c.ExpiryDate, now)
		s := Classify(Snapshot{Quantity: c.Quantity, AvgDailySales: c.AvgDailySales}, daysLeft, donated[c.ProductID])
		s.ProductID = c.ProductID
		s.AlreadyDiscounted = discounted[c.ProductID]
		out = append(out, s)
	}
	return out
}
