// Package loyalty derives a customer's tier from cumulative spend. Updating
// the spend total after delivered orders is the caller's job; this package
// only classifies.
package loyalty

import "github.com/shopspring/decimal"

// Tier is a customer loyalty classification.
type Tier string

const (
	TierNone   Tier = "none"
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
)

var (
	silverMinimum = decimal.NewFromInt(50)
	goldMinimum   = decimal.NewFromInt(100)
)

// TierFor classifies cumulative spend. Thresholds are checked from the top so
// boundary values resolve to the higher tier.
func TierFor(totalSpent decimal.Decimal) Tier {
	switch {
	case totalSpent.GreaterThanOrEqual(goldMinimum):
		return TierGold
	case totalSpent.GreaterThanOrEqual(silverMinimum):
		return TierSilver
	default:
		return TierNone
	}
}

// DiscountPercent is the automatic checkout discount the tier grants.
func (t Tier) DiscountPercent() int64 {
	switch t {
	case TierGold:
		return 10
	case TierSilver:
		return 5
	default:
		return 0
	}
}

// MinimumSpend is the cumulative spend required to reach the tier.
func (t Tier) MinimumSpend() decimal.Decimal {
	switch t {
	case TierGold:
		return goldMinimum
	case TierSilver:
		return silverMinimum
	default:
		return decimal.Zero
	}
}

// Label is the human readable tier name.
func (t Tier) Label() string {
	switch t {
	case TierGold:
		return "Gold"
	case TierSilver:
		return "Silver"
	default:
		return "No Tier"
	}
}
