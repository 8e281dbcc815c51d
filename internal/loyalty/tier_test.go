package loyalty

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTierFor(t *testing.T) {
	cases := []struct {
		name  string
		spent string
		want  Tier
	}{
		{"zero spend", "0", TierNone},
		{"just under silver", "49.99", TierNone},
		{"silver boundary", "50.00", TierSilver},
		{"mid silver", "75.50", TierSilver},
		{"just under gold", "99.99", TierSilver},
		{"gold boundary", "100.00", TierGold},
		{"well past gold", "1250.00", TierGold},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TierFor(decimal.RequireFromString(tc.spent)))
		})
	}
}

func TestTierForMonotonic(t *testing.T) {
	rank := map[Tier]int{TierNone: 0, TierSilver: 1, TierGold: 2}

	prev := TierNone
	for cents := int64(0); cents <= 15000; cents += 250 {
		tier := TierFor(decimal.New(cents, -2))
		assert.GreaterOrEqual(t, rank[tier], rank[prev], "tier dropped at %d cents", cents)
		prev = tier
	}
}

func TestDiscountPercent(t *testing.T) {
	assert.EqualValues(t, 0, TierNone.DiscountPercent())
	assert.EqualValues(t, 5, TierSilver.DiscountPercent())
	assert.EqualValues(t, 10, TierGold.DiscountPercent())
}

func TestMinimumSpend(t *testing.T) {
	assert.True(t, TierNone.MinimumSpend().IsZero())
	assert.True(t, TierSilver.MinimumSpend().Equal(decimal.NewFromInt(50)))
	assert.True(t, TierGold.MinimumSpend().Equal(decimal.NewFromInt(100)))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "No Tier", TierNone.Label())
	assert.Equal(t, "Silver", TierSilver.Label())
	assert.Equal(t, "Gold", TierGold.Label())
}
