package domain

// Tier represents an affiliate membership level. A user's tier is
// derived from lifetime accumulated sales only; it is never stored
// independently of the threshold table below.
type Tier string

const (
	TierStarter   Tier = "STARTER"
	TierMarketer  Tier = "MARKETER"
	TierBuilder   Tier = "BUILDER"
	TierExecutive Tier = "EXECUTIVE"
)

// tierThresholds maps each tier to the minimum accumulated sales (THB)
// required to reach it. Thresholds are strictly increasing.
var tierThresholds = []struct {
	Tier      Tier
	Threshold float64
}{
	{TierStarter, 0},
	{TierMarketer, 3000},
	{TierBuilder, 9000},
	{TierExecutive, 18000},
}

// commissionRates maps tier to the commission fraction earned on the
// pre-VAT order value.
var commissionRates = map[Tier]float64{
	TierStarter:   0.05,
	TierMarketer:  0.10,
	TierBuilder:   0.20,
	TierExecutive: 0.30,
}

// memberDiscountRates maps tier to the purchase discount fraction.
var memberDiscountRates = map[Tier]float64{
	TierStarter:   0,
	TierMarketer:  0.10,
	TierBuilder:   0.20,
	TierExecutive: 0.30,
}

// ResolveTier returns the highest tier whose threshold is covered by
// the given accumulated sales.
func ResolveTier(accumulatedSales float64) Tier {
	tier := TierStarter
	for _, t := range tierThresholds {
		if accumulatedSales >= t.Threshold {
			tier = t.Tier
		}
	}
	return tier
}

// CommissionRate returns the commission fraction for a tier.
func CommissionRate(tier Tier) float64 {
	return commissionRates[tier]
}

// MemberDiscountRate returns the member discount fraction for a tier.
func MemberDiscountRate(tier Tier) float64 {
	return memberDiscountRates[tier]
}

// NextTierTarget returns the next sales threshold strictly above the
// current accumulated sales. At the top tier it saturates and returns
// the top threshold instead of erroring.
func NextTierTarget(currentSales float64) float64 {
	for _, t := range tierThresholds {
		if t.Threshold > currentSales {
			return t.Threshold
		}
	}
	return tierThresholds[len(tierThresholds)-1].Threshold
}

// IsValidTier reports whether the value is a known tier.
func IsValidTier(tier Tier) bool {
	_, ok := commissionRates[tier]
	return ok
}
