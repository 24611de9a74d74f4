package domain

import "testing"

func TestResolveTier(t *testing.T) {
	tests := []struct {
		name  string
		sales float64
		want  Tier
	}{
		{"zero sales", 0, TierStarter},
		{"just below marketer", 2999.99, TierStarter},
		{"marketer threshold", 3000, TierMarketer},
		{"between marketer and builder", 8999.99, TierMarketer},
		{"builder threshold", 9000, TierBuilder},
		{"just below executive", 17999.99, TierBuilder},
		{"executive threshold", 18000, TierExecutive},
		{"far above executive", 1000000, TierExecutive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveTier(tt.sales); got != tt.want {
				t.Errorf("ResolveTier(%v) = %v, want %v", tt.sales, got, tt.want)
			}
		})
	}
}

func TestResolveTierMonotonic(t *testing.T) {
	rank := map[Tier]int{
		TierStarter:   0,
		TierMarketer:  1,
		TierBuilder:   2,
		TierExecutive: 3,
	}

	prev := TierStarter
	for sales := 0.0; sales <= 25000; sales += 50 {
		got := ResolveTier(sales)
		if rank[got] < rank[prev] {
			t.Fatalf("tier decreased from %v to %v at sales %v", prev, got, sales)
		}
		prev = got
	}
}

func TestRateTablesOrdered(t *testing.T) {
	tiers := []Tier{TierStarter, TierMarketer, TierBuilder, TierExecutive}

	for i := 1; i < len(tiers); i++ {
		if CommissionRate(tiers[i]) < CommissionRate(tiers[i-1]) {
			t.Errorf("commission rate for %v is below %v", tiers[i], tiers[i-1])
		}
		if MemberDiscountRate(tiers[i]) < MemberDiscountRate(tiers[i-1]) {
			t.Errorf("discount rate for %v is below %v", tiers[i], tiers[i-1])
		}
	}
}

func TestNextTierTarget(t *testing.T) {
	tests := []struct {
		sales float64
		want  float64
	}{
		{0, 3000},
		{2999.99, 3000},
		{3000, 9000},
		{9000, 18000},
		{18000, 18000},
		{50000, 18000},
	}

	for _, tt := range tests {
		if got := NextTierTarget(tt.sales); got != tt.want {
			t.Errorf("NextTierTarget(%v) = %v, want %v", tt.sales, got, tt.want)
		}
	}
}
