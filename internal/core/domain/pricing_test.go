package domain

import "testing"

func TestCalculateCommission(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		tier  Tier
		want  float64
	}{
		{"starter on 1070", 1070, TierStarter, 50.00},
		{"marketer on 1070", 1070, TierMarketer, 100.00},
		{"builder on 1070", 1070, TierBuilder, 200.00},
		{"executive on 1070", 1070, TierExecutive, 300.00},
		{"builder on 750", 750, TierBuilder, 140.19},
		{"zero price", 0, TierExecutive, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateCommission(tt.price, tt.tier); got != tt.want {
				t.Errorf("CalculateCommission(%v, %v) = %v, want %v", tt.price, tt.tier, got, tt.want)
			}
		})
	}
}

func TestCartTotalsWorkedExample(t *testing.T) {
	// Subtotal 1000, Builder (20% discount), 5% percent coupon.
	lines := []CartLine{
		{Price: 250, Quantity: 4},
	}
	coupon := &AppliedCoupon{Code: "SYNERGY2026", Type: CouponPercent, Value: 5}

	totals := CartTotals(lines, TierBuilder, coupon)

	if totals.Subtotal != 1000.00 {
		t.Errorf("Subtotal = %v, want 1000.00", totals.Subtotal)
	}
	if totals.MemberDiscount != 200.00 {
		t.Errorf("MemberDiscount = %v, want 200.00", totals.MemberDiscount)
	}
	if totals.CouponDiscount != 50.00 {
		t.Errorf("CouponDiscount = %v, want 50.00", totals.CouponDiscount)
	}
	if totals.Discount != 250.00 {
		t.Errorf("Discount = %v, want 250.00", totals.Discount)
	}
	if totals.VAT != 49.07 {
		t.Errorf("VAT = %v, want 49.07", totals.VAT)
	}
	if totals.Total != 750.00 {
		t.Errorf("Total = %v, want 750.00", totals.Total)
	}
}

func TestCartTotalsFlatCoupon(t *testing.T) {
	lines := []CartLine{
		{Price: 450, Quantity: 1},
	}
	coupon := &AppliedCoupon{Code: "WELCOME100", Type: CouponFlat, Value: 100}

	totals := CartTotals(lines, TierStarter, coupon)

	if totals.MemberDiscount != 0 {
		t.Errorf("MemberDiscount = %v, want 0", totals.MemberDiscount)
	}
	if totals.CouponDiscount != 100.00 {
		t.Errorf("CouponDiscount = %v, want 100.00", totals.CouponDiscount)
	}
	if totals.Total != 350.00 {
		t.Errorf("Total = %v, want 350.00", totals.Total)
	}
}

func TestCartTotalsClampedAtZero(t *testing.T) {
	// Discounts exceeding the subtotal must not drive the total negative.
	lines := []CartLine{
		{Price: 50, Quantity: 1},
	}
	coupon := &AppliedCoupon{Code: "WELCOME100", Type: CouponFlat, Value: 100}

	totals := CartTotals(lines, TierStarter, coupon)

	if totals.Total != 0 {
		t.Errorf("Total = %v, want 0", totals.Total)
	}
	if totals.VAT != 0 {
		t.Errorf("VAT = %v, want 0", totals.VAT)
	}
}

func TestCartTotalsNoCoupon(t *testing.T) {
	lines := []CartLine{
		{Price: 890, Quantity: 2},
		{Price: 350, Quantity: 1},
	}

	totals := CartTotals(lines, TierMarketer, nil)

	if totals.Subtotal != 2130.00 {
		t.Errorf("Subtotal = %v, want 2130.00", totals.Subtotal)
	}
	if totals.MemberDiscount != 213.00 {
		t.Errorf("MemberDiscount = %v, want 213.00", totals.MemberDiscount)
	}
	if totals.CouponDiscount != 0 {
		t.Errorf("CouponDiscount = %v, want 0", totals.CouponDiscount)
	}
	if totals.Total != 1917.00 {
		t.Errorf("Total = %v, want 1917.00", totals.Total)
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderPending, OrderToShip, true},
		{OrderToShip, OrderShipped, true},
		{OrderShipped, OrderDelivered, true},
		{OrderPending, OrderShipped, false},
		{OrderPending, OrderDelivered, false},
		{OrderDelivered, OrderShipped, false},
		{OrderShipped, OrderPending, false},
		{OrderDelivered, OrderDelivered, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestQuoteWithdrawal(t *testing.T) {
	quote := QuoteWithdrawal(1000)

	if quote.Fee != 25.00 {
		t.Errorf("Fee = %v, want 25.00", quote.Fee)
	}
	if quote.Tax != 30.00 {
		t.Errorf("Tax = %v, want 30.00", quote.Tax)
	}
	if quote.Net != 945.00 {
		t.Errorf("Net = %v, want 945.00", quote.Net)
	}
}
