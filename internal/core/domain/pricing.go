package domain

import (
	"github.com/shopspring/decimal"

	"synergy-shop/internal/pkg/money"
)

// VATRate is the Thai VAT rate baked into all listed prices.
// Prices are VAT-inclusive; the pre-VAT value is backed out with
// price / (1 + VATRate).
const VATRate = 0.07

var vatDivisor = decimal.NewFromFloat(1 + VATRate)

// CalculateCommission computes the commission earned on a VAT-inclusive
// price at the given tier. Commission is paid on the pre-VAT value and
// rounded once, to 2 decimal places, at the end.
func CalculateCommission(price float64, tier Tier) float64 {
	f, _ := decimal.NewFromFloat(price).
		Div(vatDivisor).
		Mul(decimal.NewFromFloat(CommissionRate(tier))).
		Round(2).
		Float64()
	return f
}

// CartLine is one priced line of a cart: a unit price and a quantity.
type CartLine struct {
	Price    float64
	Quantity int
}

// AppliedCoupon carries the discount terms of a coupon at pricing time.
type AppliedCoupon struct {
	Code  string
	Type  CouponType
	Value float64
}

// Totals is the full price breakdown of a cart.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	MemberDiscount float64 `json:"member_discount"`
	CouponDiscount float64 `json:"coupon_discount"`
	Discount       float64 `json:"discount"`
	VAT            float64 `json:"vat"`
	Total          float64 `json:"total"`
}

// CartTotals prices a cart for a user tier and optional coupon.
// Each monetary step is rounded to 2 decimal places independently;
// deferring rounding to the end produces different totals.
func CartTotals(lines []CartLine, tier Tier, coupon *AppliedCoupon) Totals {
	subtotal := 0.0
	for _, line := range lines {
		subtotal = money.Add(subtotal, money.Mul(line.Price, float64(line.Quantity)))
	}

	memberDiscount := money.Mul(subtotal, MemberDiscountRate(tier))

	couponDiscount := 0.0
	if coupon != nil {
		switch coupon.Type {
		case CouponPercent:
			couponDiscount = money.Mul(subtotal, coupon.Value/100)
		case CouponFlat:
			couponDiscount = coupon.Value
		}
	}

	discount := money.Add(memberDiscount, couponDiscount)

	finalPrice := money.Sub(subtotal, discount)
	if finalPrice < 0 {
		finalPrice = 0
	}

	// VAT is backed out of the VAT-inclusive final price, not added on top.
	vat, _ := decimal.NewFromFloat(finalPrice).
		Sub(decimal.NewFromFloat(finalPrice).Div(vatDivisor)).
		Round(2).
		Float64()

	return Totals{
		Subtotal:       subtotal,
		MemberDiscount: memberDiscount,
		CouponDiscount: couponDiscount,
		Discount:       discount,
		VAT:            vat,
		Total:          money.Round2(finalPrice),
	}
}
