package money

import "testing"

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{49.065, 49.07},
		{49.064, 49.06},
		{-49.065, -49.07},
		{100, 100},
		{0.005, 0.01},
	}

	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMul(t *testing.T) {
	if got := Mul(2130, 0.10); got != 213.00 {
		t.Errorf("Mul(2130, 0.10) = %v, want 213.00", got)
	}
	// 0.1+0.2 style float drift must not leak into totals
	if got := Mul(0.1, 3); got != 0.30 {
		t.Errorf("Mul(0.1, 3) = %v, want 0.30", got)
	}
}

func TestDiv(t *testing.T) {
	if got := Div(750, 1.07); got != 700.93 {
		t.Errorf("Div(750, 1.07) = %v, want 700.93", got)
	}
}

func TestAddSub(t *testing.T) {
	if got := Add(0.1, 0.2); got != 0.30 {
		t.Errorf("Add(0.1, 0.2) = %v, want 0.30", got)
	}
	if got := Sub(1000, 999.99); got != 0.01 {
		t.Errorf("Sub(1000, 999.99) = %v, want 0.01", got)
	}
}

// Monetary values must survive repeated round-tripping through the
// store without drift beyond the 2-decimal rounding.
func TestRoundTripStability(t *testing.T) {
	amounts := []float64{50.00, 49.07, 945.00, 213.00, 1917.00}

	for _, a := range amounts {
		v := a
		for i := 0; i < 100; i++ {
			v = Round2(v)
		}
		if v != a {
			t.Errorf("amount %v drifted to %v after repeated rounding", a, v)
		}
	}
}
