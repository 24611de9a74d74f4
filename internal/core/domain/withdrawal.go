package domain

import "synergy-shop/internal/pkg/money"

// Withdrawal terms. The wallet is debited by the gross requested
// amount at request time; fee and withholding tax determine the net
// amount actually wired and are recorded on the ledger entry.
const (
	MinWithdrawal      = 100.0
	WithdrawalFee      = 25.0
	WithholdingTaxRate = 0.03
)

// WithdrawalQuote is the fee/tax breakdown of a withdrawal request.
type WithdrawalQuote struct {
	Amount float64 `json:"amount"`
	Fee    float64 `json:"fee"`
	Tax    float64 `json:"tax"`
	Net    float64 `json:"net"`
}

// QuoteWithdrawal computes the net payout for a gross withdrawal amount.
func QuoteWithdrawal(amount float64) WithdrawalQuote {
	tax := money.Mul(amount, WithholdingTaxRate)
	net := money.Sub(money.Sub(amount, WithdrawalFee), tax)
	if net < 0 {
		net = 0
	}
	return WithdrawalQuote{
		Amount: amount,
		Fee:    WithdrawalFee,
		Tax:    tax,
		Net:    net,
	}
}
