// Package payouts holds the pure money and tier policy shared by contracts,
// webhooks and the guaranteed-income scheduler.
package payouts

import "github.com/shopspring/decimal"

// PlatformFeePercent is the platform-wide fee policy. It is not configurable
// per campaign; contracts freeze the split at approval time.
var PlatformFeePercent = decimal.NewFromFloat(0.20)

// Breakdown is the result of splitting a gross amount.
type Breakdown struct {
	Gross         decimal.Decimal `json:"gross"`
	PlatformFee   decimal.Decimal `json:"platform_fee"`
	CreatorPayout decimal.Decimal `json:"creator_payout"`
}

// Split divides a gross amount into platform fee and creator payout at
// currency precision. The payout is derived by subtracting the rounded fee
// rather than rounding independently, so PlatformFee + CreatorPayout always
// equals the rounded gross.
func Split(gross decimal.Decimal) Breakdown {
	rounded := gross.Round(2)
	fee := rounded.Mul(PlatformFeePercent).Round(2)
	return Breakdown{
		Gross:         rounded,
		PlatformFee:   fee,
		CreatorPayout: rounded.Sub(fee),
	}
}
