package payments

import (
	"context"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/transfer"

	pkgstripe "github.com/creatorvault/creatorvault-backend/pkg/stripe"
)

// TransferClient moves funds from the platform balance to a creator's
// connected account. Kept as an interface so the payout path can be faked.
type TransferClient interface {
	CreateTransfer(ctx context.Context, input TransferInput) (string, error)
}

// TransferInput describes a single outbound payout.
type TransferInput struct {
	AccountID   string
	AmountCents int64
	Currency    string
	PaymentID   string
	Description string
}

type transferClientWrapper struct{}

// NewTransferClient wraps the shared Stripe client for Connect transfers.
func NewTransferClient(api *pkgstripe.Client) TransferClient {
	if api == nil {
		return nil
	}
	return &transferClientWrapper{}
}

func (w *transferClientWrapper) CreateTransfer(ctx context.Context, input TransferInput) (string, error) {
	currency := input.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	params := &stripe.TransferParams{
		Amount:      stripe.Int64(input.AmountCents),
		Currency:    stripe.String(currency),
		Destination: stripe.String(input.AccountID),
	}
	if input.Description != "" {
		params.Description = stripe.String(input.Description)
	}
	if input.PaymentID != "" {
		params.AddMetadata("payment_id", input.PaymentID)
	}
	params.Context = ctx

	t, err := transfer.New(params)
	if err != nil {
		return "", err
	}
	return t.ID, nil
}
