package campaigns

import (
	"context"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/checkout/session"

	"github.com/creatorvault/creatorvault-backend/pkg/config"
	pkgstripe "github.com/creatorvault/creatorvault-backend/pkg/stripe"
)

// CheckoutClient creates hosted checkout sessions for campaign deposits. The
// campaign id travels in session and payment-intent metadata so webhook
// deliveries can be reconciled back to the campaign.
type CheckoutClient interface {
	CreateDepositSession(ctx context.Context, input DepositSessionInput) (string, error)
}

// DepositSessionInput describes a single campaign funding checkout.
type DepositSessionInput struct {
	CampaignID  string
	Title       string
	AmountCents int64
}

type checkoutClientWrapper struct {
	cfg config.StripeConfig
}

// NewCheckoutClient wraps the shared Stripe client for deposit checkouts.
func NewCheckoutClient(api *pkgstripe.Client, cfg config.StripeConfig) CheckoutClient {
	if api == nil {
		return nil
	}
	return &checkoutClientWrapper{cfg: cfg}
}

func (w *checkoutClientWrapper) CreateDepositSession(ctx context.Context, input DepositSessionInput) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(w.cfg.DepositSuccess),
		CancelURL:  stripe.String(w.cfg.DepositCancel),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(input.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Campaign deposit: " + input.Title),
					},
				},
			},
		},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{
				"type":        "campaign_deposit",
				"campaign_id": input.CampaignID,
			},
		},
	}
	params.AddMetadata("type", "campaign_deposit")
	params.AddMetadata("campaign_id", input.CampaignID)
	params.Context = ctx

	s, err := session.New(params)
	if err != nil {
		return "", err
	}
	return s.URL, nil
}
