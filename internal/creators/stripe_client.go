package creators

import (
	"context"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/account"
	"github.com/stripe/stripe-go/v84/accountlink"

	"github.com/creatorvault/creatorvault-backend/pkg/config"
	pkgstripe "github.com/creatorvault/creatorvault-backend/pkg/stripe"
)

// ConnectClient exposes the subset of Stripe Connect operations the creator
// service needs, so it can be faked in tests.
type ConnectClient interface {
	CreateExpressAccount(ctx context.Context, email string) (string, error)
	CreateOnboardingLink(ctx context.Context, accountID string) (string, error)
}

type connectClientWrapper struct {
	cfg config.StripeConfig
}

// NewConnectClient wraps the shared Stripe client for Connect onboarding.
func NewConnectClient(api *pkgstripe.Client, cfg config.StripeConfig) ConnectClient {
	if api == nil {
		return nil
	}
	return &connectClientWrapper{cfg: cfg}
}

func (w *connectClientWrapper) CreateExpressAccount(ctx context.Context, email string) (string, error) {
	params := &stripe.AccountParams{
		Type: stripe.String(string(stripe.AccountTypeExpress)),
		Capabilities: &stripe.AccountCapabilitiesParams{
			Transfers: &stripe.AccountCapabilitiesTransfersParams{
				Requested: stripe.Bool(true),
			},
		},
	}
	if email != "" {
		params.Email = stripe.String(email)
	}
	params.Context = ctx

	acct, err := account.New(params)
	if err != nil {
		return "", err
	}
	return acct.ID, nil
}

func (w *connectClientWrapper) CreateOnboardingLink(ctx context.Context, accountID string) (string, error) {
	params := &stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(w.cfg.ConnectRefresh),
		ReturnURL:  stripe.String(w.cfg.ConnectReturn),
		Type:       stripe.String("account_onboarding"),
	}
	params.Context = ctx

	link, err := accountlink.New(params)
	if err != nil {
		return "", err
	}
	return link.URL, nil
}
