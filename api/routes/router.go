package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/creatorvault/creatorvault-backend/api/controllers"
	webhookcontrollers "github.com/creatorvault/creatorvault-backend/api/controllers/webhooks"
	"github.com/creatorvault/creatorvault-backend/api/middleware"
	"github.com/creatorvault/creatorvault-backend/internal/admin"
	"github.com/creatorvault/creatorvault-backend/internal/applications"
	"github.com/creatorvault/creatorvault-backend/internal/brands"
	"github.com/creatorvault/creatorvault-backend/internal/campaigns"
	"github.com/creatorvault/creatorvault-backend/internal/contracts"
	"github.com/creatorvault/creatorvault-backend/internal/creators"
	"github.com/creatorvault/creatorvault-backend/internal/deliverables"
	"github.com/creatorvault/creatorvault-backend/internal/notifications"
	"github.com/creatorvault/creatorvault-backend/internal/payments"
	"github.com/creatorvault/creatorvault-backend/internal/reviews"
	incomescheduler "github.com/creatorvault/creatorvault-backend/internal/schedulers/income"
	stripewebhook "github.com/creatorvault/creatorvault-backend/internal/webhooks/stripe"
	"github.com/creatorvault/creatorvault-backend/pkg/config"
	"github.com/creatorvault/creatorvault-backend/pkg/db"
	"github.com/creatorvault/creatorvault-backend/pkg/enums"
	"github.com/creatorvault/creatorvault-backend/pkg/logger"
	"github.com/creatorvault/creatorvault-backend/pkg/metrics"
	"github.com/creatorvault/creatorvault-backend/pkg/redis"
	"github.com/creatorvault/creatorvault-backend/pkg/stripe"
)

// Deps carries everything the router mounts. cmd/api builds one after wiring
// the services.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger

	DB    db.Pinger
	Redis *redis.Client

	Creators      creators.Service
	Brands        brands.Service
	Campaigns     campaigns.Service
	Applications  applications.Service
	Contracts     contracts.Service
	Deliverables  deliverables.Service
	Payments      payments.Service
	Reviews       reviews.Service
	Notifications notifications.Service
	Admin         admin.Service

	IncomeScheduler *incomescheduler.Service

	StripeClient       *stripe.Client
	StripeWebhook      *stripewebhook.Service
	StripeWebhookGuard *stripewebhook.IdempotencyGuard
	WebhookMetrics     *metrics.WebhookMetrics
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.Post("/stripe", webhookcontrollers.StripeWebhook(deps.StripeWebhook, deps.StripeClient, deps.StripeWebhookGuard, deps.WebhookMetrics, logg))
	})

	writePolicy := middleware.NewRateLimitPolicy(
		"writes",
		cfg.RateLimit.WriteWindow,
		cfg.RateLimit.WriteIPLimit,
		cfg.RateLimit.WriteUserLimit,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		if deps.Redis != nil {
			r.Use(
				middleware.RateLimit(writePolicy, deps.Redis, logg),
				middleware.Idempotency(deps.Redis, logg),
			)
		}

		r.Route("/creators", func(r chi.Router) {
			r.Post("/onboard", controllers.CreatorOnboard(deps.Creators, logg))
			r.Get("/me", controllers.CreatorMe(deps.Creators, logg))
			r.Patch("/me", controllers.CreatorUpdate(deps.Creators, logg))
			r.Get("/me/stats", controllers.CreatorStats(deps.Creators, logg))
			r.Get("/me/social-accounts", controllers.CreatorSocialAccounts(deps.Creators, logg))
			r.Post("/me/social-accounts", controllers.CreatorAddSocialAccount(deps.Creators, logg))
			r.Delete("/me/social-accounts/{accountId}", controllers.CreatorRemoveSocialAccount(deps.Creators, logg))
			r.Post("/me/payouts/setup", controllers.CreatorPayoutSetup(deps.Creators, logg))
			r.Get("/{creatorId}", controllers.CreatorDetail(deps.Creators, logg))
		})

		r.Route("/brands", func(r chi.Router) {
			r.Post("/onboard", controllers.BrandOnboard(deps.Brands, logg))
			r.Get("/me", controllers.BrandMe(deps.Brands, logg))
			r.Patch("/me", controllers.BrandUpdate(deps.Brands, logg))
			r.Get("/me/stats", controllers.BrandStats(deps.Brands, logg))
			r.Get("/{brandId}", controllers.BrandDetail(deps.Brands, logg))
		})

		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", controllers.CampaignCreate(deps.Campaigns, deps.Brands, logg))
			r.Get("/", controllers.CampaignList(deps.Campaigns, logg))
			r.Get("/mine", controllers.CampaignListMine(deps.Campaigns, deps.Brands, logg))
			r.Route("/{campaignId}", func(r chi.Router) {
				r.Get("/", controllers.CampaignDetail(deps.Campaigns, logg))
				r.Patch("/", controllers.CampaignUpdate(deps.Campaigns, deps.Brands, logg))
				r.Post("/deposit-session", controllers.CampaignDepositSession(deps.Campaigns, deps.Brands, logg))
				r.Post("/activate", controllers.CampaignActivate(deps.Campaigns, deps.Brands, logg))
				r.Post("/cancel", controllers.CampaignCancel(deps.Campaigns, deps.Brands, logg))
				r.Post("/applications", controllers.ApplicationApply(deps.Applications, deps.Creators, logg))
				r.Get("/applications", controllers.ApplicationListForCampaign(deps.Applications, deps.Brands, logg))
			})
		})

		r.Route("/applications", func(r chi.Router) {
			r.Get("/mine", controllers.ApplicationListMine(deps.Applications, deps.Creators, logg))
			r.Route("/{applicationId}", func(r chi.Router) {
				r.Get("/", controllers.ApplicationDetail(deps.Applications, logg))
				r.Post("/approve", controllers.ApplicationApprove(deps.Applications, deps.Brands, logg))
				r.Post("/reject", controllers.ApplicationReject(deps.Applications, deps.Brands, logg))
				r.Post("/deliverables", controllers.DeliverableSubmit(deps.Deliverables, deps.Creators, logg))
				r.Get("/deliverables", controllers.DeliverableListForApplication(deps.Deliverables, logg))
			})
		})

		r.Route("/deliverables/{deliverableId}", func(r chi.Router) {
			r.Post("/approve", controllers.DeliverableApprove(deps.Deliverables, deps.Brands, logg))
			r.Post("/reject", controllers.DeliverableReject(deps.Deliverables, deps.Brands, logg))
			r.Post("/request-revision", controllers.DeliverableRequestRevision(deps.Deliverables, deps.Brands, logg))
		})

		r.Route("/contracts", func(r chi.Router) {
			r.Get("/", controllers.ContractList(deps.Contracts, deps.Creators, deps.Brands, logg))
			r.Get("/{contractId}", controllers.ContractDetail(deps.Contracts, logg))
			r.Post("/{contractId}/sign", controllers.ContractSign(deps.Contracts, deps.Creators, logg))
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", controllers.PaymentList(deps.Payments, deps.Creators, logg))
			r.Get("/{paymentId}", controllers.PaymentDetail(deps.Payments, logg))
			r.With(middleware.RequireRole(string(enums.UserRoleAdmin), logg)).
				Post("/{paymentId}/release", controllers.PaymentRelease(deps.Payments, logg))
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Post("/", controllers.ReviewCreate(deps.Reviews, logg))
			r.Get("/{revieweeId}", controllers.ReviewListForReviewee(deps.Reviews, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.NotificationList(deps.Notifications, logg))
			r.Get("/unread-count", controllers.NotificationUnreadCount(deps.Notifications, logg))
			r.Post("/{notificationId}/read", controllers.NotificationMarkRead(deps.Notifications, logg))
			r.Post("/read-all", controllers.NotificationMarkAllRead(deps.Notifications, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(
			middleware.Auth(cfg.JWT, logg),
			middleware.RequireRole(string(enums.UserRoleAdmin), logg),
		)
		r.Get("/stats", controllers.AdminPlatformStats(deps.Admin, logg))
		r.Post("/creators/{creatorId}/verification", controllers.AdminSetCreatorVerification(deps.Admin, logg))
		r.Post("/brands/{brandId}/verification", controllers.AdminSetBrandVerification(deps.Admin, logg))
		r.Post("/income/run", controllers.AdminRunGuaranteedIncome(deps.IncomeScheduler, logg))
	})

	return r
}
