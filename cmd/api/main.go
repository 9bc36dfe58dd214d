package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/creatorvault/creatorvault-backend/api/routes"
	"github.com/creatorvault/creatorvault-backend/internal/admin"
	"github.com/creatorvault/creatorvault-backend/internal/applications"
	"github.com/creatorvault/creatorvault-backend/internal/brands"
	"github.com/creatorvault/creatorvault-backend/internal/campaigns"
	"github.com/creatorvault/creatorvault-backend/internal/contracts"
	"github.com/creatorvault/creatorvault-backend/internal/creators"
	"github.com/creatorvault/creatorvault-backend/internal/deliverables"
	"github.com/creatorvault/creatorvault-backend/internal/escrow"
	"github.com/creatorvault/creatorvault-backend/internal/notifications"
	"github.com/creatorvault/creatorvault-backend/internal/payments"
	"github.com/creatorvault/creatorvault-backend/internal/reviews"
	incomescheduler "github.com/creatorvault/creatorvault-backend/internal/schedulers/income"
	stripewebhook "github.com/creatorvault/creatorvault-backend/internal/webhooks/stripe"
	"github.com/creatorvault/creatorvault-backend/pkg/config"
	"github.com/creatorvault/creatorvault-backend/pkg/db"
	"github.com/creatorvault/creatorvault-backend/pkg/logger"
	"github.com/creatorvault/creatorvault-backend/pkg/metrics"
	"github.com/creatorvault/creatorvault-backend/pkg/migrate"
	"github.com/creatorvault/creatorvault-backend/pkg/redis"
	pkgstripe "github.com/creatorvault/creatorvault-backend/pkg/stripe"
)

const webhookGuardTTL = 72 * time.Hour

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	stripeClient, err := pkgstripe.NewClient(context.Background(), cfg.Stripe, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap stripe", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	creatorsRepo := creators.NewRepository(gormDB)
	brandsRepo := brands.NewRepository(gormDB)
	campaignsRepo := campaigns.NewRepository(gormDB)
	escrowRepo := escrow.NewRepository(gormDB)
	applicationsRepo := applications.NewRepository(gormDB)
	contractsRepo := contracts.NewRepository(gormDB)
	deliverablesRepo := deliverables.NewRepository(gormDB)
	paymentsRepo := payments.NewRepository(gormDB)
	reviewsRepo := reviews.NewRepository(gormDB)
	notificationsRepo := notifications.NewRepository(gormDB)
	adminRepo := admin.NewRepository(gormDB)

	notificationsService, err := notifications.NewService(notificationsRepo, logg)
	if err != nil {
		fatal(logg, "notifications service", err)
	}

	creatorsService, err := creators.NewService(creators.ServiceParams{
		Repo:    creatorsRepo,
		Tx:      dbClient,
		Connect: creators.NewConnectClient(stripeClient, cfg.Stripe),
		Logger:  logg,
	})
	if err != nil {
		fatal(logg, "creators service", err)
	}

	brandsService, err := brands.NewService(brandsRepo, dbClient)
	if err != nil {
		fatal(logg, "brands service", err)
	}

	campaignsService, err := campaigns.NewService(campaigns.ServiceParams{
		Repo:     campaignsRepo,
		Escrow:   escrowRepo,
		Tx:       dbClient,
		Checkout: campaigns.NewCheckoutClient(stripeClient, cfg.Stripe),
		Logger:   logg,
	})
	if err != nil {
		fatal(logg, "campaigns service", err)
	}

	applicationsService, err := applications.NewService(applications.ServiceParams{
		Repo:      applicationsRepo,
		Campaigns: campaignsRepo,
		Contracts: contractsRepo,
		Brands:    brandsRepo,
		Creators:  creatorsRepo,
		Tx:        dbClient,
		Notifier:  notificationsService,
		Logger:    logg,
	})
	if err != nil {
		fatal(logg, "applications service", err)
	}

	contractsService, err := contracts.NewService(contracts.ServiceParams{
		Repo:     contractsRepo,
		Brands:   brandsRepo,
		Notifier: notificationsService,
		Logger:   logg,
	})
	if err != nil {
		fatal(logg, "contracts service", err)
	}

	deliverablesService, err := deliverables.NewService(deliverables.ServiceParams{
		Repo:         deliverablesRepo,
		Applications: applicationsRepo,
		Contracts:    contractsRepo,
		Campaigns:    campaignsService,
		Payments:     paymentsRepo,
		Creators:     creatorsRepo,
		Brands:       brandsRepo,
		Tx:           dbClient,
		Notifier:     notificationsService,
		Logger:       logg,
	})
	if err != nil {
		fatal(logg, "deliverables service", err)
	}

	paymentsService, err := payments.NewService(payments.ServiceParams{
		Repo:      paymentsRepo,
		Creators:  creatorsRepo,
		Transfers: payments.NewTransferClient(stripeClient),
		Logger:    logg,
	})
	if err != nil {
		fatal(logg, "payments service", err)
	}

	reviewsService, err := reviews.NewService(reviews.ServiceParams{
		Repo:      reviewsRepo,
		Contracts: contractsRepo,
		Creators:  creatorsRepo,
		Brands:    brandsRepo,
		Notifier:  notificationsService,
		Logger:    logg,
	})
	if err != nil {
		fatal(logg, "reviews service", err)
	}

	adminService, err := admin.NewService(admin.ServiceParams{
		Repo:     adminRepo,
		Payments: paymentsRepo,
		Logger:   logg,
	})
	if err != nil {
		fatal(logg, "admin service", err)
	}

	incomeScheduler, err := incomescheduler.NewService(incomescheduler.ServiceParams{
		Creators: creatorsRepo,
		Payments: paymentsRepo,
		Notifier: notificationsService,
		Logger:   logg,
		BatchLog: cfg.Cron.IncomeBatchLog,
	})
	if err != nil {
		fatal(logg, "income scheduler", err)
	}

	webhookService, err := stripewebhook.NewService(stripewebhook.ServiceParams{
		Campaigns:         campaignsRepo,
		Escrow:            escrowRepo,
		Contracts:         contractsRepo,
		Payments:          paymentsRepo,
		TransactionRunner: dbClient,
		Logger:            logg,
	})
	if err != nil {
		fatal(logg, "stripe webhook service", err)
	}
	webhookGuard, err := stripewebhook.NewIdempotencyGuard(redisClient, webhookGuardTTL, "stripe-webhook")
	if err != nil {
		fatal(logg, "stripe webhook guard", err)
	}

	handler := routes.NewRouter(routes.Deps{
		Config: cfg,
		Logger: logg,
		DB:     dbClient,
		Redis:  redisClient,

		Creators:      creatorsService,
		Brands:        brandsService,
		Campaigns:     campaignsService,
		Applications:  applicationsService,
		Contracts:     contractsService,
		Deliverables:  deliverablesService,
		Payments:      paymentsService,
		Reviews:       reviewsService,
		Notifications: notificationsService,
		Admin:         adminService,

		IncomeScheduler: incomeScheduler,

		StripeClient:       stripeClient,
		StripeWebhook:      webhookService,
		StripeWebhookGuard: webhookGuard,
		WebhookMetrics:     metrics.NewWebhookMetrics(prometheus.DefaultRegisterer),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-shutdownCtx.Done()
		drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(drainCtx); err != nil {
			logg.Error(ctx, "error draining api server", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "api server shut down gracefully")
}

func fatal(logg *logger.Logger, what string, err error) {
	logg.Error(context.Background(), "failed to create "+what, err)
	os.Exit(1)
}
