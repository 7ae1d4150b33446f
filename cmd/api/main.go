package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"funnel/internal/adapter/repo"
	"funnel/internal/checkout"
	"funnel/internal/http/handlers"
	"funnel/internal/http/httpapi"
	"funnel/internal/infra"
	"funnel/internal/infra/geoip"
	"funnel/internal/providers/convertkit"
	"funnel/internal/providers/stripepay"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	processor, err := stripepay.NewClient(cfg.StripeSecretKey, cfg.Currency)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure payment processor")
	}
	emailer := convertkit.NewClient(convertkit.Options{
		APIKey:        cfg.ConvertKitAPIKey,
		APISecret:     cfg.ConvertKitAPISecret,
		FormID:        cfg.ConvertKitFormID,
		PurchaseTagID: cfg.ConvertKitPurchaseTagID,
		Logger:        &logger,
	})

	geoResolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	if geoResolver != nil {
		defer geoResolver.Close()
	}

	purchases := repo.NewPurchaseRepository(dbpool)
	leads := repo.NewEmailLeadRepository(dbpool)
	testimonials := repo.NewTestimonialRepository(dbpool)
	packageItems := repo.NewPackageItemRepository(dbpool)
	analytics := repo.NewAnalyticsRepository(dbpool)

	svc := checkout.NewService(checkout.Options{
		Purchases:          purchases,
		PackageItems:       packageItems,
		Analytics:          analytics,
		Processor:          processor,
		Emailer:            emailer,
		DonationTiersCents: cfg.DonationTiersCents,
		Currency:           cfg.Currency,
		Logger:             logger,
	})

	app := &handlers.App{
		Checkout:     svc,
		Leads:        leads,
		Testimonials: testimonials,
		PackageItems: packageItems,
		Purchases:    purchases,
		Analytics:    analytics,
		Emailer:      emailer,
		Webhook:      handlers.StripeVerifier(cfg.StripeWebhookSecret),
		Currency:     cfg.Currency,
		Logger:       logger,
	}
	if geoResolver != nil {
		app.Geo = geoResolver
	}

	router := httpapi.NewRouter(app, cfg)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
