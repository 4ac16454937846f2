package main

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/georgemunganga/storefront-backend/internal/middleware"
	"github.com/georgemunganga/storefront-backend/internal/modules/auth"
	"github.com/georgemunganga/storefront-backend/internal/modules/catalog"
	"github.com/georgemunganga/storefront-backend/internal/modules/order"
	"github.com/georgemunganga/storefront-backend/internal/modules/payment"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("no .env file found, relying on process environment")
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		logger.Fatal().Err(err).Msg("opening database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("pinging database")
	}
	logger.Info().Msg("connected to the database")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.RequestLogger(logger))

	requireAuth := auth.RequireAuth([]byte(os.Getenv("JWT_SECRET")))

	// ── Catalog ─────────────────────────────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	// ── Orders ──────────────────────────────────────────────
	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo)
	order.NewHandler(orderService, requireAuth).RegisterRoutes(router)

	// ── Payments ────────────────────────────────────────────
	gateway := payment.NewCardGateway(payment.Credentials{
		MerchantID: os.Getenv("GATEWAY_MERCHANT_ID"),
		PublicKey:  os.Getenv("GATEWAY_PUBLIC_KEY"),
		PrivateKey: os.Getenv("GATEWAY_PRIVATE_KEY"),
		BaseURL:    os.Getenv("GATEWAY_BASE_URL"),
		Env:        os.Getenv("GATEWAY_ENV"),
	})
	paymentService := payment.NewService(gateway, orderRepo)
	payment.NewHandler(paymentService, requireAuth).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info().Str("port", port).Msg("storefront API server starting")
	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
