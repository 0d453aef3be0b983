package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"

	"github.com/Virgile-Eratel/YDaysM1-api/internal/config"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/database"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/middleware"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/modules/auth"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/modules/checkout"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/modules/notify"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/modules/place"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/modules/reservation"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/modules/review"
	jwtsvc "github.com/Virgile-Eratel/YDaysM1-api/internal/pkg/jwt"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/pkg/logger"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg.IsProduction())
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}

	stripe.Key = cfg.StripeSecretKey

	userRepo := repository.NewUserRepository(db)
	placeRepo := repository.NewPlaceRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, 24*time.Hour)
	hub := notify.NewHub()
	defer hub.Close()

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	placeService := place.NewService(placeRepo, reservationRepo, cfg.ImageDir, zlog)
	placeHandler := place.NewHandler(placeService)

	reviewService := review.NewService(reviewRepo, placeRepo)
	reviewHandler := review.NewHandler(reviewService)

	reservationService := reservation.NewService(reservationRepo, placeRepo, hub, zlog)
	reservationHandler := reservation.NewHandler(reservationService)

	checkoutService := checkout.NewService(
		reservationRepo,
		reservationService,
		checkout.StripeSessionCreator{},
		cfg.StripeWebhookSecret,
		cfg.FrontendURL,
		zlog,
	)
	checkoutHandler := checkout.NewHandler(checkoutService, zlog)

	notifyHandler := notify.NewHandler(hub, j, zlog)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(zlog))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Static("/images/place", cfg.ImageDir)

	public := r.Group("/")
	{
		authHandler.RegisterRoutes(public)
		placeHandler.RegisterPublicRoutes(public)
		reviewHandler.RegisterPublicRoutes(public)
		// authenticated via its query-param token, not the Bearer header
		notifyHandler.RegisterRoutes(public)
		// authenticated via the Stripe-Signature header
		checkoutHandler.RegisterWebhookRoutes(public)
	}

	protected := r.Group("/")
	protected.Use(middleware.Auth(j))
	{
		placeHandler.RegisterProtectedRoutes(protected)
		reviewHandler.RegisterProtectedRoutes(protected)
		reservationHandler.RegisterRoutes(protected)
		checkoutHandler.RegisterProtectedRoutes(protected)
	}

	zlog.Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
