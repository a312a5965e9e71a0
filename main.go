package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/shop-backend/apperrors"
	"github.com/yashrajoria/shop-backend/controllers"
	"github.com/yashrajoria/shop-backend/database"
	"github.com/yashrajoria/shop-backend/logger"
	"github.com/yashrajoria/shop-backend/middleware"
	"github.com/yashrajoria/shop-backend/models"
	aws_pkg "github.com/yashrajoria/shop-backend/pkg/aws"
	"github.com/yashrajoria/shop-backend/repository"
	"github.com/yashrajoria/shop-backend/routes"
	"github.com/yashrajoria/shop-backend/services"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bootLog, _ := zap.NewProduction()

	cfg, err := LoadConfig(ctx)
	if err != nil {
		bootLog.Fatal("Failed to load config", zap.Error(err))
	}

	awsCfg, err := aws_pkg.LoadAWSConfig(ctx)
	if err != nil {
		bootLog.Fatal("Failed to load AWS config", zap.Error(err))
	}

	var sink io.Writer
	if cfg.CloudWatchLogs {
		cwLogs, err := aws_pkg.NewCloudWatchLogsClient(ctx, awsCfg, cfg.LogGroup, cfg.ServiceName)
		if err != nil {
			bootLog.Warn("CloudWatch logs client init failed (non-fatal)", zap.Error(err))
		} else {
			sink = cwLogs
		}
	}
	log, err := logger.New(cfg.Env, sink)
	if err != nil {
		bootLog.Fatal("Failed to build logger", zap.Error(err))
	}
	defer log.Sync()

	log.Info("Starting shop API", zap.String("env", cfg.Env))

	db, err := database.ConnectPostgres(cfg.Postgres, models.Migrate, log)
	if err != nil {
		log.Fatal("Database connection failed", zap.Error(err))
	}
	defer database.ClosePostgres(db)

	rdb, err := database.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal("Redis connection failed", zap.Error(err))
	}
	defer rdb.Close()

	mongoClient, mongoDB, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("MongoDB connection failed", zap.Error(err))
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	metrics := aws_pkg.NewMetricsClient(awsCfg, cfg.MetricsNamespace, cfg.MetricsEnabled)
	snsClient := aws_pkg.NewSNSClient(awsCfg)

	catalog := repository.NewCachedCatalog(
		repository.NewHTTPCatalogClient(cfg.CatalogURL, cfg.CatalogTimeout),
		rdb, cfg.CatalogCacheTTL, metrics, log,
	)
	if err := catalog.Invalidate(ctx); err != nil {
		log.Warn("Failed to clear catalog cache", zap.Error(err))
	}

	favourites := repository.NewDynamoFavouriteRepository(aws_pkg.NewDynamoDBClient(awsCfg), cfg.FavouritesTable)
	carts := repository.NewRedisCartRepository(rdb, cfg.CartTTL)
	orders := repository.NewGormOrderRepository(db)
	coupons := repository.NewGormCouponRepository(db)
	accounts := repository.NewGormAccountRepository(db)
	users := repository.NewMongoUserRepository(mongoDB)

	tokens, err := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal("Invalid token configuration", zap.Error(err))
	}

	authService := services.NewAuthService(accounts, accounts, users, tokens, metrics, log)
	ctrl := routes.Controllers{
		Auth:       controllers.NewAuthController(authService, cfg.SecureCookie),
		Validation: controllers.NewValidationController(),
		Products: controllers.NewProductController(
			services.NewProductService(catalog, favourites, log),
			services.NewFavouriteService(catalog, favourites, log),
		),
		Cart: controllers.NewCartController(services.NewCartService(carts, catalog, metrics, log)),
		Orders: controllers.NewOrderController(
			services.NewOrderService(orders, carts, coupons, users, catalog, snsClient, cfg.EventsTopicARN, metrics, log),
		),
		Coupons: controllers.NewCouponController(
			services.NewCouponService(coupons, users, snsClient, cfg.EventsTopicARN, metrics, log),
		),
		Profile: controllers.NewProfileController(services.NewProfileService(users, log)),
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.MetricsMiddleware(metrics, cfg.ServiceName))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Timeout(cfg.RequestTimeout, routes.LiveCartPath))
	r.Use(apperrors.ErrorMiddleware())

	authLimiter := middleware.NewRateLimiter(ctx, rate.Every(time.Minute/time.Duration(cfg.AuthRatePerMin)), cfg.AuthRateBurst, 10*time.Minute)
	routes.RegisterRoutes(r, ctrl, authService, authLimiter)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info("Shop API started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited cleanly")
}
