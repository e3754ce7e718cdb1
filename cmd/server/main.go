package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventbooking/config"
	"eventbooking/internal/cache"
	"eventbooking/internal/database"
	"eventbooking/internal/handler"
	"eventbooking/internal/middleware"
	"eventbooking/internal/model"
	"eventbooking/internal/queue"
	"eventbooking/internal/repository"
	"eventbooking/internal/service"
	"eventbooking/internal/worker"
	"eventbooking/migrations"
	"eventbooking/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrations.Apply(ctx, pool); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	if cfg.Server.Seed {
		if err := database.Seed(ctx, pool); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Repositories
	venueRepo := repository.NewVenueRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	memberRepo := repository.NewMemberRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	inquiryRepo := repository.NewInquiryRepository(pool)

	txManager := database.NewPoolTxManager(pool)
	capacityCache := cache.NewRedisCapacityCache(rdb)

	hostname, _ := os.Hostname()
	confirmQueue, err := queue.NewRedisStreamConfirmationQueue(rdb, hostname, nil)
	if err != nil {
		log.Fatalf("Failed to initialize confirmation queue: %v", err)
	}

	// Services
	venueService := service.NewVenueService(venueRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	memberService := service.NewMemberService(memberRepo)
	eventService := service.NewEventService(txManager, eventRepo, venueRepo, categoryRepo, bookingRepo, reviewRepo, capacityCache)
	bookingService := service.NewBookingService(txManager, bookingRepo, eventRepo, capacityCache, confirmQueue)
	verificationService := service.NewVerificationService(bookingRepo)
	reviewService := service.NewReviewService(reviewRepo, bookingRepo, eventRepo)
	inquiryService := service.NewInquiryService(inquiryRepo)

	confirmationWorker := worker.NewConfirmationWorker(bookingRepo, confirmQueue)
	if err := confirmationWorker.Start(ctx); err != nil {
		log.Fatalf("Failed to start confirmation worker: %v", err)
	}

	// Middleware
	authenticate := middleware.Authenticate(cfg)
	optionalIdentity := middleware.OptionalIdentity(cfg, memberService)
	resolveMember := middleware.ResolveMember(memberService)
	requireAdmin := middleware.RequireRoles(model.RoleAdmin)
	requireStaff := middleware.RequireRoles(model.RoleAdmin, model.RoleOrganizer)
	inquiryRateLimit := middleware.RateLimiter(10, time.Minute)

	router := gin.Default()
	router.Use(cors.Default())

	handler.NewHealthHandler(pool, rdb).RegisterRoutes(router)
	handler.NewEventHandler(eventService, reviewService).RegisterRoutes(router, authenticate, requireStaff, requireAdmin)
	handler.NewVenueHandler(venueService).RegisterRoutes(router, authenticate, requireAdmin)
	handler.NewCategoryHandler(categoryService).RegisterRoutes(router, authenticate, requireAdmin)
	handler.NewMemberHandler(memberService).RegisterRoutes(router, authenticate, resolveMember, requireAdmin)
	handler.NewBookingHandler(bookingService, verificationService).RegisterRoutes(router, authenticate, resolveMember, requireStaff)
	handler.NewReviewHandler(reviewService).RegisterRoutes(router, authenticate, resolveMember, requireAdmin)
	handler.NewInquiryHandler(inquiryService).RegisterRoutes(router, inquiryRateLimit, optionalIdentity, authenticate, requireAdmin)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	logger.WithComponent("server").Info("server started", zap.String("addr", cfg.Server.Addr))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithComponent("server").Error("shutdown error", zap.Error(err))
	}
}
