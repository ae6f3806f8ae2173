package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"storeadmin/internal/caching"
	"storeadmin/internal/config"
	"storeadmin/internal/gateway"
	"storeadmin/internal/handlers"
	"storeadmin/internal/imaging"
	"storeadmin/internal/jobs/background"
	"storeadmin/internal/middleware"
	"storeadmin/internal/notify"
	"storeadmin/internal/services"
	"storeadmin/internal/session"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Cache: redis when configured, in-process otherwise.
	var cacheSvc caching.CacheService
	if cfg.RedisAddr != "" {
		cacheSvc = caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	} else {
		log.Printf("WARN: REDIS_ADDR not set, using in-memory cache")
		cacheSvc = caching.NewMemoryCacheService()
	}

	// Preview store: object storage when configured, data URLs otherwise.
	var previews imaging.PreviewStore
	if cfg.MinioEndpoint != "" {
		previews, err = imaging.NewMinioPreviewStore(
			cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey,
			cfg.MinioUseSSL, cfg.PreviewBucket, cfg.PreviewTTL,
		)
		if err != nil {
			log.Fatalf("Failed to initialize preview store: %v", err)
		}
	} else {
		log.Printf("WARN: MINIO_ENDPOINT not set, using in-memory preview store")
		previews = imaging.NewMemoryPreviewStore(cfg.PreviewTTL)
	}

	noticeBuffer := notify.NewBuffer()
	notifier := notify.Fanout(notify.NewLogNotifier(), noticeBuffer)
	sessions := session.NewStore(cacheSvc, cfg.SessionSecret)

	gw := gateway.New(cfg.UpstreamURL, sessions, notifier, func(ctx context.Context) {
		log.Printf("Session invalidated by backend, console must re-authenticate")
	})

	pipeline := imaging.NewPipeline(gw, previews, notifier)

	authSvc := services.NewAuthService(gw, sessions, notifier)
	productSvc := services.NewProductService(gw, cacheSvc, notifier)
	categorySvc := services.NewCategoryService(gw, cacheSvc, notifier)
	inquirySvc := services.NewInquiryService(gw, cacheSvc, notifier)

	authHandlers := handlers.NewAuthHandlers(authSvc)
	productHandlers := handlers.NewProductHandlers(productSvc)
	categoryHandlers := handlers.NewCategoryHandlers(categorySvc)
	inquiryHandlers := handlers.NewInquiryHandlers(inquirySvc)
	uploadHandlers := handlers.NewUploadHandlers(pipeline)
	noticeHandlers := handlers.NewNoticeHandlers(noticeBuffer)

	scheduler, err := background.NewJobScheduler(previews, 5*time.Minute)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("WARN: scheduler shutdown failed: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	e.GET("/health", handlers.HealthCheck)

	v1 := e.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/login", authHandlers.Login)

	protected := v1.Group("")
	protected.Use(middleware.SessionMiddleware(sessions))

	protected.POST("/auth/logout", authHandlers.Logout)

	protected.GET("/products", productHandlers.ListProducts)
	protected.POST("/products", productHandlers.CreateProduct)
	protected.GET("/products/:id", productHandlers.GetProduct)
	protected.PUT("/products/:id", productHandlers.UpdateProduct)
	protected.DELETE("/products/:id", productHandlers.DeleteProduct)
	protected.POST("/products/:id/images", productHandlers.AddProductImage)
	protected.DELETE("/products/images/:id", productHandlers.RemoveProductImage)

	protected.GET("/product-categories", categoryHandlers.ListCategories)
	protected.POST("/product-categories", categoryHandlers.CreateCategory)
	protected.GET("/product-categories/:id", categoryHandlers.GetCategory)
	protected.PUT("/product-categories/:id", categoryHandlers.UpdateCategory)
	protected.DELETE("/product-categories/:id", categoryHandlers.DeleteCategory)

	protected.GET("/inquiry", inquiryHandlers.ListInquiries)
	protected.GET("/inquiry/:id", inquiryHandlers.GetInquiry)
	protected.PUT("/inquiry/:id/status", inquiryHandlers.UpdateInquiryStatus)
	protected.DELETE("/inquiry/:id", inquiryHandlers.DeleteInquiry)

	protected.POST("/files/upload", uploadHandlers.Upload)
	protected.GET("/notices", noticeHandlers.ListNotices)

	go func() {
		log.Printf("Store admin console v%s starting on port %d", version, cfg.Port)
		if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("WARN: server shutdown failed: %v", err)
	}
	if err := previews.ReleaseAll(context.Background()); err != nil {
		log.Printf("WARN: failed to release preview handles: %v", err)
	}
}
