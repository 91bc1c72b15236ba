package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/config"
	"storefront-service/internal/api"
	"storefront-service/internal/broker"
	"storefront-service/internal/models"
	"storefront-service/internal/notify"
	"storefront-service/internal/service"
	"storefront-service/internal/storage"
	"storefront-service/internal/util"
	"storefront-service/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting storefront service")

	tp, err := util.InitTracer("storefront-service", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	store, err := newStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open snapshot store: %v", err)
	}
	defer store.Close()
	log.Printf("Snapshot store ready: backend=%s", cfg.Storage.Backend)

	// Load persisted state. Read failures degrade to empty defaults; they
	// never block startup.
	loadCtx, loadCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer loadCancel()

	products, err := store.LoadProducts(loadCtx)
	if err != nil {
		logger.Warn("Failed to load products, starting empty")
		products = nil
	}
	cartItems, err := store.LoadCart(loadCtx)
	if err != nil {
		logger.Warn("Failed to load cart, starting empty")
		cartItems = nil
	}
	orders, err := store.LoadOrders(loadCtx)
	if err != nil {
		logger.Warn("Failed to load orders, starting empty")
		orders = nil
	}
	currentUser, err := store.LoadUser(loadCtx)
	if err != nil {
		logger.Warn("Failed to load user, starting signed out")
		currentUser = nil
	}

	var producer *broker.Producer
	if cfg.Kafka.Enabled {
		producer = broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicEvents)
		defer producer.Close()
		log.Println("Kafka producer initialized")
	}
	eventPublisher := broker.NewEventPublisher(producer)

	writer := worker.NewSnapshotWriter(store, cfg.Storage.Debounce)

	var gen service.DescriptionGenerator
	if cfg.Business.DescriptionEndpoint != "" {
		gen = service.NewHTTPDescriptionGenerator(cfg.Business.DescriptionEndpoint)
	}

	whatsapp := &notify.WhatsApp{
		Phone:     cfg.Business.WhatsAppPhone,
		StoreName: cfg.Business.StoreName,
	}

	cartEngine := service.NewCartEngine(cartItems, cfg.Business.DeliveryFee, writer)
	checkoutEngine := service.NewCheckoutEngine(
		cartEngine,
		orders,
		service.DelaySettler{Delay: cfg.Business.SettlementDelay},
		eventPublisher,
		whatsapp,
		writer,
	)
	catalog := service.NewCatalog(
		products,
		gen,
		eventPublisher,
		writer,
		cfg.Business.ShareBaseURL,
		cfg.Business.StoreName,
	)
	authService := service.NewAuthService(
		service.StaticAuthenticator{
			Email:    cfg.Admin.Email,
			Password: cfg.Admin.Password,
			Name:     cfg.Admin.Name,
		},
		currentUser,
		writer,
	)

	writer.SetSources(worker.Sources{
		Products: func() []models.Product { return catalog.Products("") },
		Cart:     cartEngine.Items,
		Orders:   checkoutEngine.Orders,
		User:     authService.Current,
	})

	writerCtx, writerCancel := context.WithCancel(context.Background())
	defer writerCancel()
	go func() {
		if err := writer.Start(writerCtx); err != nil {
			log.Printf("Snapshot writer error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handler := api.NewHandler(catalog, cartEngine, checkoutEngine, authService)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	writerCancel()
	if err := writer.Flush(shutdownCtx); err != nil {
		log.Printf("Final snapshot flush failed: %v", err)
	}

	log.Println("Server exited")
}

func newStore(cfg *config.Config) (storage.Store, error) {
	logger := util.GetLogger()

	switch cfg.Storage.Backend {
	case "redis":
		return storage.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Storage.KeyPrefix, logger)
	case "postgres":
		return storage.NewPostgresStore(cfg.Database.URL, logger)
	default:
		return storage.NewFileStore(cfg.Storage.Dir, logger)
	}
}
