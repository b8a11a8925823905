package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/afrimarket/internal/api"
	"github.com/example/afrimarket/internal/assistant"
	"github.com/example/afrimarket/internal/config"
	"github.com/example/afrimarket/internal/infrastructure/kafka"
	"github.com/example/afrimarket/internal/infrastructure/store"
	"github.com/example/afrimarket/internal/payment"
	"github.com/example/afrimarket/internal/storefront"
	"github.com/example/afrimarket/internal/telemetry"
	"github.com/example/afrimarket/internal/toast"
)

func main() {
	cfg := config.Load()

	log.Println("[API] ========================================")
	log.Println("[API] AfriMarket - Storefront API")
	log.Println("[API] ========================================")

	shutdownTracing, err := telemetry.Setup("afrimarket-api", cfg.OTelStdout)
	if err != nil {
		log.Fatalf("[API] Failed to set up tracing: %v", err)
	}

	// Kafka publisher for the event journal (optional)
	var publisher store.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
		publisher = producer
		log.Printf("[API] Kafka: %v (topic %s)", cfg.KafkaBrokers, cfg.KafkaTopic)
	} else {
		log.Println("[API] Kafka: disabled")
	}

	// Event journal: PostgreSQL when configured, memory otherwise
	var journal store.EventStoreInterface
	if cfg.DatabaseURL != "" {
		db := mustConnectPostgres(cfg.DatabaseURL)
		defer db.Close()
		journal = store.NewPostgresEventStore(db, publisher)
		log.Println("[API] Journal: PostgreSQL (events table)")
	} else {
		journal = store.NewEventStore(publisher)
		log.Println("[API] Journal: in-memory")
	}

	// Webhook de-duplication: Redis when configured, memory otherwise
	var dedupe payment.Deduplicator
	if cfg.RedisAddr != "" {
		client, err := payment.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("[API] Failed to connect to Redis: %v", err)
		}
		defer client.Close()
		dedupe = payment.NewRedisDeduplicator(client, payment.DedupeTTL)
		log.Printf("[API] Webhook de-duplication: Redis at %s", cfg.RedisAddr)
	} else {
		dedupe = payment.NewMemoryDeduplicator(payment.DedupeTTL)
		log.Println("[API] Webhook de-duplication: in-memory")
	}
	if cfg.FedaPayWebhookSecret == "" {
		log.Println("[API] FEDAPAY_WEBHOOK_SECRET not set: webhook signatures are only checked for presence")
	}

	toasts := toast.NewCenter(cfg.ToastTTL)
	log.Printf("[API] Notifications expire after %s", toasts.TTL())

	manager, err := storefront.New(
		storefront.WithJournal(journal),
		storefront.WithToasts(toasts),
		storefront.WithPaymentKey(cfg.FedaPayPublicKey),
	)
	if err != nil {
		log.Fatalf("[API] Failed to initialise storefront: %v", err)
	}

	if cfg.GeminiAPIKey == "" {
		log.Println("[API] GEMINI_API_KEY not set: assistant will answer with a configuration notice")
	}
	gemini := assistant.NewClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel)

	handlers := api.NewHandlers(manager, assistant.NewService(gemini))
	webhook := payment.NewWebhookHandler(cfg.FedaPayWebhookSecret, dedupe, manager)
	router := api.NewRouter(handlers, webhook)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Println("[API] ========================================")
		log.Printf("[API] Server started on :%s", cfg.Port)
		log.Println("[API] ========================================")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("[API] Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[API] Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[API] Server shutdown: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("[API] Tracing shutdown: %v", err)
	}
}

func mustConnectPostgres(connStr string) *sql.DB {
	db, err := store.ConnectPostgres(connStr)
	if err != nil {
		log.Fatalf("[API] Failed to connect to PostgreSQL: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("[API] Failed to prepare events table: %v", err)
	}
	log.Println("[API] Connected to PostgreSQL")
	return db
}
