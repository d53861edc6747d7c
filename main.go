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

	"github.com/ctrl-sk/qr-gen-pro/cache"
	"github.com/ctrl-sk/qr-gen-pro/config"
	"github.com/ctrl-sk/qr-gen-pro/handlers"
	middleware "github.com/ctrl-sk/qr-gen-pro/middlewares"

	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/getsentry/sentry-go"
	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func main() {
	config.Load()

	if config.App.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              config.App.SentryDSN,
			TracesSampleRate: 1.0,
		}); err != nil {
			fmt.Printf("Sentry initialization failed: %v\n", err)
		}
	}
	sentryHandler := sentryhttp.New(sentryhttp.Options{})
	defer sentry.Flush(2 * time.Second)

	if err := config.InitDB(); err != nil {
		log.Fatalf("Failed to initialize the database: %v", err)
	}

	// Redis when configured, in-process BigCache otherwise.
	if config.App.RedisAddr != "" {
		redisStore, err := cache.NewRedisStore(config.App.RedisAddr, "", 0)
		if err != nil {
			log.Fatalf("Failed to initialize Redis cache: %v", err)
		}
		defer redisStore.Close()
		handlers.RecordCache = redisStore
	} else {
		bigCacheStore, err := cache.NewBigCacheStore()
		if err != nil {
			log.Fatalf("Failed to initialize cache: %v", err)
		}
		handlers.RecordCache = bigCacheStore
	}

	// Initialize the router
	r := mux.NewRouter()

	r.Use(middleware.LoggingMiddleware)
	r.Use(sentryHandler.Handle)
	r.Use(middleware.SentryAlertMiddleware)
	r.Use(middleware.ResponseTimeMiddleware)

	r.HandleFunc("/api/qr-codes", handlers.ListQRCodesHandler).Methods("GET")
	r.HandleFunc("/api/qr-codes", handlers.CreateQRCodeHandler).Methods("POST")
	r.HandleFunc("/api/qr-codes/{id}", handlers.UpdateQRCodeHandler).Methods("PATCH")
	r.HandleFunc("/api/qr-codes/{id}", handlers.DeleteQRCodeHandler).Methods("DELETE")
	r.HandleFunc("/api/qr-codes/{id}/scans", handlers.ListScansHandler).Methods("GET")
	r.HandleFunc("/api/qr-codes/{id}/image", handlers.QRImageHandler).Methods("GET")
	r.HandleFunc("/api/shorten", handlers.ShortenHandler).Methods("POST")
	r.HandleFunc("/api/r/{shortId}", handlers.RedirectHandler).Methods("GET")
	r.HandleFunc("/r/{shortId}", handlers.RedirectHandler).Methods("GET")
	r.HandleFunc("/health", handlers.HealthHandler).Methods("GET")

	// Dashboard and other static assets
	r.PathPrefix("/").Handler(http.FileServer(http.Dir("./static/")))

	// CORS
	allowed := gorillahandlers.AllowedOrigins([]string{"*"})
	allowedHeaders := gorillahandlers.AllowedHeaders([]string{"Content-Type"})
	allowedMethods := gorillahandlers.AllowedMethods([]string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"})

	srv := &http.Server{
		Addr:         ":" + config.App.Port,
		Handler:      gorillahandlers.CORS(allowed, allowedHeaders, allowedMethods)(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// graceful shutdown
	go func() {
		log.Printf("server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown: %v", err)
	}
	log.Println("server gracefully stopped")
}
