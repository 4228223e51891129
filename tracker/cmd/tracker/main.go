package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/Krimson/exstats/pkg/exstats"
	"github.com/Krimson/exstats/pkg/format"
	"github.com/Krimson/exstats/tracker/internal/config"
	"github.com/Krimson/exstats/tracker/internal/device"
	"github.com/Krimson/exstats/tracker/internal/health"
	"github.com/Krimson/exstats/tracker/internal/session"
	"github.com/Krimson/exstats/tracker/internal/settings"
	"github.com/Krimson/exstats/tracker/internal/websocket"

	_ "github.com/Krimson/exstats/tracker/docs" // Swagger docs
)

// @title Exercise Stats Tracker API
// @version 1.0
// @description Сессии тренировки: статистики, датчики устройства, настройки уведомлений.
// @host localhost:8080
// @BasePath /
// @schemes http

func main() {
	log.Printf("[INFO] Starting tracker server...")

	cfg := config.Load()
	log.Printf("[INFO] Configuration loaded: http_port=%s grpc_port=%s settings=%s locale=%s",
		cfg.HTTPPort, cfg.GRPCPort, cfg.SettingsBackend, cfg.Locale)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := openSettingsStore(ctx, cfg)
	if err != nil {
		log.Fatalf("[FATAL] Failed to open settings store: %v", err)
	}
	defer closeStore()

	bus := device.NewBus(cfg.EventQueueSize, device.WithPowerObserver(func(sensor exstats.Sensor, on bool) {
		log.Printf("[INFO] Sensor %s powered=%v", sensor, on)
	}))
	go bus.Run(ctx)

	hub := websocket.NewHub(cfg.AllowAnyOrigin)
	go hub.Run()

	manager := session.NewManager(bus, store, hub, session.Config{
		Profile:     cfg.SettingsProfile,
		Locale:      format.LocaleByName(cfg.Locale),
		CallTimeout: cfg.CallTimeout,
	})

	router := mux.NewRouter()
	session.NewHTTPHandler(manager).RegisterRoutes(router)
	router.HandleFunc("/ws", hub.HandleWebSocket)
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      enableCORS(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	grpcServer := grpc.NewServer()

	healthServer := health.NewHealthServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)

	reflection.Register(grpcServer)

	address := fmt.Sprintf(":%s", cfg.GRPCPort)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		log.Fatalf("[FATAL] Failed to listen on %s: %v", address, err)
	}

	log.Printf("[INFO] gRPC server listening on %s", address)

	healthServer.SetServingStatus("")
	healthServer.SetServingStatus(health.ServiceName)

	serverErrChan := make(chan error, 2)
	go func() {
		if err := grpcServer.Serve(listener); err != nil {
			serverErrChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()
	go func() {
		log.Printf("[INFO] HTTP server listening on :%s", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrChan:
		log.Printf("[ERROR] Server error: %v", err)

	case sig := <-shutdownChan:
		log.Printf("[INFO] Received signal %v, starting graceful shutdown...", sig)
	}

	healthServer.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] HTTP server forced to shutdown: %v", err)
	}

	manager.CloseAll(shutdownCtx)
	hub.Stop()
	bus.Stop()

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		log.Printf("[INFO] Graceful shutdown completed")
	case <-shutdownCtx.Done():
		log.Printf("[WARN] Graceful shutdown timeout, forcing stop")
		grpcServer.Stop()
	}

	log.Printf("[INFO] Server stopped")
}

// openSettingsStore создает хранилище настроек по SETTINGS_BACKEND
func openSettingsStore(ctx context.Context, cfg *config.Config) (settings.Store, func(), error) {
	switch cfg.SettingsBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		log.Printf("[INFO] Settings stored in Redis at %s", cfg.RedisAddr)
		return settings.NewRedisStore(client), func() { client.Close() }, nil

	case "postgres":
		store, err := settings.NewPostgresStoreFromDSN(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, nil, err
		}
		log.Printf("[INFO] Settings stored in PostgreSQL")
		return store, func() { store.Close() }, nil

	case "memory", "":
		log.Printf("[INFO] Settings stored in memory")
		return settings.NewMemoryStore(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown settings backend %q", cfg.SettingsBackend)
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			return
		}

		next.ServeHTTP(w, r)
	})
}
