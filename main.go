package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"tableside/config"
	"tableside/internal/api"
	"tableside/internal/bridge"
	"tableside/internal/cart"
	"tableside/internal/qr"
	"tableside/internal/store"
	"tableside/internal/views"
)

func main() {
	cfg := config.Load()

	kv := openStore(cfg)
	sessions := store.NewSessionStore(kv)

	apiClient := api.NewClient(cfg.BackendURL, &http.Client{Timeout: 15 * time.Second}, sessions)
	guestCart := cart.New(sessions, cart.PolicyAppend)

	handler := views.NewHandler(
		apiClient,
		sessions,
		guestCart,
		bridge.New(cfg.SocketURL),
		qr.DefaultGenerator{},
		cfg.PublicBaseURL,
		cfg.QRImageURL,
	)
	handler.NewBridge = func() *bridge.Bridge {
		return bridge.New(cfg.SocketURL)
	}

	r := mux.NewRouter()
	handler.RegisterRoutes(r)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8080", "http://127.0.0.1:8080", "*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	log.Printf("[tableside] starting on %s (backend %s, store %s)", cfg.ListenAddr, cfg.BackendURL, cfg.StoreBackend)
	log.Fatal(http.ListenAndServe(cfg.ListenAddr, c.Handler(r)))
}

func openStore(cfg config.Config) store.KV {
	switch cfg.StoreBackend {
	case "redis":
		return store.NewRedisStore(config.MustInitRedis())
	case "postgres":
		kv, err := store.NewPostgresStore(config.MustInitPostgres())
		if err != nil {
			log.Fatalf("[tableside] postgres store init failed: %v", err)
		}
		return kv
	default:
		kv, err := store.NewFileStore(cfg.StatePath)
		if err != nil {
			log.Fatalf("[tableside] state file %s unusable: %v", cfg.StatePath, err)
		}
		return kv
	}
}
