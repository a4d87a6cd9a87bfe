package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/nossagrana/nossagrana/internal/auth"
	"github.com/nossagrana/nossagrana/internal/handler"
	"github.com/nossagrana/nossagrana/internal/service"
	"github.com/nossagrana/nossagrana/internal/storage"
	"github.com/nossagrana/nossagrana/internal/storage/memory"
	"github.com/nossagrana/nossagrana/internal/storage/sqlite"
	"github.com/nossagrana/nossagrana/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	useMemory := flag.Bool("mem", false, "use the in-memory store (development only)")
	flag.Parse()

	logging.Setup()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		slog.Error("invalid PORT", "error", err)
		os.Exit(1)
	}
	dbPath := getEnv("DB_PATH", "./data/nossagrana.db")
	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}
	tokenTTL, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		slog.Error("invalid TOKEN_TTL", "error", err)
		os.Exit(1)
	}

	var store storage.Store
	if *useMemory {
		store = memory.New()
		slog.Info("using in-memory storage")
	} else {
		store, err = sqlite.New(dbPath)
		if err != nil {
			slog.Error("failed to initialize storage", "error", err)
			os.Exit(1)
		}
		slog.Info("storage initialized", "database", dbPath)
	}
	defer store.Close()

	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(jwtSecret, tokenTTL)

	api := handler.New(
		authenticator,
		jwtManager,
		service.NewCoupleService(store, store),
		service.NewInvitationService(store, store, store),
		service.NewTransactionService(store, store, store),
	)

	// Wrap with h2c so clients can speak HTTP/2 without TLS.
	h2cHandler := h2c.NewHandler(api.Router(), &http2.Server{})

	addr := fmt.Sprintf(":%d", port)
	slog.Info("server starting", "address", addr)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
