package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"booklibrary/internal/auth"
	"booklibrary/internal/config"
	apphttp "booklibrary/internal/http"
	"booklibrary/internal/store"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg := config.New(getEnv("APP_ENV", config.EnvDevelopment))
	if cfg.Env == config.EnvProduction && os.Getenv("JWT_SECRET") == "" {
		log.Fatal("missing required environment variable: JWT_SECRET")
	}

	bookStore := store.NewBookStore(cfg)
	authorStore := store.NewAuthorStore(cfg)
	userStore := store.NewUserStore(cfg)
	authService := auth.NewService(cfg, userStore)

	router := apphttp.NewRouter(cfg, bookStore, authorStore, userStore, authService)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s env=%s books=%d authors=%d users=%d",
			cfg.Addr, cfg.Env, bookStore.Count(), authorStore.Count(), userStore.Count())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	log.Println("server stopped")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
