package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"antworld/config"
	"antworld/handlers"
	"antworld/persistence"
	"antworld/services"
)

func main() {
	configPath := flag.String("config", "antworld.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, err := openLayoutSource(cfg.Layout)
	if err != nil {
		log.Fatalf("Failed to initialize layout source: %v", err)
	}
	layout, err := source.LoadLayout(cfg.Layout.Name)
	source.Close()
	if err != nil {
		log.Fatalf("Failed to load layout %s: %v", cfg.Layout.Name, err)
	}
	log.Printf("Loaded %dx%d layout %s from %s source", layout.Width, layout.Height, layout.Name, cfg.Layout.Source)

	var opts []services.Option
	if cfg.Gemini.APIKey != "" {
		narrator, err := services.NewGeminiNarrator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Fatalf("Failed to initialize narrator: %v", err)
		}
		opts = append(opts, services.WithNarrator(narrator))
		log.Println("Using Gemini narrator")
	}

	sim, err := services.NewSimulationFromLayout(layout, opts...)
	if err != nil {
		log.Fatalf("Failed to build world: %v", err)
	}

	clientManager := handlers.NewClientManager()
	events, unsubscribe := sim.Subscribe()
	defer unsubscribe()
	go clientManager.Run(ctx, events)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handlers.NewRouter(ctx, sim, clientManager),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown failed: %v", err)
		}
	}()

	log.Printf("Server starting on port %s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}

func openLayoutSource(cfg config.LayoutConfig) (persistence.LayoutSource, error) {
	switch cfg.Source {
	case config.SourcePostgres:
		return persistence.NewPostgresStore(cfg.DatabaseURL)
	case config.SourceJSON:
		return persistence.NewJSONStore(cfg.File)
	case config.SourceYAML:
		return persistence.NewYAMLStore(cfg.File)
	default:
		return persistence.NewRandomSource(cfg.Width, cfg.Height, cfg.Seed), nil
	}
}
