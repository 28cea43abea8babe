// Foyer API server entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	advisorapp "github.com/foyerapp/foyer/internal/application/advisor"
	aiapp "github.com/foyerapp/foyer/internal/application/ai"
	householdapp "github.com/foyerapp/foyer/internal/application/household"
	mealplanapp "github.com/foyerapp/foyer/internal/application/mealplan"
	pantryapp "github.com/foyerapp/foyer/internal/application/pantry"
	recipeapp "github.com/foyerapp/foyer/internal/application/recipe"
	ticketapp "github.com/foyerapp/foyer/internal/application/ticket"
	"github.com/foyerapp/foyer/internal/infrastructure/ai/openai"
	"github.com/foyerapp/foyer/internal/infrastructure/cache"
	"github.com/foyerapp/foyer/internal/infrastructure/config"
	"github.com/foyerapp/foyer/internal/infrastructure/http/server"
	"github.com/foyerapp/foyer/internal/infrastructure/monitoring"
	gormrepo "github.com/foyerapp/foyer/internal/infrastructure/persistence/gorm"
	"github.com/foyerapp/foyer/internal/infrastructure/persistence/postgres"
	"github.com/foyerapp/foyer/internal/ports/outbound"
	"github.com/foyerapp/foyer/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: cfg.App.Debug,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	log.Info("starting foyer",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	db, err := postgres.NewConnection(cfg, log)
	if err != nil {
		return err
	}

	// Redis is optional: without it AI responses simply are not cached.
	var aiCache outbound.CacheRepository
	if cfg.AI.EnableCache {
		client, err := cache.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			log.Warn("redis unavailable, AI caching disabled", zap.Error(err))
		} else {
			aiCache = cache.NewRedisCache(client, log)
			defer client.Close()
		}
	}

	members := gormrepo.NewMemberRepository(db)
	products := gormrepo.NewProductRepository(db)
	recipes := gormrepo.NewRecipeRepository(db)
	slots := gormrepo.NewSlotRepository(db)
	tickets := gormrepo.NewTicketRepository(db)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(registry)

	aiClient := openai.NewClient(cfg.AI, log)
	aiService := aiapp.NewService(aiClient, aiCache, cfg.AI.CacheTTL, metrics, log)

	recipeService := recipeapp.NewService(recipes, products, members, aiService, metrics, log)
	services := server.Services{
		Pantry:     pantryapp.NewService(products, aiService, log),
		MealPlans:  mealplanapp.NewService(slots, recipeService, log),
		Recipes:    recipeService,
		Tickets:    ticketapp.NewService(tickets, products, aiService, metrics, log),
		Households: householdapp.NewService(members, log),
		Advisor:    advisorapp.NewService(products, tickets, aiService, log),
	}

	srv := server.New(cfg, services, registry, metrics, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info("signal received", zap.String("signal", sig.String()))
		return srv.Shutdown(context.Background())
	}
}
