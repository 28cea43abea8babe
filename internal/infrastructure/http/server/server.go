// Package server assembles the chi router and runs the HTTP server.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/foyerapp/foyer/internal/infrastructure/config"
	"github.com/foyerapp/foyer/internal/infrastructure/http/handlers"
	"github.com/foyerapp/foyer/internal/infrastructure/http/middleware"
	"github.com/foyerapp/foyer/internal/infrastructure/monitoring"
	"github.com/foyerapp/foyer/internal/ports/inbound"
)

// Services bundles the application services the router drives
type Services struct {
	Pantry     inbound.PantryService
	MealPlans  inbound.MealPlanService
	Recipes    inbound.RecipeService
	Tickets    inbound.TicketService
	Households inbound.HouseholdService
	Advisor    inbound.AdvisorService
}

// Server is the HTTP server with its composed router
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	http   *http.Server
}

// New composes the router and returns a ready-to-run server
func New(cfg *config.Config, services Services, registry *prometheus.Registry, metrics *monitoring.Metrics, logger *zap.Logger) *Server {
	validate := validator.New()
	handlers.SetDefaultLocale(cfg.App.DefaultLocale)

	auth := middleware.NewAuthenticator(cfg.Auth, logger)
	gate := middleware.NewAccessGate(services.Households, logger)

	pantryHandler := handlers.NewPantryHandler(services.Pantry, validate, logger)
	mealPlanHandler := handlers.NewMealPlanHandler(services.MealPlans, validate, logger)
	recipeHandler := handlers.NewRecipeHandler(services.Recipes, validate, logger)
	ticketHandler := handlers.NewTicketHandler(services.Tickets, validate, logger)
	householdHandler := handlers.NewHouseholdHandler(services.Households, validate, logger)
	advisorHandler := handlers.NewAdvisorHandler(services.Advisor, validate, logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Metrics(metrics))
	if cfg.RateLimit.Enable {
		r.Use(middleware.NewRateLimiter(cfg.RateLimit).Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","version":%q}`, cfg.App.Version)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware)

		// Profile routes skip the member gate: the first profile write
		// happens before a profile row exists.
		r.Route("/profile", householdHandler.RegisterRoutes)

		r.Group(func(r chi.Router) {
			r.Use(gate.LoadMember)

			r.Route("/pantry", func(r chi.Router) { pantryHandler.RegisterRoutes(r, gate) })
			r.Route("/mealplan", func(r chi.Router) { mealPlanHandler.RegisterRoutes(r, gate) })
			r.Route("/recipes", func(r chi.Router) { recipeHandler.RegisterRoutes(r, gate) })
			r.Route("/tickets", func(r chi.Router) { ticketHandler.RegisterRoutes(r, gate) })
			r.Route("/advisor", func(r chi.Router) { advisorHandler.RegisterRoutes(r, gate) })
			r.Route("/admin", func(r chi.Router) { householdHandler.RegisterAdminRoutes(r, gate) })
		})
	})

	return &Server{
		cfg:    cfg,
		logger: logger.Named("http-server"),
		http: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      r,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}
}

// Start runs the server until the listener fails or Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	timeout := s.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	s.logger.Info("shutting down")
	return s.http.Shutdown(ctx)
}
