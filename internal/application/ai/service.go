// Package ai provides the application layer for AI operations
package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/foyerapp/foyer/internal/domain/pantry"
	"github.com/foyerapp/foyer/internal/ports/outbound"
	"go.uber.org/zap"
)

// Service wraps the raw AI client with response caching and logging. It
// returns typed errors for expected failure modes (missing key, transport,
// parse); deterministic fallbacks live with the callers, never here.
type Service struct {
	client   outbound.AIService
	cache    outbound.CacheRepository
	cacheTTL time.Duration
	metrics  outbound.AIMetrics
	logger   *zap.Logger
}

// NewService creates the AI application service. cache may be nil when
// caching is disabled, metrics when monitoring is not wired.
func NewService(client outbound.AIService, cache outbound.CacheRepository, cacheTTL time.Duration, metrics outbound.AIMetrics, logger *zap.Logger) *Service {
	return &Service{
		client:   client,
		cache:    cache,
		cacheTTL: cacheTTL,
		metrics:  metrics,
		logger:   logger.Named("ai-service"),
	}
}

// record counts one collaborator call on the metrics sink
func (s *Service) record(operation string, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.metrics.RecordAIRequest(operation, outcome)
}

// GenerateRecipe generates a recipe, serving repeated identical requests
// from cache.
func (s *Service) GenerateRecipe(ctx context.Context, req outbound.RecipeRequest) (*outbound.AIRecipe, error) {
	key := cacheKey("recipe", req)

	if cached, ok := s.cacheGet(ctx, key); ok {
		var out outbound.AIRecipe
		if err := json.Unmarshal(cached, &out); err == nil {
			s.logger.Debug("recipe served from cache", zap.String("key", key))
			return &out, nil
		}
	}

	out, err := s.client.GenerateRecipe(ctx, req)
	s.record("generate_recipe", err)
	if err != nil {
		s.logger.Warn("recipe generation failed", zap.Error(err))
		return nil, err
	}

	s.cachePut(ctx, key, out)
	s.logger.Info("recipe generated", zap.String("title", out.Title))
	return out, nil
}

// ParseReceipt extracts a structured receipt from a photo. Image payloads
// are never cached.
func (s *Service) ParseReceipt(ctx context.Context, imageBase64 string) (*outbound.AIReceipt, error) {
	out, err := s.client.ParseReceipt(ctx, imageBase64)
	s.record("parse_receipt", err)
	if err != nil {
		s.logger.Warn("receipt parsing failed", zap.Error(err))
		return nil, err
	}
	s.logger.Info("receipt parsed",
		zap.String("store", out.StoreName),
		zap.Int("items", len(out.Items)))
	return out, nil
}

// ParseCommands turns free text into stock commands
func (s *Service) ParseCommands(ctx context.Context, text string) ([]pantry.StockCommand, error) {
	commands, err := s.client.ParseCommands(ctx, text)
	s.record("parse_commands", err)
	if err != nil {
		s.logger.Warn("command parsing failed", zap.Error(err))
		return nil, err
	}
	return commands, nil
}

// IdentifyProduct recognizes a product from a photo
func (s *Service) IdentifyProduct(ctx context.Context, imageBase64 string) (*outbound.AIProduct, error) {
	out, err := s.client.IdentifyProduct(ctx, imageBase64)
	s.record("identify_product", err)
	if err != nil {
		s.logger.Warn("product identification failed", zap.Error(err))
		return nil, err
	}
	return out, nil
}

// ScoreInventoryHealth rates the stock, caching per stock snapshot
func (s *Service) ScoreInventoryHealth(ctx context.Context, stock []outbound.StockLine) (*outbound.HealthReport, error) {
	key := cacheKey("health", stock)

	if cached, ok := s.cacheGet(ctx, key); ok {
		var out outbound.HealthReport
		if err := json.Unmarshal(cached, &out); err == nil {
			return &out, nil
		}
	}

	out, err := s.client.ScoreInventoryHealth(ctx, stock)
	s.record("inventory_health", err)
	if err != nil {
		s.logger.Warn("inventory health scoring failed", zap.Error(err))
		return nil, err
	}

	s.cachePut(ctx, key, out)
	return out, nil
}

// AdviseBudget produces spending advice from recent receipt totals
func (s *Service) AdviseBudget(ctx context.Context, totals []float64) (string, error) {
	advice, err := s.client.AdviseBudget(ctx, totals)
	s.record("budget_advice", err)
	if err != nil {
		s.logger.Warn("budget advice failed", zap.Error(err))
		return "", err
	}
	return advice, nil
}

func (s *Service) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil, false
	}
	return data, true
}

func (s *Service) cachePut(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	// Cache failures are soft
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.Debug("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func cacheKey(op string, payload any) string {
	data, _ := json.Marshal(payload)
	sum := sha256.Sum256(data)
	return "ai:" + op + ":" + hex.EncodeToString(sum[:16])
}
