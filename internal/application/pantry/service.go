// Package pantry provides the application layer for the household stock.
package pantry

import (
	"context"
	"strings"
	"time"

	"github.com/foyerapp/foyer/internal/application/shared"
	domain "github.com/foyerapp/foyer/internal/domain/pantry"
	"github.com/foyerapp/foyer/internal/ports/inbound"
	"github.com/foyerapp/foyer/internal/ports/outbound"
	apperrors "github.com/foyerapp/foyer/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the stock façade. Read paths degrade to built-in
// fallback data when storage is unavailable; write paths report failure.
type Service struct {
	products outbound.ProductRepository
	ai       outbound.AIService
	clock    func() time.Time
	logger   *zap.Logger
}

// NewService creates the pantry service
func NewService(products outbound.ProductRepository, ai outbound.AIService, logger *zap.Logger) *Service {
	return &Service{
		products: products,
		ai:       ai,
		clock:    time.Now,
		logger:   logger.Named("pantry-service"),
	}
}

// WithClock overrides the clock, for tests
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

// ListProducts returns the household stock, newest first, substituting
// fallback data on storage failure
func (s *Service) ListProducts(ctx context.Context, foyerID uuid.UUID) shared.Result[[]*domain.Product] {
	products, err := s.products.FindByFoyer(ctx, foyerID)
	if err != nil {
		s.logger.Warn("stock fetch failed, serving fallback data",
			zap.String("foyer_id", foyerID.String()),
			zap.Error(err))
		return shared.Fallback(FallbackProducts(foyerID), err)
	}
	return shared.Ok(products)
}

// CreateProduct creates a product from manual entry
func (s *Service) CreateProduct(ctx context.Context, foyerID uuid.UUID, input inbound.ProductInput) (*domain.Product, error) {
	product, err := domain.NewProduct(foyerID, input.Name, input.Quantity, input.Unit, input.Category, input.MinThreshold, input.ExpiryDate)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid product", err.Error())
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	return product, nil
}

// UpdateProduct replaces every editable field of a product with the
// input values. Callers send the full field set; only the id, household
// and creation time survive the write unchanged.
func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, input inbound.ProductInput) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewNotFoundError(apperrors.CodeProductNotFound, "product not found")
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("invalid product", domain.ErrNameRequired.Error())
	}
	if input.Quantity < 0 || input.MinThreshold < 0 {
		return nil, apperrors.NewValidationError("invalid product", domain.ErrNegativeQuantity.Error())
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Quantity = input.Quantity
	product.Unit = input.Unit
	product.Category = input.Category
	product.MinThreshold = input.MinThreshold
	product.ExpiryDate = input.ExpiryDate
	product.UpdatedAt = s.clock()

	if err := s.products.Update(ctx, product); err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	return product, nil
}

// DeleteProduct removes a product
func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return apperrors.NewStorageError(err)
	}
	return nil
}

// Watchlist ranks the stock by urgency. On storage failure the watchlist
// is computed over the fallback collection so the view stays functional.
func (s *Service) Watchlist(ctx context.Context, foyerID uuid.UUID) shared.Result[domain.Watchlist] {
	listed := s.ListProducts(ctx, foyerID)
	watchlist := domain.BuildWatchlist(listed.Data, s.clock())
	if listed.Degraded() {
		return shared.Fallback(watchlist, listed.Err)
	}
	return shared.Ok(watchlist)
}

// ApplyCommandText parses free text into stock commands via the AI adapter
// and applies them to the household stock. A parse failure fails the whole
// operation before any mutation; per-command application then follows the
// first-match-wins rules of the domain.
func (s *Service) ApplyCommandText(ctx context.Context, foyerID uuid.UUID, text string) ([]domain.CommandOutcome, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("empty command", "")
	}

	commands, err := s.ai.ParseCommands(ctx, text)
	if err != nil {
		return nil, apperrors.NewAIUnavailableError("command parsing failed").WithCause(err)
	}
	if len(commands) == 0 {
		return nil, nil
	}

	products, err := s.products.FindByFoyer(ctx, foyerID)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	outcomes, err := domain.ApplyCommands(foyerID, products, commands)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid command", err.Error())
	}

	for _, outcome := range outcomes {
		switch {
		case outcome.Created != nil:
			if err := s.products.Create(ctx, outcome.Created); err != nil {
				return outcomes, apperrors.NewStorageError(err)
			}
		case outcome.Updated != nil:
			if err := s.products.Update(ctx, outcome.Updated); err != nil {
				return outcomes, apperrors.NewStorageError(err)
			}
		}
	}

	return outcomes, nil
}
