// Package advisor provides the AI-backed read operations that sit outside
// the main entity façades: inventory health, budget advice and product
// identification from a photo.
package advisor

import (
	"context"

	"github.com/foyerapp/foyer/internal/domain/pantry"
	"github.com/foyerapp/foyer/internal/ports/outbound"
	apperrors "github.com/foyerapp/foyer/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the advisor use cases. These operations fail soft:
// an unavailable AI service produces a typed error, never a crash.
type Service struct {
	products outbound.ProductRepository
	tickets  outbound.TicketRepository
	ai       outbound.AIService
	logger   *zap.Logger
}

// NewService creates the advisor service
func NewService(products outbound.ProductRepository, tickets outbound.TicketRepository, ai outbound.AIService, logger *zap.Logger) *Service {
	return &Service{
		products: products,
		tickets:  tickets,
		ai:       ai,
		logger:   logger.Named("advisor-service"),
	}
}

// InventoryHealth rates the household stock from 0 to 100
func (s *Service) InventoryHealth(ctx context.Context, foyerID uuid.UUID) (int, string, error) {
	products, err := s.products.FindByFoyer(ctx, foyerID)
	if err != nil {
		return 0, "", apperrors.NewStorageError(err)
	}

	lines := make([]outbound.StockLine, 0, len(products))
	for _, p := range products {
		lines = append(lines, outbound.StockLine{Name: p.Name, Quantity: p.Quantity, Unit: p.Unit})
	}

	report, err := s.ai.ScoreInventoryHealth(ctx, lines)
	if err != nil {
		return 0, "", apperrors.NewAIUnavailableError("inventory health scoring failed").WithCause(err)
	}
	return report.Score, report.Summary, nil
}

// BudgetAdvice produces spending advice from the recent receipt totals
func (s *Service) BudgetAdvice(ctx context.Context, foyerID uuid.UUID) (string, error) {
	tickets, err := s.tickets.FindByFoyer(ctx, foyerID)
	if err != nil {
		return "", apperrors.NewStorageError(err)
	}

	totals := make([]float64, 0, len(tickets))
	for _, t := range tickets {
		totals = append(totals, t.Total)
	}

	advice, err := s.ai.AdviseBudget(ctx, totals)
	if err != nil {
		return "", apperrors.NewAIUnavailableError("budget advice failed").WithCause(err)
	}
	return advice, nil
}

// IdentifyProduct recognizes a product from a photo and adds it to the
// stock
func (s *Service) IdentifyProduct(ctx context.Context, foyerID uuid.UUID, imageBase64 string) (*pantry.Product, error) {
	if imageBase64 == "" {
		return nil, apperrors.NewValidationError("empty image payload", "")
	}

	candidate, err := s.ai.IdentifyProduct(ctx, imageBase64)
	if err != nil {
		return nil, apperrors.NewAIUnavailableError("product identification failed").WithCause(err)
	}

	product, err := pantry.NewProduct(foyerID, candidate.Name, candidate.Quantity, candidate.Unit, candidate.Category, 1, nil)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid product candidate", err.Error())
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	s.logger.Info("product identified from photo", zap.String("name", product.Name))
	return product, nil
}
