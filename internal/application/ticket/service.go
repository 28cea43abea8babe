// Package ticket provides the application layer for receipts and their
// stock ingestion.
package ticket

import (
	"context"
	"strings"
	"time"

	"github.com/foyerapp/foyer/internal/application/shared"
	"github.com/foyerapp/foyer/internal/domain/pantry"
	domain "github.com/foyerapp/foyer/internal/domain/ticket"
	"github.com/foyerapp/foyer/internal/ports/inbound"
	"github.com/foyerapp/foyer/internal/ports/outbound"
	apperrors "github.com/foyerapp/foyer/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements receipt management. Scanning extracts a receipt via
// the AI adapter (falling back to a fixed template), persists it, and
// ingests every line item into the pantry.
type Service struct {
	tickets  outbound.TicketRepository
	products outbound.ProductRepository
	ai       outbound.AIService
	metrics  outbound.AIMetrics
	clock    func() time.Time
	logger   *zap.Logger
}

// NewService creates the ticket service. metrics may be nil when
// monitoring is not wired.
func NewService(tickets outbound.TicketRepository, products outbound.ProductRepository, ai outbound.AIService, metrics outbound.AIMetrics, logger *zap.Logger) *Service {
	return &Service{
		tickets:  tickets,
		products: products,
		ai:       ai,
		metrics:  metrics,
		clock:    time.Now,
		logger:   logger.Named("ticket-service"),
	}
}

func (s *Service) recordFallback() {
	if s.metrics != nil {
		s.metrics.RecordAIFallback("parse_receipt")
	}
}

// ListTickets returns the household receipts, newest first, substituting
// fallback data on storage failure
func (s *Service) ListTickets(ctx context.Context, foyerID uuid.UUID) shared.Result[[]*domain.Ticket] {
	tickets, err := s.tickets.FindByFoyer(ctx, foyerID)
	if err != nil {
		s.logger.Warn("ticket fetch failed, serving fallback data", zap.Error(err))
		return shared.Fallback(FallbackTickets(foyerID), err)
	}
	return shared.Ok(tickets)
}

// ScanReceipt extracts a receipt from a photo and ingests its items into
// the stock. When extraction fails the manual-entry template is used so
// the flow still produces an editable ticket; the returned source tells
// the caller which one it got.
func (s *Service) ScanReceipt(ctx context.Context, foyerID uuid.UUID, imageBase64 string) (*domain.Ticket, shared.Source, error) {
	if strings.TrimSpace(imageBase64) == "" {
		return nil, shared.SourceFailed, apperrors.NewValidationError("empty image payload", "")
	}

	extracted, err := s.ai.ParseReceipt(ctx, imageBase64)

	source := shared.SourceOk
	var t *domain.Ticket
	if err != nil {
		s.logger.Warn("receipt extraction failed, using manual template", zap.Error(err))
		s.recordFallback()
		source = shared.SourceFallback
		t = FallbackTicket(foyerID, s.clock())
	} else {
		t, err = fromAIReceipt(foyerID, extracted, s.clock())
		if err != nil {
			s.logger.Warn("extracted receipt rejected, using manual template", zap.Error(err))
			s.recordFallback()
			source = shared.SourceFallback
			t = FallbackTicket(foyerID, s.clock())
		}
	}

	if err := s.tickets.Create(ctx, t); err != nil {
		return nil, shared.SourceFailed, apperrors.NewStorageError(err)
	}

	s.ingestItems(ctx, foyerID, t.Items)
	return t, source, nil
}

// CreateTicket creates a receipt from manual entry and ingests its items
func (s *Service) CreateTicket(ctx context.Context, foyerID uuid.UUID, input inbound.TicketInput) (*domain.Ticket, error) {
	t, err := domain.NewTicket(foyerID, input.StoreName, input.Date, input.Total, itemsFromInput(input.Items))
	if err != nil {
		return nil, apperrors.NewValidationError("invalid ticket", err.Error())
	}

	if err := s.tickets.Create(ctx, t); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	s.ingestItems(ctx, foyerID, t.Items)
	return t, nil
}

// UpdateTicket edits a receipt. Edits do not re-run stock ingestion; the
// stored total stays independent of the line-item sum.
func (s *Service) UpdateTicket(ctx context.Context, id uuid.UUID, input inbound.TicketInput) (*domain.Ticket, error) {
	t, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewNotFoundError(apperrors.CodeTicketNotFound, "ticket not found")
	}

	if err := t.Edit(input.StoreName, input.Date, input.Total, itemsFromInput(input.Items)); err != nil {
		return nil, apperrors.NewValidationError("invalid ticket", err.Error())
	}

	if err := s.tickets.Update(ctx, t); err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	return t, nil
}

// DeleteTicket removes a receipt
func (s *Service) DeleteTicket(ctx context.Context, id uuid.UUID) error {
	if err := s.tickets.Delete(ctx, id); err != nil {
		return apperrors.NewStorageError(err)
	}
	return nil
}

// ingestItems merges receipt lines into the stock: a line matching an
// existing product (case-insensitive substring, first match wins) tops up
// its quantity, anything else becomes a new product. Ingestion failures
// are logged, not surfaced; the ticket itself is already saved.
func (s *Service) ingestItems(ctx context.Context, foyerID uuid.UUID, items []domain.LineItem) {
	products, err := s.products.FindByFoyer(ctx, foyerID)
	if err != nil {
		s.logger.Warn("stock fetch failed, skipping ingestion", zap.Error(err))
		return
	}

	commands := make([]pantry.StockCommand, 0, len(items))
	for _, item := range items {
		commands = append(commands, pantry.StockCommand{
			Action:   pantry.ActionAdd,
			Item:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
		})
	}

	outcomes, err := pantry.ApplyCommands(foyerID, products, commands)
	if err != nil {
		s.logger.Warn("ingestion rejected", zap.Error(err))
		return
	}

	for i, outcome := range outcomes {
		switch {
		case outcome.Created != nil:
			outcome.Created.Category = items[i].Category
			if err := s.products.Create(ctx, outcome.Created); err != nil {
				s.logger.Warn("ingestion create failed", zap.String("item", items[i].Name), zap.Error(err))
			}
		case outcome.Updated != nil:
			if err := s.products.Update(ctx, outcome.Updated); err != nil {
				s.logger.Warn("ingestion update failed", zap.String("item", items[i].Name), zap.Error(err))
			}
		}
	}
}

func itemsFromInput(inputs []inbound.TicketItemInput) []domain.LineItem {
	items := make([]domain.LineItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, domain.LineItem{
			Name:     in.Name,
			Quantity: in.Quantity,
			Unit:     in.Unit,
			Category: in.Category,
			Price:    in.Price,
		})
	}
	return items
}

// fromAIReceipt converts the adapter payload into a domain ticket
func fromAIReceipt(foyerID uuid.UUID, ai *outbound.AIReceipt, now time.Time) (*domain.Ticket, error) {
	date := now
	if parsed, err := time.Parse("2006-01-02", ai.Date); err == nil {
		date = parsed
	}

	items := make([]domain.LineItem, 0, len(ai.Items))
	for _, item := range ai.Items {
		items = append(items, domain.LineItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Category: item.Category,
			Price:    item.Price,
		})
	}

	return domain.NewTicket(foyerID, ai.StoreName, date, ai.Total, items)
}
