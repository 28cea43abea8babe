package ticket

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/foyerapp/foyer/internal/application/shared"
	"github.com/foyerapp/foyer/internal/domain/pantry"
	domain "github.com/foyerapp/foyer/internal/domain/ticket"
	"github.com/foyerapp/foyer/internal/ports/inbound"
	"github.com/foyerapp/foyer/internal/ports/outbound"
	apperrors "github.com/foyerapp/foyer/pkg/errors"
	"github.com/foyerapp/foyer/test/testutils"
)

type stubTicketRepo struct {
	stored  []*domain.Ticket
	findErr error
}

func (r *stubTicketRepo) Create(ctx context.Context, t *domain.Ticket) error {
	r.stored = append(r.stored, t)
	return nil
}

func (r *stubTicketRepo) Update(ctx context.Context, t *domain.Ticket) error { return nil }

func (r *stubTicketRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *stubTicketRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	for _, t := range r.stored {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubTicketRepo) FindByFoyer(ctx context.Context, foyerID uuid.UUID) ([]*domain.Ticket, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.stored, nil
}

type stubProductRepo struct {
	products []*pantry.Product
	created  []*pantry.Product
	updated  []*pantry.Product
}

func (r *stubProductRepo) Create(ctx context.Context, p *pantry.Product) error {
	r.created = append(r.created, p)
	return nil
}

func (r *stubProductRepo) Update(ctx context.Context, p *pantry.Product) error {
	r.updated = append(r.updated, p)
	return nil
}

func (r *stubProductRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *stubProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*pantry.Product, error) {
	return nil, errors.New("not found")
}

func (r *stubProductRepo) FindByFoyer(ctx context.Context, foyerID uuid.UUID) ([]*pantry.Product, error) {
	return r.products, nil
}

type stubAI struct {
	receipt  *outbound.AIReceipt
	parseErr error
}

func (s *stubAI) GenerateRecipe(ctx context.Context, req outbound.RecipeRequest) (*outbound.AIRecipe, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAI) ParseReceipt(ctx context.Context, imageBase64 string) (*outbound.AIReceipt, error) {
	return s.receipt, s.parseErr
}

func (s *stubAI) ParseCommands(ctx context.Context, text string) ([]pantry.StockCommand, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAI) IdentifyProduct(ctx context.Context, imageBase64 string) (*outbound.AIProduct, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAI) ScoreInventoryHealth(ctx context.Context, stock []outbound.StockLine) (*outbound.HealthReport, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAI) AdviseBudget(ctx context.Context, totals []float64) (string, error) {
	return "", errors.New("not implemented")
}

type stubMetrics struct {
	fallbacks []string
}

func (m *stubMetrics) RecordAIRequest(operation, outcome string) {}

func (m *stubMetrics) RecordAIFallback(operation string) {
	m.fallbacks = append(m.fallbacks, operation)
}

func newTestService(tickets *stubTicketRepo, products *stubProductRepo, ai *stubAI) *Service {
	return NewService(tickets, products, ai, nil, zap.NewNop())
}

func TestScanReceiptStoresExtractedTicketAndIngests(t *testing.T) {
	foyerID := uuid.New()
	tickets := &stubTicketRepo{}
	products := &stubProductRepo{products: []*pantry.Product{
		{ID: uuid.New(), FoyerID: foyerID, Name: "Œufs Bio", Quantity: 6, MinThreshold: 4},
	}}
	ai := &stubAI{receipt: &outbound.AIReceipt{
		StoreName: "Carrefour",
		Date:      "2025-03-08",
		Total:     23.90,
		Items: []outbound.AIReceiptItem{
			{Name: "œufs", Quantity: 6, Unit: "pièces", Category: "Produits frais", Price: 3.10},
			{Name: "farine", Quantity: 1, Unit: "kg", Category: "Épicerie", Price: 1.20},
		},
	}}
	svc := newTestService(tickets, products, ai)

	scanned, source, err := svc.ScanReceipt(context.Background(), foyerID, "base64payload")

	require.NoError(t, err)
	assert.Equal(t, shared.SourceOk, source)
	assert.Equal(t, "Carrefour", scanned.StoreName)
	assert.Equal(t, 23.90, scanned.Total)
	assert.Equal(t, time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC), scanned.Date)
	require.Len(t, tickets.stored, 1)

	// "œufs" matched the existing product, "farine" became a new one.
	require.Len(t, products.updated, 1)
	assert.Equal(t, 12.0, products.updated[0].Quantity)
	require.Len(t, products.created, 1)
	assert.Equal(t, "farine", products.created[0].Name)
	assert.Equal(t, "Épicerie", products.created[0].Category)
}

func TestScanReceiptFallsBackToTemplate(t *testing.T) {
	tickets := &stubTicketRepo{}
	ai := &stubAI{parseErr: errors.New("vision model unavailable")}
	metrics := &stubMetrics{}
	svc := NewService(tickets, &stubProductRepo{}, ai, metrics, zap.NewNop())

	scanned, source, err := svc.ScanReceipt(context.Background(), uuid.New(), "base64payload")

	require.NoError(t, err, "an unreadable photo must still produce a ticket")
	assert.Equal(t, shared.SourceFallback, source)
	assert.Equal(t, "Magasin", scanned.StoreName)
	require.Len(t, scanned.Items, 1)
	assert.Equal(t, "Article", scanned.Items[0].Name)
	require.Len(t, tickets.stored, 1)
	assert.Equal(t, []string{"parse_receipt"}, metrics.fallbacks)
}

func TestScanReceiptExtractionDoesNotCountFallback(t *testing.T) {
	metrics := &stubMetrics{}
	ai := &stubAI{receipt: &outbound.AIReceipt{StoreName: "Lidl", Date: "2025-03-08"}}
	svc := NewService(&stubTicketRepo{}, &stubProductRepo{}, ai, metrics, zap.NewNop())

	_, source, err := svc.ScanReceipt(context.Background(), uuid.New(), "base64payload")

	require.NoError(t, err)
	assert.Equal(t, shared.SourceOk, source)
	assert.Empty(t, metrics.fallbacks)
}

func TestScanReceiptRejectsEmptyImage(t *testing.T) {
	svc := newTestService(&stubTicketRepo{}, &stubProductRepo{}, &stubAI{})

	_, _, err := svc.ScanReceipt(context.Background(), uuid.New(), "  ")

	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
}

func TestCreateTicketIngestsItems(t *testing.T) {
	products := &stubProductRepo{}
	svc := newTestService(&stubTicketRepo{}, products, &stubAI{})

	created, err := svc.CreateTicket(context.Background(), uuid.New(), inbound.TicketInput{
		StoreName: "Marché",
		Date:      time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		Total:     12.0,
		Items: []inbound.TicketItemInput{
			{Name: "pommes", Quantity: 4, Unit: "pièces", Price: 2.0},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 12.0, created.Total)
	require.Len(t, products.created, 1)
	assert.Equal(t, "pommes", products.created[0].Name)
}

func TestCreateTicketTotalIndependentOfItems(t *testing.T) {
	svc := newTestService(&stubTicketRepo{}, &stubProductRepo{}, &stubAI{})

	created, err := svc.CreateTicket(context.Background(), uuid.New(), inbound.TicketInput{
		StoreName: "Marché",
		Total:     99.99,
		Items: []inbound.TicketItemInput{
			{Name: "pommes", Quantity: 1, Price: 2.0},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 99.99, created.Total, "the total is never recomputed from items")
}

func TestUpdateTicketDoesNotReingest(t *testing.T) {
	foyerID := uuid.New()
	products := &stubProductRepo{}
	tickets := &stubTicketRepo{}
	svc := newTestService(tickets, products, &stubAI{})

	created, err := svc.CreateTicket(context.Background(), foyerID, inbound.TicketInput{
		StoreName: "Marché",
		Items:     []inbound.TicketItemInput{{Name: "pommes", Quantity: 4}},
	})
	require.NoError(t, err)
	createdCount := len(products.created)

	_, err = svc.UpdateTicket(context.Background(), created.ID, inbound.TicketInput{
		StoreName: "Marché couvert",
		Items:     []inbound.TicketItemInput{{Name: "pommes", Quantity: 8}},
	})

	require.NoError(t, err)
	assert.Len(t, products.created, createdCount, "edits must not touch the stock")
}

func TestUpdateTicketValidation(t *testing.T) {
	tickets := &stubTicketRepo{}
	svc := newTestService(tickets, &stubProductRepo{}, &stubAI{})

	created, err := svc.CreateTicket(context.Background(), uuid.New(), inbound.TicketInput{StoreName: "Marché"})
	require.NoError(t, err)

	_, err = svc.UpdateTicket(context.Background(), created.ID, inbound.TicketInput{StoreName: "  "})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))

	_, err = svc.UpdateTicket(context.Background(), uuid.New(), inbound.TicketInput{StoreName: "X"})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeTicketNotFound))
}

func TestListTicketsReturnsStored(t *testing.T) {
	foyerID := uuid.New()
	tickets := &stubTicketRepo{stored: []*domain.Ticket{
		testutils.BuildTicket(foyerID, 3),
		testutils.BuildTicket(foyerID, 1),
	}}
	svc := newTestService(tickets, &stubProductRepo{}, &stubAI{})

	result := svc.ListTickets(context.Background(), foyerID)

	assert.False(t, result.Degraded())
	require.Len(t, result.Data, 2)
	assert.Len(t, result.Data[0].Items, 3)
}

func TestListTicketsDegradesToFallback(t *testing.T) {
	tickets := &stubTicketRepo{findErr: errors.New("connection refused")}
	svc := newTestService(tickets, &stubProductRepo{}, &stubAI{})

	result := svc.ListTickets(context.Background(), uuid.New())

	assert.True(t, result.Degraded())
	assert.NotEmpty(t, result.Data)
}
