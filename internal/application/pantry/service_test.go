package pantry

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
	domain "github.com/foyerapp/foyer/internal/domain/pantry"
	"github.com/foyerapp/foyer/internal/ports/inbound"
	"github.com/foyerapp/foyer/internal/ports/outbound"
	apperrors "github.com/foyerapp/foyer/pkg/errors"
	"github.com/foyerapp/foyer/test/testutils"
)

type stubProductRepo struct {
	products  []*domain.Product
	findErr   error
	createErr error
	created   []*domain.Product
	updated   []*domain.Product
	deleted   []uuid.UUID
}

func (r *stubProductRepo) Create(ctx context.Context, p *domain.Product) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, p)
	return nil
}

func (r *stubProductRepo) Update(ctx context.Context, p *domain.Product) error {
	r.updated = append(r.updated, p)
	return nil
}

func (r *stubProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubProductRepo) FindByFoyer(ctx context.Context, foyerID uuid.UUID) ([]*domain.Product, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.products, nil
}

type stubAI struct {
	commands    []domain.StockCommand
	commandsErr error
}

func (s *stubAI) GenerateRecipe(ctx context.Context, req outbound.RecipeRequest) (*outbound.AIRecipe, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAI) ParseReceipt(ctx context.Context, imageBase64 string) (*outbound.AIReceipt, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAI) ParseCommands(ctx context.Context, text string) ([]domain.StockCommand, error) {
	return s.commands, s.commandsErr
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

func newService(repo *stubProductRepo, ai *stubAI) *Service {
	return NewService(repo, ai, zap.NewNop())
}

func TestListProductsServesLiveData(t *testing.T) {
	foyerID := uuid.New()
	factory := testutils.NewProductFactory(foyerID)
	repo := &stubProductRepo{products: []*domain.Product{
		factory.Build(testutils.WithName("Lait"), testutils.WithQuantity(2, 1)),
	}}

	result := newService(repo, &stubAI{}).ListProducts(context.Background(), foyerID)

	assert.Equal(t, shared.SourceOk, result.Source)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "Lait", result.Data[0].Name)
}

func TestListProductsDegradesToFallback(t *testing.T) {
	repo := &stubProductRepo{findErr: errors.New("connection refused")}

	result := newService(repo, &stubAI{}).ListProducts(context.Background(), uuid.New())

	assert.True(t, result.Degraded())
	assert.NotEmpty(t, result.Data, "fallback stock must not be empty")
	assert.Error(t, result.Err)
}

func TestWatchlistOverFallbackStaysFunctional(t *testing.T) {
	repo := &stubProductRepo{findErr: errors.New("connection refused")}

	result := newService(repo, &stubAI{}).Watchlist(context.Background(), uuid.New())

	assert.True(t, result.Degraded())
	assert.NotEmpty(t, result.Data.Products)
}

func TestWatchlistUsesInjectedClock(t *testing.T) {
	foyerID := uuid.New()
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	factory := testutils.NewProductFactory(foyerID)
	fine := factory.Build(testutils.WithName("Riz"), testutils.WithQuantity(5, 1))
	yogurt := factory.Build(
		testutils.WithName("Yaourt"),
		testutils.WithQuantity(5, 1),
		testutils.WithExpiry(now.AddDate(0, 0, 1)),
	)

	repo := &stubProductRepo{products: []*domain.Product{fine, yogurt}}
	svc := newService(repo, &stubAI{}).WithClock(func() time.Time { return now })

	result := svc.Watchlist(context.Background(), foyerID)

	assert.Equal(t, shared.SourceOk, result.Source)
	require.Len(t, result.Data.Products, 1)
	assert.Equal(t, "Yaourt", result.Data.Products[0].Name)
}

func TestCreateProductValidates(t *testing.T) {
	svc := newService(&stubProductRepo{}, &stubAI{})

	_, err := svc.CreateProduct(context.Background(), uuid.New(), inbound.ProductInput{Name: "  "})

	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
}

func TestUpdateProductReplacesEveryEditableField(t *testing.T) {
	foyerID := uuid.New()
	stored := testutils.NewProductFactory(foyerID).Build(
		testutils.WithName("Lait entier"),
		testutils.WithQuantity(2, 1),
		testutils.WithExpiry(time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)),
	)
	repo := &stubProductRepo{products: []*domain.Product{stored}}
	svc := newService(repo, &stubAI{})

	updated, err := svc.UpdateProduct(context.Background(), stored.ID, inbound.ProductInput{
		Name:     "Lait demi-écrémé",
		Quantity: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, "Lait demi-écrémé", updated.Name)
	assert.Equal(t, 1.0, updated.Quantity)
	// Fields left empty in the input land empty in storage, no merging.
	assert.Empty(t, updated.Unit)
	assert.Empty(t, updated.Category)
	assert.Zero(t, updated.MinThreshold)
	assert.Nil(t, updated.ExpiryDate)
	assert.Equal(t, foyerID, updated.FoyerID)
}

func TestUpdateProductUnknownIDIsNotFound(t *testing.T) {
	svc := newService(&stubProductRepo{}, &stubAI{})

	_, err := svc.UpdateProduct(context.Background(), uuid.New(), inbound.ProductInput{Name: "Lait"})

	assert.True(t, apperrors.IsCode(err, apperrors.CodeProductNotFound))
}

func TestApplyCommandTextRejectsEmptyText(t *testing.T) {
	svc := newService(&stubProductRepo{}, &stubAI{})

	_, err := svc.ApplyCommandText(context.Background(), uuid.New(), "   ")

	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
}

func TestApplyCommandTextParserFailureIsAIUnavailable(t *testing.T) {
	ai := &stubAI{commandsErr: errors.New("timeout")}
	svc := newService(&stubProductRepo{}, ai)

	_, err := svc.ApplyCommandText(context.Background(), uuid.New(), "ajoute 2 kg de riz")

	assert.True(t, apperrors.IsCode(err, apperrors.CodeAIUnavailable))
}

func TestApplyCommandTextPersistsOutcomes(t *testing.T) {
	foyerID := uuid.New()
	eggs := testutils.NewProductFactory(foyerID).Build(
		testutils.WithName("Œufs Bio"),
		testutils.WithQuantity(6, 4),
	)
	repo := &stubProductRepo{products: []*domain.Product{eggs}}
	ai := &stubAI{commands: []domain.StockCommand{
		{Action: domain.ActionAdd, Item: "riz", Quantity: 2, Unit: "kg"},
		{Action: domain.ActionRemove, Item: "œufs", Quantity: 2},
	}}

	outcomes, err := newService(repo, ai).ApplyCommandText(context.Background(), foyerID, "ajoute du riz, enlève 2 œufs")

	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "riz", repo.created[0].Name)
	require.Len(t, repo.updated, 1)
	assert.Equal(t, 4.0, repo.updated[0].Quantity)
}
