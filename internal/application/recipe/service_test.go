package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/foyerapp/foyer/internal/domain/household"
	"github.com/foyerapp/foyer/internal/domain/pantry"
	domain "github.com/foyerapp/foyer/internal/domain/recipe"
	"github.com/foyerapp/foyer/internal/ports/outbound"
	apperrors "github.com/foyerapp/foyer/pkg/errors"
	"github.com/foyerapp/foyer/test/testutils"
)

type stubRecipeRepo struct {
	stored  []*domain.Recipe
	findErr error
}

func (r *stubRecipeRepo) Create(ctx context.Context, rec *domain.Recipe) error {
	r.stored = append(r.stored, rec)
	return nil
}

func (r *stubRecipeRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *stubRecipeRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
	for _, rec := range r.stored {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubRecipeRepo) FindByFoyer(ctx context.Context, foyerID uuid.UUID) ([]*domain.Recipe, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.stored, nil
}

type stubProductRepo struct {
	products []*pantry.Product
}

func (r *stubProductRepo) Create(ctx context.Context, p *pantry.Product) error { return nil }
func (r *stubProductRepo) Update(ctx context.Context, p *pantry.Product) error { return nil }
func (r *stubProductRepo) Delete(ctx context.Context, id uuid.UUID) error      { return nil }
func (r *stubProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*pantry.Product, error) {
	return nil, errors.New("not found")
}
func (r *stubProductRepo) FindByFoyer(ctx context.Context, foyerID uuid.UUID) ([]*pantry.Product, error) {
	return r.products, nil
}

type stubMemberRepo struct {
	members []*household.Member
}

func (r *stubMemberRepo) Upsert(ctx context.Context, m *household.Member) error { return nil }
func (r *stubMemberRepo) Update(ctx context.Context, m *household.Member) error { return nil }
func (r *stubMemberRepo) FindByID(ctx context.Context, id uuid.UUID) (*household.Member, error) {
	return nil, errors.New("not found")
}
func (r *stubMemberRepo) FindByFoyer(ctx context.Context, foyerID uuid.UUID) ([]*household.Member, error) {
	return r.members, nil
}

type stubAI struct {
	recipe      *outbound.AIRecipe
	generateErr error
	lastRequest outbound.RecipeRequest
}

func (s *stubAI) GenerateRecipe(ctx context.Context, req outbound.RecipeRequest) (*outbound.AIRecipe, error) {
	s.lastRequest = req
	return s.recipe, s.generateErr
}

func (s *stubAI) ParseReceipt(ctx context.Context, imageBase64 string) (*outbound.AIReceipt, error) {
	return nil, errors.New("not implemented")
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

func newTestService(recipes *stubRecipeRepo, products *stubProductRepo, members *stubMemberRepo, ai *stubAI) *Service {
	return NewService(recipes, products, members, ai, nil, zap.NewNop())
}

func stockProduct(name string, quantity float64) *pantry.Product {
	return &pantry.Product{ID: uuid.New(), Name: name, Quantity: quantity, Unit: "pcs"}
}

func TestGenerateRecipeStoresAIResult(t *testing.T) {
	repo := &stubRecipeRepo{}
	ai := &stubAI{recipe: &outbound.AIRecipe{
		Title:       "Risotto aux champignons",
		Description: "Crémeux et rapide.",
		Ingredients: []outbound.AIIngredient{{Name: "Riz", Quantity: "200 g"}},
		Steps:       []string{"Cuisez le riz.", "Ajoutez les champignons."},
		PrepTime:    "30 min",
		Servings:    2,
	}}
	svc := newTestService(repo, &stubProductRepo{}, &stubMemberRepo{}, ai)

	rec, err := svc.GenerateRecipe(context.Background(), uuid.New(), "dinner")

	require.NoError(t, err)
	assert.Equal(t, "Risotto aux champignons", rec.Title)
	assert.True(t, rec.AIGenerated)
	require.Len(t, repo.stored, 1)
	assert.Same(t, rec, repo.stored[0])
}

func TestGenerateRecipeFallsBackWhenAIFails(t *testing.T) {
	repo := &stubRecipeRepo{}
	products := &stubProductRepo{products: []*pantry.Product{
		stockProduct("Riz basmati", 2),
		stockProduct("Courgettes", 3),
	}}
	ai := &stubAI{generateErr: errors.New("timeout")}
	svc := newTestService(repo, products, &stubMemberRepo{}, ai)

	rec, err := svc.GenerateRecipe(context.Background(), uuid.New(), "dinner")

	require.NoError(t, err, "a failed AI call must still yield a recipe")
	assert.Equal(t, "Idée dinner du placard", rec.Title)
	assert.False(t, rec.AIGenerated)
	assert.Len(t, rec.Ingredients, 2)
	require.Len(t, repo.stored, 1)
}

func TestGenerateRecipeFallbackIsCounted(t *testing.T) {
	metrics := &stubMetrics{}
	ai := &stubAI{generateErr: errors.New("timeout")}
	svc := NewService(&stubRecipeRepo{}, &stubProductRepo{}, &stubMemberRepo{}, ai, metrics, zap.NewNop())

	_, err := svc.GenerateRecipe(context.Background(), uuid.New(), "dinner")

	require.NoError(t, err)
	assert.Equal(t, []string{"generate_recipe"}, metrics.fallbacks)
}

func TestGenerateRecipeSuccessIsNotCounted(t *testing.T) {
	metrics := &stubMetrics{}
	ai := &stubAI{recipe: &outbound.AIRecipe{
		Title:       "Gratin dauphinois",
		Ingredients: []outbound.AIIngredient{{Name: "Pommes de terre", Quantity: "1 kg"}},
		Steps:       []string{"Émincez les pommes de terre."},
	}}
	svc := NewService(&stubRecipeRepo{}, &stubProductRepo{}, &stubMemberRepo{}, ai, metrics, zap.NewNop())

	_, err := svc.GenerateRecipe(context.Background(), uuid.New(), "dinner")

	require.NoError(t, err)
	assert.Empty(t, metrics.fallbacks)
}

func TestGenerateRecipeFallsBackOnInvalidPayload(t *testing.T) {
	repo := &stubRecipeRepo{}
	ai := &stubAI{recipe: &outbound.AIRecipe{Title: ""}}
	svc := newTestService(repo, &stubProductRepo{}, &stubMemberRepo{}, ai)

	rec, err := svc.GenerateRecipe(context.Background(), uuid.New(), "")

	require.NoError(t, err)
	assert.Equal(t, "Poêlée du placard", rec.Title)
	assert.False(t, rec.AIGenerated)
}

func TestGenerateRecipeBuildsRequestFromHousehold(t *testing.T) {
	foyerID := uuid.New()
	alice, err := household.NewMember(uuid.New(), foyerID, "alice@exemple.fr", "Alice")
	require.NoError(t, err)
	alice.UpdateProfile("Alice", "végétarien", true)
	bob, err := household.NewMember(uuid.New(), foyerID, "bob@exemple.fr", "Bob")
	require.NoError(t, err)

	products := &stubProductRepo{products: []*pantry.Product{stockProduct("Lentilles", 1)}}
	members := &stubMemberRepo{members: []*household.Member{alice, bob}}
	ai := &stubAI{generateErr: errors.New("skip")}
	svc := newTestService(&stubRecipeRepo{}, products, members, ai)

	_, err = svc.GenerateRecipe(context.Background(), foyerID, "lunch")

	require.NoError(t, err)
	assert.Equal(t, 2, ai.lastRequest.HouseholdSize)
	assert.Equal(t, "végétarien", ai.lastRequest.Diet)
	assert.Equal(t, "lunch", ai.lastRequest.MealType)
	require.Len(t, ai.lastRequest.Stock, 1)
	assert.Equal(t, "Lentilles", ai.lastRequest.Stock[0].Name)
}

func TestFallbackRecipeSkipsOutOfStockProducts(t *testing.T) {
	rec := FallbackRecipe(uuid.New(), []*pantry.Product{
		stockProduct("Pâtes", 0),
		stockProduct("Tomates", 4),
	}, "")

	require.Len(t, rec.Ingredients, 1)
	assert.Equal(t, "Tomates", rec.Ingredients[0].Name)
}

func TestListRecipesReturnsStored(t *testing.T) {
	foyerID := uuid.New()
	repo := &stubRecipeRepo{stored: []*domain.Recipe{
		testutils.BuildRecipe(foyerID),
		testutils.BuildRecipe(foyerID),
	}}
	svc := newTestService(repo, &stubProductRepo{}, &stubMemberRepo{}, &stubAI{})

	result := svc.ListRecipes(context.Background(), foyerID)

	assert.False(t, result.Degraded())
	assert.Len(t, result.Data, 2)
}

func TestListRecipesDegradesToFallback(t *testing.T) {
	repo := &stubRecipeRepo{findErr: errors.New("connection refused")}
	svc := newTestService(repo, &stubProductRepo{}, &stubMemberRepo{}, &stubAI{})

	result := svc.ListRecipes(context.Background(), uuid.New())

	assert.True(t, result.Degraded())
	assert.NotEmpty(t, result.Data)
}

func TestGetRecipeUnknownID(t *testing.T) {
	svc := newTestService(&stubRecipeRepo{}, &stubProductRepo{}, &stubMemberRepo{}, &stubAI{})

	_, err := svc.GetRecipe(context.Background(), uuid.New())

	assert.True(t, apperrors.IsCode(err, apperrors.CodeRecipeNotFound))
}
