package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/foyerapp/foyer/internal/domain/pantry"
	"github.com/foyerapp/foyer/internal/ports/outbound"
)

type stubClient struct {
	recipe      *outbound.AIRecipe
	generateErr error
	receipt     *outbound.AIReceipt
	parseErr    error
	calls       int
}

func (c *stubClient) GenerateRecipe(ctx context.Context, req outbound.RecipeRequest) (*outbound.AIRecipe, error) {
	c.calls++
	return c.recipe, c.generateErr
}

func (c *stubClient) ParseReceipt(ctx context.Context, imageBase64 string) (*outbound.AIReceipt, error) {
	c.calls++
	return c.receipt, c.parseErr
}

func (c *stubClient) ParseCommands(ctx context.Context, text string) ([]pantry.StockCommand, error) {
	c.calls++
	return nil, errors.New("not implemented")
}

func (c *stubClient) IdentifyProduct(ctx context.Context, imageBase64 string) (*outbound.AIProduct, error) {
	c.calls++
	return nil, errors.New("not implemented")
}

func (c *stubClient) ScoreInventoryHealth(ctx context.Context, stock []outbound.StockLine) (*outbound.HealthReport, error) {
	c.calls++
	return &outbound.HealthReport{Score: 7}, nil
}

func (c *stubClient) AdviseBudget(ctx context.Context, totals []float64) (string, error) {
	c.calls++
	return "Réduisez les plats préparés.", nil
}

type stubCache struct {
	entries map[string][]byte
}

func newStubCache() *stubCache {
	return &stubCache{entries: map[string][]byte{}}
}

func (c *stubCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, ok := c.entries[key]
	if !ok {
		return nil, errors.New("miss")
	}
	return data, nil
}

func (c *stubCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.entries[key] = value
	return nil
}

func (c *stubCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

type recordedCall struct {
	operation string
	outcome   string
}

type stubMetrics struct {
	requests []recordedCall
}

func (m *stubMetrics) RecordAIRequest(operation, outcome string) {
	m.requests = append(m.requests, recordedCall{operation: operation, outcome: outcome})
}

func (m *stubMetrics) RecordAIFallback(operation string) {}

func TestGenerateRecipeCountsOutcome(t *testing.T) {
	metrics := &stubMetrics{}
	client := &stubClient{recipe: &outbound.AIRecipe{Title: "Tajine de légumes"}}
	svc := NewService(client, nil, 0, metrics, zap.NewNop())

	_, err := svc.GenerateRecipe(context.Background(), outbound.RecipeRequest{MealType: "dinner"})

	require.NoError(t, err)
	assert.Equal(t, []recordedCall{{operation: "generate_recipe", outcome: "ok"}}, metrics.requests)
}

func TestGenerateRecipeCountsFailure(t *testing.T) {
	metrics := &stubMetrics{}
	client := &stubClient{generateErr: errors.New("timeout")}
	svc := NewService(client, nil, 0, metrics, zap.NewNop())

	_, err := svc.GenerateRecipe(context.Background(), outbound.RecipeRequest{})

	require.Error(t, err)
	assert.Equal(t, []recordedCall{{operation: "generate_recipe", outcome: "error"}}, metrics.requests)
}

func TestGenerateRecipeCacheHitSkipsClientAndMetrics(t *testing.T) {
	metrics := &stubMetrics{}
	client := &stubClient{recipe: &outbound.AIRecipe{Title: "Tajine de légumes"}}
	svc := NewService(client, newStubCache(), time.Minute, metrics, zap.NewNop())
	req := outbound.RecipeRequest{MealType: "dinner", HouseholdSize: 2}

	first, err := svc.GenerateRecipe(context.Background(), req)
	require.NoError(t, err)

	second, err := svc.GenerateRecipe(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, 1, client.calls, "the second call must come from cache")
	assert.Len(t, metrics.requests, 1, "cache hits are not collaborator calls")
}

func TestParseReceiptCountsOutcome(t *testing.T) {
	metrics := &stubMetrics{}
	client := &stubClient{parseErr: errors.New("vision model unavailable")}
	svc := NewService(client, nil, 0, metrics, zap.NewNop())

	_, err := svc.ParseReceipt(context.Background(), "base64payload")

	require.Error(t, err)
	assert.Equal(t, []recordedCall{{operation: "parse_receipt", outcome: "error"}}, metrics.requests)
}

func TestAdviseBudgetCountsOutcome(t *testing.T) {
	metrics := &stubMetrics{}
	svc := NewService(&stubClient{}, nil, 0, metrics, zap.NewNop())

	advice, err := svc.AdviseBudget(context.Background(), []float64{23.90, 41.10})

	require.NoError(t, err)
	assert.NotEmpty(t, advice)
	assert.Equal(t, []recordedCall{{operation: "budget_advice", outcome: "ok"}}, metrics.requests)
}

func TestNilMetricsIsSafe(t *testing.T) {
	client := &stubClient{receipt: &outbound.AIReceipt{StoreName: "Carrefour"}}
	svc := NewService(client, nil, 0, nil, zap.NewNop())

	out, err := svc.ParseReceipt(context.Background(), "base64payload")

	require.NoError(t, err)
	assert.Equal(t, "Carrefour", out.StoreName)
}
