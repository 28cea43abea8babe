// Package openai provides the OpenAI-compatible chat-completions client
// behind the AI adapter. Every operation sends a natural-language prompt
// plus a strict JSON output contract and parses the single JSON payload in
// the reply.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/foyerapp/foyer/internal/domain/pantry"
	"github.com/foyerapp/foyer/internal/infrastructure/config"
	"github.com/foyerapp/foyer/internal/ports/outbound"
	"go.uber.org/zap"
)

// ErrNotConfigured reports a missing API key. It fails only the AI-backed
// operation that hit it.
var ErrNotConfigured = fmt.Errorf("AI API key not configured")

// Client implements outbound.AIService against any OpenAI-compatible
// chat-completions endpoint
type Client struct {
	cfg    config.AIConfig
	client *http.Client
	logger *zap.Logger
}

// NewClient creates the AI client
func NewClient(cfg config.AIConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger: logger.Named("openai-client"),
	}
}

// Chat completion wire structures

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []messagePart `json:"content"`
}

type messagePart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// GenerateRecipe asks for a recipe built from the household stock
func (c *Client) GenerateRecipe(ctx context.Context, req outbound.RecipeRequest) (*outbound.AIRecipe, error) {
	system := `You are a household cooking assistant. Respond with ONLY a valid JSON object, no markdown, no extra text, in this exact format:
{
  "title": "Recipe name",
  "description": "One short sentence",
  "ingredients": [{"name": "ingredient", "quantity": "200 g"}],
  "steps": ["Step 1", "Step 2"],
  "prep_time": "25 min",
  "calories": 450,
  "servings": 2
}
All fields are required. Use only ingredients plausibly available from the stock listed by the user.`

	var sb strings.Builder
	sb.WriteString("Create a recipe")
	if req.MealType != "" {
		fmt.Fprintf(&sb, " for %s", req.MealType)
	}
	fmt.Fprintf(&sb, " for a household of %d", req.HouseholdSize)
	if req.Diet != "" {
		fmt.Fprintf(&sb, " following a %s diet", req.Diet)
	}
	sb.WriteString(".\nCurrent stock:\n")
	for _, line := range req.Stock {
		fmt.Fprintf(&sb, "- %s: %g %s\n", line.Name, line.Quantity, line.Unit)
	}

	content, err := c.callChat(ctx, c.cfg.Model, system, textMessage(sb.String()))
	if err != nil {
		return nil, err
	}

	var out outbound.AIRecipe
	if err := parseJSONPayload(content, &out); err != nil {
		return nil, err
	}
	if out.Title == "" {
		return nil, fmt.Errorf("recipe payload missing title")
	}
	return &out, nil
}

// ParseReceipt extracts a structured receipt from a photo
func (c *Client) ParseReceipt(ctx context.Context, imageBase64 string) (*outbound.AIReceipt, error) {
	system := `You extract grocery receipts. Respond with ONLY a valid JSON object in this exact format:
{
  "store_name": "Store",
  "date": "2026-01-31",
  "total": 42.50,
  "items": [{"name": "Milk", "quantity": 2, "unit": "L", "category": "Dairy", "price": 2.30}]
}
All fields are required. date is ISO formatted. Keep item names as printed on the receipt.`

	content, err := c.callChat(ctx, c.cfg.VisionModel, system, imageMessage("Extract this receipt.", imageBase64))
	if err != nil {
		return nil, err
	}

	var out outbound.AIReceipt
	if err := parseJSONPayload(content, &out); err != nil {
		return nil, err
	}
	if out.StoreName == "" {
		return nil, fmt.Errorf("receipt payload missing store name")
	}
	return &out, nil
}

// ParseCommands turns free text into stock commands
func (c *Client) ParseCommands(ctx context.Context, text string) ([]pantry.StockCommand, error) {
	system := `You convert household stock instructions into commands. Respond with ONLY a valid JSON array in this exact format:
[{"action": "add", "item": "rice", "quantity": 1, "unit": "kg"}]
action is one of "add", "remove", "update". unit may be empty. Quantities are numbers.`

	content, err := c.callChat(ctx, c.cfg.Model, system, textMessage(text))
	if err != nil {
		return nil, err
	}

	var wire []struct {
		Action   string  `json:"action"`
		Item     string  `json:"item"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
	}
	if err := parseJSONPayload(content, &wire); err != nil {
		return nil, err
	}

	commands := make([]pantry.StockCommand, 0, len(wire))
	for _, w := range wire {
		commands = append(commands, pantry.StockCommand{
			Action:   pantry.CommandAction(w.Action),
			Item:     w.Item,
			Quantity: w.Quantity,
			Unit:     w.Unit,
		})
	}
	return commands, nil
}

// IdentifyProduct recognizes a single product from a photo
func (c *Client) IdentifyProduct(ctx context.Context, imageBase64 string) (*outbound.AIProduct, error) {
	system := `You identify grocery products from photos. Respond with ONLY a valid JSON object in this exact format:
{"name": "Tomatoes", "quantity": 1, "unit": "kg", "category": "Produce"}`

	content, err := c.callChat(ctx, c.cfg.VisionModel, system, imageMessage("Identify this product.", imageBase64))
	if err != nil {
		return nil, err
	}

	var out outbound.AIProduct
	if err := parseJSONPayload(content, &out); err != nil {
		return nil, err
	}
	if out.Name == "" {
		return nil, fmt.Errorf("product payload missing name")
	}
	return &out, nil
}

// ScoreInventoryHealth rates the household stock
func (c *Client) ScoreInventoryHealth(ctx context.Context, stock []outbound.StockLine) (*outbound.HealthReport, error) {
	system := `You rate how well stocked a household pantry is. Respond with ONLY a valid JSON object in this exact format:
{"score": 72, "summary": "One or two sentences"}
score is an integer from 0 to 100.`

	var sb strings.Builder
	sb.WriteString("Current stock:\n")
	for _, line := range stock {
		fmt.Fprintf(&sb, "- %s: %g %s\n", line.Name, line.Quantity, line.Unit)
	}

	content, err := c.callChat(ctx, c.cfg.Model, system, textMessage(sb.String()))
	if err != nil {
		return nil, err
	}

	var out outbound.HealthReport
	if err := parseJSONPayload(content, &out); err != nil {
		return nil, err
	}
	if out.Score < 0 || out.Score > 100 {
		return nil, fmt.Errorf("health score %d out of range", out.Score)
	}
	return &out, nil
}

// AdviseBudget produces spending advice from recent receipt totals
func (c *Client) AdviseBudget(ctx context.Context, totals []float64) (string, error) {
	system := `You give short practical grocery budget advice. Respond with ONLY a valid JSON object in this exact format:
{"advice": "Two or three sentences"}`

	var sb strings.Builder
	sb.WriteString("Recent receipt totals in euros:\n")
	for _, total := range totals {
		fmt.Fprintf(&sb, "- %.2f\n", total)
	}

	content, err := c.callChat(ctx, c.cfg.Model, system, textMessage(sb.String()))
	if err != nil {
		return "", err
	}

	var out struct {
		Advice string `json:"advice"`
	}
	if err := parseJSONPayload(content, &out); err != nil {
		return "", err
	}
	return out.Advice, nil
}

// callChat runs one chat completion and returns the raw reply content
func (c *Client) callChat(ctx context.Context, model, system string, user chatMessage) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrNotConfigured
	}

	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: []messagePart{{Type: "text", Text: system}}},
			user,
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	c.logger.Debug("chat completion succeeded",
		zap.String("model", model),
		zap.Int("total_tokens", chatResp.Usage.TotalTokens))

	return chatResp.Choices[0].Message.Content, nil
}

func textMessage(text string) chatMessage {
	return chatMessage{
		Role:    "user",
		Content: []messagePart{{Type: "text", Text: text}},
	}
}

func imageMessage(text, imageBase64 string) chatMessage {
	return chatMessage{
		Role: "user",
		Content: []messagePart{
			{Type: "text", Text: text},
			{Type: "image_url", ImageURL: &imageURL{URL: "data:image/jpeg;base64," + imageBase64}},
		},
	}
}

// parseJSONPayload finds the JSON object or array in the reply and decodes
// it. Models sometimes wrap the payload in prose or code fences.
func parseJSONPayload(content string, v any) error {
	content = strings.TrimSpace(content)

	start := strings.IndexAny(content, "{[")
	if start == -1 {
		return fmt.Errorf("no JSON payload in response")
	}

	var end int
	if content[start] == '{' {
		end = strings.LastIndex(content, "}")
	} else {
		end = strings.LastIndex(content, "]")
	}
	if end <= start {
		return fmt.Errorf("no JSON payload in response")
	}

	if err := json.Unmarshal([]byte(content[start:end+1]), v); err != nil {
		return fmt.Errorf("failed to parse JSON payload: %w", err)
	}
	return nil
}
