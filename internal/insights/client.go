// Package insights asks an OpenAI-compatible chat completion endpoint for
// an analysis of a game.
package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/mmcdole/gamedeck/internal/domain"
	"github.com/mmcdole/gamedeck/internal/tracing"
)

const (
	DefaultEndpoint = "https://api.openai.com/v1/chat/completions"
	DefaultModel    = "gpt-3.5-turbo"

	maxErrorBody = 512
)

// ErrEmptyResponse indicates the provider returned no choices.
var ErrEmptyResponse = errors.New("insights provider returned no content")

// Config configures the insights client.
type Config struct {
	Endpoint        string
	APIKey          string
	Model           string
	Temperature     float64
	MaxTokens       int
	RepairTruncated bool
	Timeout         time.Duration
}

// Client implements domain.InsightProvider.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

var _ domain.InsightProvider = (*Client)(nil)

// NewClient creates an insights client. A client without an API key is
// valid; Analyze then reports a *ConfigError.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1000
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.cfg.APIKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

// Analyze requests insights for game.
func (c *Client) Analyze(ctx context.Context, game domain.GameDetail) (result *domain.Insights, err error) {
	if !c.Enabled() {
		return nil, &ConfigError{Feature: "insights", Missing: "AI_API_KEY"}
	}

	requestID := uuid.NewString()
	logger := c.logger.With("requestID", requestID, "gameID", game.ID)

	ctx, span := tracing.StartSpan(ctx, "insights.Analyze",
		attribute.Int("game.id", game.ID),
		attribute.String("request.id", requestID),
	)
	defer func() { tracing.EndSpan(span, err) }()

	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildPrompt(game)},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("X-Request-ID", requestID)

	logger.Debug("insights request", "model", c.cfg.Model)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("insights request failed", "error", err)
		return nil, fmt.Errorf("insights request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		logger.Error("insights request error", "status", resp.StatusCode)
		return nil, fmt.Errorf("insights provider error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, fmt.Errorf("failed to decode insights response: %w", err)
	}
	if len(chat.Choices) == 0 || strings.TrimSpace(chat.Choices[0].Message.Content) == "" {
		return nil, ErrEmptyResponse
	}

	choice := chat.Choices[0]
	insights, err := c.parse(choice.Message.Content)
	if err != nil {
		logger.Warn("insights parse failed", "finishReason", choice.FinishReason, "error", err)
		return nil, err
	}

	logger.Info("insights ready", "duration", time.Since(start))
	return insights, nil
}

// parse decodes content strictly, then once more after repair if enabled.
func (c *Client) parse(content string) (*domain.Insights, error) {
	var out domain.Insights
	err := json.Unmarshal([]byte(strings.TrimSpace(content)), &out)
	if err == nil {
		return &out, nil
	}
	if !c.cfg.RepairTruncated {
		return nil, newParseError(content, err)
	}

	repaired := repairJSON(content)
	var fixed domain.Insights
	if rerr := json.Unmarshal([]byte(repaired), &fixed); rerr != nil {
		return nil, newParseError(content, rerr)
	}
	c.logger.Debug("repaired insights response")
	return &fixed, nil
}
