package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/gestor-financeiro/internal/config"
)

// Engine extracts a spending record from natural-language text
type Engine interface {
	Extract(ctx context.Context, texto string) Result
}

// Client is an Engine backed by an OpenAI-compatible chat-completion endpoint.
// It holds only fixed configuration; calls share nothing beyond the HTTP client.
type Client struct {
	logger     *slog.Logger
	httpClient *http.Client
	endpoint   string
	model      string
	apiKey     string
}

// NewClient creates an extraction client for the configured endpoint
func NewClient(logger *slog.Logger, cfg *config.LLMConfig) *Client {
	return &Client{
		logger:     logger,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		endpoint:   strings.TrimRight(cfg.URL, "/") + "/chat/completions",
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Extract sends the text to the model and coerces its reply into a Result.
// Empty input fails immediately without contacting the endpoint.
func (c *Client) Extract(ctx context.Context, texto string) Result {
	texto = strings.TrimSpace(texto)
	if texto == "" {
		return Failed(FailureEmptyInput, "")
	}

	content, err := c.complete(ctx, texto)
	if err != nil {
		if isUnavailable(err) {
			c.logger.Warn("llm endpoint unreachable", "error", err)
			return Failed(FailureServiceUnavailable, "")
		}
		c.logger.Error("llm call failed", "error", err)
		return Failed(FailureProcessing, err.Error())
	}

	result := parseReply(content)
	if !result.OK() {
		c.logger.Debug("extraction did not produce a record", "erro", result.ErroTag())
	}
	return result
}

// complete performs one chat-completion round trip and returns the reply text
func (c *Client) complete(ctx context.Context, texto string) (string, error) {
	reqBody := chatRequest{
		Model:       c.model,
		Temperature: 0,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: texto},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal llm request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to build llm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read llm response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode llm response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", errors.New("llm response contained no choices")
	}

	return result.Choices[0].Message.Content, nil
}

// isUnavailable reports whether the transport error smells like a
// connectivity or timeout problem rather than a processing one
func isUnavailable(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection") || strings.Contains(msg, "timeout")
}
