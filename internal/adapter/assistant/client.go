package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"
)

// systemPrompt grounds the hosted model in the storefront FAQ. Questions
// outside this scope are refused by the model itself.
const systemPrompt = `You are an AI assistant for Cardafy, a blockchain based e-commerce with Smart Contract feature. Here are the common asked questions about Cardafy :
        1. Q : What payment method can I use?
           A : The payment method can only use ADA coin.
        2. Q : Are there any shipment fee?
           A : Yes, according to your location.
        3. Q : Can I track my shipping progress?
           A : No, you can't track your shipping progress.

        Answer user queries about Cardafy's FAQ. Do not answer questions unrelated to Cardafy. If a question is outside this scope, respond with: "I'm sorry, I can't answer that question."
`

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client streams assistant replies for a conversation.
type Client interface {
	Stream(ctx context.Context, history []Message) (io.ReadCloser, error)
}

// HTTPClient proxies conversations to a hosted language model endpoint.
type HTTPClient struct {
	baseURL    *url.URL
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

type streamRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

// NewHTTPClient creates an assistant client. Streaming responses have no
// overall timeout; the per-request context bounds them instead.
func NewHTTPClient(baseURL, model string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse assistant url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("assistant url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		model:   model,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 0,
		},
	}, nil
}

// Stream opens a streamed completion for the history, prepending the
// storefront system prompt. The caller owns the returned body.
func (c *HTTPClient) Stream(ctx context.Context, history []Message) (io.ReadCloser, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/chat/completions")

	messages := make([]Message, 0, len(history)+1)
	messages = append(messages, Message{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)

	payload, err := json.Marshal(streamRequest{Model: c.model, Messages: messages, Stream: true})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		c.logger.Error("assistant request failed",
			slog.Int("status", resp.StatusCode),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("body", string(body)),
		)
		return nil, fmt.Errorf("assistant error: %s", resp.Status)
	}

	return resp.Body, nil
}
