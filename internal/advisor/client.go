package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GenerationClient is the contract with the external text-generation
// service. The engine never constructs one; callers inject whichever
// implementation they run against.
type GenerationClient interface {
	// Complete sends a system and user prompt and returns the raw response
	// text. The returned text is untrusted: it may be fenced, truncated or
	// otherwise malformed and must go through recovery before being
	// interpreted.
	Complete(ctx context.Context, system, user string) (string, error)
}

// ChatClient talks to an OpenAI-compatible chat-completions endpoint.
type ChatClient struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
	model      string
	maxTokens  int
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewChatClient builds a client for the given endpoint and model.
func NewChatClient(apiURL, apiKey, model string, maxTokens int, timeout time.Duration) *ChatClient {
	return &ChatClient{
		httpClient: &http.Client{Timeout: timeout},
		apiURL:     apiURL,
		apiKey:     apiKey,
		model:      model,
		maxTokens:  maxTokens,
	}
}

// Complete implements GenerationClient.
func (c *ChatClient) Complete(ctx context.Context, system, user string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens: c.maxTokens,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("generation service returned status %d: %s", resp.StatusCode, string(body))
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode generation response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("generation service returned no choices")
	}
	return decoded.Choices[0].Message.Content, nil
}
