package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Completer is a chat-completion endpoint: system + user messages in, text out.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Client calls an OpenAI-compatible chat-completion endpoint.
type Client struct {
	endpoint string
	token    string
	model    string
	hc       *http.Client
}

func NewClient(endpoint, token, model string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		model:    model,
		hc:       &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type chatRole string

const (
	systemRole chatRole = "system"
	userRole   chatRole = "user"
)

func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		}{
			{Role: string(systemRole), Content: systemPrompt},
			{Role: string(userRole), Content: userPrompt},
		},
	}

	jsonData, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api error: %s", string(body))
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse completion response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", errors.New("no response from model")
	}

	return result.Choices[0].Message.Content, nil
}
