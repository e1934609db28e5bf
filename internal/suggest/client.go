package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"project-board-api/internal/assign"
)

var (
	apiURL = getEnv("SUGGESTION_API_URL", "")
	apiKey = getEnv("SUGGESTION_API_KEY", "")
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Client calls an OpenAI-compatible chat completion endpoint to get an
// assignment suggestion. The response is treated as pure advice: any error,
// timeout, or malformed body surfaces as an error to the resolver, which
// falls back to its workload heuristic.
type Client struct {
	httpClient *http.Client
	url        string
	key        string
}

// NewClientFromEnv returns a configured client, or nil when no endpoint is
// configured. A nil client disables suggestions entirely.
func NewClientFromEnv() *Client {
	if apiURL == "" {
		return nil
	}
	return NewClient(apiURL, apiKey)
}

func NewClient(url, key string) *Client {
	return &Client{
		// The timeout bounds the advisory call so a hung endpoint cannot
		// stall task creation.
		httpClient: &http.Client{Timeout: 10 * time.Second},
		url:        url,
		key:        key,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
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

// Suggest implements assign.Suggester.
func (c *Client) Suggest(ctx context.Context, title, description string, candidates []assign.Candidate) (string, error) {
	if c == nil {
		return "", errors.New("suggestion client not configured")
	}

	var sb strings.Builder
	sb.WriteString("Pick the best team member for this task. Answer with just their name.\n")
	fmt.Fprintf(&sb, "Task: %s\n", title)
	if description != "" {
		fmt.Fprintf(&sb, "Details: %s\n", description)
	}
	sb.WriteString("Team:\n")
	for _, cand := range candidates {
		fmt.Fprintf(&sb, "- %s (%s, %d tasks completed)\n", cand.Name, cand.Role, cand.CompletedCount)
	}

	body, err := json.Marshal(chatRequest{
		Model:    getEnv("SUGGESTION_MODEL", "gpt-4o-mini"),
		Messages: []chatMessage{{Role: "user", Content: sb.String()}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.key != "" {
		req.Header.Set("Authorization", "Bearer "+c.key)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("suggestion endpoint returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("suggestion response contained no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
