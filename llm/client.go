package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Message — одна реплика в истории диалога с моделью
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// Client представляет клиента для взаимодействия с локальной ЛЛМ-моделью
// через OpenAI-совместимый API.
type Client struct {
	apiURL string
	model  string
	client *http.Client
}

// ChatCompletionRequest описывает тело POST‑запроса к LLM API.
type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Stream      bool      `json:"stream,omitempty"`
}

// ChatCompletionChoice — один из вариантов ответа от LLM API.
type ChatCompletionChoice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// ChatCompletionResponse описывает ответ LLM API.
type ChatCompletionResponse struct {
	ID      string                 `json:"id"`
	Object  string                 `json:"object"`
	Created int64                  `json:"created"`
	Model   string                 `json:"model"`
	Choices []ChatCompletionChoice `json:"choices"`
	Usage   map[string]int         `json:"usage"`
}

// NewClient создаёт нового клиента LLM.
// Настраивается URL из LLM_API_URL, модель из LLM_MODEL и таймаут
// из LLM_API_TIMEOUT или по умолчанию 30s.
func NewClient() *Client {
	apiURL := os.Getenv("LLM_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:1234/v1"
	}

	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "gemma"
	}

	timeout := 30 * time.Second
	if t := os.Getenv("LLM_API_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	return &Client{
		apiURL: apiURL,
		model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

// GenerateReply отправляет историю диалога в LLM API и возвращает
// текст первого варианта ответа.
func (c *Client) GenerateReply(ctx context.Context, history []Message) (string, error) {
	reqBody := ChatCompletionRequest{
		Model:       c.model,
		Messages:    history,
		Temperature: 0.7,
		MaxTokens:   500,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request body: %w", err)
	}

	endpoint := fmt.Sprintf("%s/chat/completions", c.apiURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("LLM API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("LLM API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var completion ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("LLM API returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}
