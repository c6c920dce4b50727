package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/egor/agentdash/models"
)

// Client представляет клиента для взаимодействия с бэкендом чатов.
// Контракт бэкенда: GET /chats/all, GET /chats/{employee}, POST /chats/send.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient создаёт клиента с явным адресом и тайм-аутом
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// NewClientFromEnv создаёт клиента по переменным окружения.
// URL из CHAT_BACKEND_URL, тайм-аут из CHAT_BACKEND_TIMEOUT или по умолчанию 15s.
func NewClientFromEnv() *Client {
	baseURL := os.Getenv("CHAT_BACKEND_URL")
	if baseURL == "" {
		baseURL = "http://localhost:9000"
	}

	timeout := 15 * time.Second
	if t := os.Getenv("CHAT_BACKEND_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	return NewClient(baseURL, timeout)
}

// FetchRoster запрашивает список сотрудников
func (c *Client) FetchRoster(ctx context.Context) (models.RosterPayload, error) {
	var payload models.RosterPayload

	endpoint := fmt.Sprintf("%s/chats/all", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return payload, fmt.Errorf("create HTTP request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return payload, fmt.Errorf("roster request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return payload, fmt.Errorf("roster request: status %d, body: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return payload, fmt.Errorf("decode roster response: %w", err)
	}
	return payload, nil
}

// FetchConversation запрашивает историю переписки с сотрудником
func (c *Client) FetchConversation(ctx context.Context, employee string) (models.ChatPayload, error) {
	var payload models.ChatPayload

	endpoint := fmt.Sprintf("%s/chats/%s", c.baseURL, url.PathEscape(employee))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return payload, fmt.Errorf("create HTTP request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return payload, fmt.Errorf("conversation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return payload, fmt.Errorf("conversation request: status %d, body: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return payload, fmt.Errorf("decode conversation response: %w", err)
	}
	return payload, nil
}

// Send доставляет сообщение бэкенду. Тело ответа игнорируется,
// о приёме говорит только статус.
func (c *Client) Send(ctx context.Context, employee string, msg models.Message) error {
	reqBody := models.SendRequest{
		Employee: employee,
		Message:  msg,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal send request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/chats/send", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("send request: status %d, body: %s", resp.StatusCode, string(body))
	}
	return nil
}
