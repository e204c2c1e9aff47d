package licenseserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Тело ответа больше этого размера не читаем
const maxResponseBytes = 1 << 20

// Client клиент сервера лицензий
type Client struct {
	url        string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервера лицензий
func NewClient(url string, timeout time.Duration, log Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Validate отправляет запрос проверки лицензии.
// Отказ сервера (success=false) - это валидный ответ, а не ошибка.
func (c *Client) Validate(ctx context.Context, payload *ValidateRequest) (*ValidateResponse, error) {
	if c.url == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.log.Info("LicenseServer: action=%s, source=%s, domain=%s", payload.Action, payload.Source, payload.Domain)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusBadRequest, http.StatusForbidden, http.StatusNotFound, http.StatusUnprocessableEntity:
		// Сервер отвечает JSON-ом и на отказ
	default:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var result ValidateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if resp.StatusCode != http.StatusOK {
		result.Success = false
	}

	return &result, nil
}
