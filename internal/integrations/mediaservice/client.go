package mediaservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент каталога клиентов и медиа-материалов
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetAdvertiser получает клиента по ID
func (c *Client) GetAdvertiser(ctx context.Context, clientID int64) (*Advertiser, error) {
	url := fmt.Sprintf("%s/internal/clients/%d", c.baseURL, clientID)

	var advertiser Advertiser
	if err := c.getJSON(ctx, url, &advertiser, ErrClientNotFound); err != nil {
		return nil, err
	}
	return &advertiser, nil
}

// GetMedia получает медиа-материал по ID
func (c *Client) GetMedia(ctx context.Context, mediaID int64) (*Media, error) {
	url := fmt.Sprintf("%s/internal/media/%d", c.baseURL, mediaID)

	var media Media
	if err := c.getJSON(ctx, url, &media, ErrMediaNotFound); err != nil {
		return nil, err
	}
	return &media, nil
}

// getJSON выполняет GET-запрос и декодирует JSON-ответ
func (c *Client) getJSON(ctx context.Context, url string, out interface{}, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
