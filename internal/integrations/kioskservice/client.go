package kioskservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент реестра киосков
// Данные киосков меняются редко, а генерация сетки слотов запрашивает их
// на каждый запрос, поэтому ответы кэшируются с коротким TTL
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *gocache.Cache
	log        Logger
}

// NewClient создает новый экземпляр клиента реестра киосков
func NewClient(baseURL string, timeout time.Duration, cacheTTL time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache: gocache.New(cacheTTL, 2*cacheTTL),
		log:   log,
	}
}

// GetKiosk получает киоск по ID, используя кэш
func (c *Client) GetKiosk(ctx context.Context, kioskID int64) (*Kiosk, error) {
	cacheKey := fmt.Sprintf("kiosk:%d", kioskID)

	if cached, ok := c.cache.Get(cacheKey); ok {
		kiosk := cached.(*Kiosk)
		return kiosk, nil
	}

	url := fmt.Sprintf("%s/internal/kiosks/%d", c.baseURL, kioskID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrKioskNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var kiosk Kiosk
	if err := json.NewDecoder(resp.Body).Decode(&kiosk); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.cache.Set(cacheKey, &kiosk, gocache.DefaultExpiration)
	c.log.Info("GetKiosk: fetched kiosk id=%d (%s) from registry", kiosk.ID, kiosk.Name)

	return &kiosk, nil
}
