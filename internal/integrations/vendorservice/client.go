package vendorservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с каталогом салонов VendorService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента VendorService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetVendor получает салон по ID (расписание работы, менеджеры)
func (c *Client) GetVendor(ctx context.Context, vendorID int64) (*Vendor, error) {
	url := fmt.Sprintf("%s/internal/vendors/%d", c.baseURL, vendorID)

	var vendor Vendor
	if err := c.getJSON(ctx, url, &vendor); err != nil {
		return nil, err
	}

	return &vendor, nil
}

// GetService получает услугу салона вместе с ее дополнительными услугами
func (c *Client) GetService(ctx context.Context, vendorID, serviceID int64) (*Service, error) {
	url := fmt.Sprintf("%s/internal/vendors/%d/services/%d", c.baseURL, vendorID, serviceID)

	var service Service
	if err := c.getJSON(ctx, url, &service); err != nil {
		return nil, err
	}

	return &service, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ
func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
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

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return c.notFoundError(url)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid request parameters", ErrInvalidResponse)
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

// notFoundError различает "салон не найден" и "услуга не найдена" по форме URL
func (c *Client) notFoundError(url string) error {
	if strings.Contains(url, "/services/") {
		return ErrServiceNotFound
	}
	return ErrVendorNotFound
}
