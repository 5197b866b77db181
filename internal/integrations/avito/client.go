package avito

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// userAgent представление сервиса при запросах к Авито
const userAgent = "LesnoyDomik-CalSync/1.0"

// maxCalendarBytes защита от аномально большого ответа внешнего календаря
const maxCalendarBytes = 4 << 20

// Client клиент для скачивания iCal-календаря занятости с Авито.
// Фид — недоверенный вход: валидация формата выполняется вызывающей стороной.
type Client struct {
	icalURL    string
	httpClient *http.Client
}

// NewClient создает новый экземпляр клиента Авито
func NewClient(icalURL string, timeout time.Duration) *Client {
	return &Client{
		icalURL: icalURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchCalendar скачивает ICS-файл календаря занятости
func (c *Client) FetchCalendar(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.icalURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP %d %s", ErrBadStatus, resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCalendarBytes))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read body: %v", ErrFetchFailed, err)
	}

	return string(body), nil
}
