package accountservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с AccountService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента AccountService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetSitter получает профиль ситтера по ID
func (c *Client) GetSitter(ctx context.Context, sitterID int64) (*Sitter, error) {
	url := fmt.Sprintf("%s/internal/sitters/%d", c.baseURL, sitterID)

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
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid sitter ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrSitterNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var sitter Sitter
	if err := json.NewDecoder(resp.Body).Decode(&sitter); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &sitter, nil
}

// GetSitterWithGracefulDegradation получает профиль ситтера с graceful degradation.
// При недоступности AccountService возвращает ErrServiceDegraded, что позволяет
// сервису расписаний пропустить проверку профиля вместо отказа в обслуживании.
func (c *Client) GetSitterWithGracefulDegradation(ctx context.Context, sitterID int64) (*Sitter, error) {
	c.log.Info("Fetching sitter profile for sitter_id=%d", sitterID)

	sitter, err := c.GetSitter(ctx, sitterID)
	if err != nil {
		// Критичную бизнес-ошибку (ситтер не найден) пробрасываем дальше
		if err == ErrSitterNotFound {
			c.log.Info("Sitter not found for sitter_id=%d", sitterID)
			return nil, err
		}

		// Для остальных ошибок (недоступность сервиса, timeout, ошибки парсинга)
		// применяем graceful degradation и повышаем уровень логирования до ERROR,
		// чтобы быстрее заметить проблему
		c.log.Error("AccountService unavailable, applying graceful degradation for sitter_id=%d: %v", sitterID, err)
		return nil, fmt.Errorf("%w: sitter_id=%d, error=%v", ErrServiceDegraded, sitterID, err)
	}

	c.log.Info("Successfully fetched sitter profile for sitter_id=%d", sitterID)
	return sitter, nil
}
