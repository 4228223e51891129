package senders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Krimson/exstats/emulator/internal/models"
	"golang.org/x/time/rate"
)

// HTTPSender отправляет показания в API устройства трекера
type HTTPSender struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter

	mu      sync.RWMutex
	metrics SenderMetrics
}

// SenderMetrics содержит метрики отправки
type SenderMetrics struct {
	TotalSent   int           `json:"total_sent"`
	TotalFailed int           `json:"total_failed"`
	LastLatency time.Duration `json:"last_latency"`
}

type stepsPayload struct {
	Count int `json:"count"`
}

// NewHTTPSender создает отправителя; requestsPerSecond <= 0 - без ограничения
func NewHTTPSender(baseURL string, requestsPerSecond float64) *HTTPSender {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return &HTTPSender{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
		limiter: rate.NewLimiter(limit, 3),
	}
}

// Send передает GPS, шаги и пульс тремя запросами
func (h *HTTPSender) Send(ctx context.Context, data models.Sample) error {
	requests := []struct {
		path string
		body interface{}
	}{
		{"/api/device/gps", data.Position},
		{"/api/device/steps", stepsPayload{Count: data.Steps}},
		{"/api/device/hrm", data.HeartRate},
	}

	for _, req := range requests {
		if err := h.post(ctx, req.path, req.body); err != nil {
			h.recordFailure()
			return err
		}
	}
	return nil
}

func (h *HTTPSender) post(ctx context.Context, path string, body interface{}) error {
	if err := h.limiter.Wait(ctx); err != nil {
		return err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: POST %s: %v", ErrSendFailed, path, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: POST %s: status %d", ErrSendFailed, path, resp.StatusCode)
	}

	h.mu.Lock()
	h.metrics.TotalSent++
	h.metrics.LastLatency = time.Since(start)
	h.mu.Unlock()
	return nil
}

func (h *HTTPSender) recordFailure() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.metrics.TotalFailed++
}

// Validate проверяет доступность трекера через каталог статистик
func (h *HTTPSender) Validate() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+"/api/stats", nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotReady, err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotReady, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: tracker answered %d", ErrNotReady, resp.StatusCode)
	}
	return nil
}

func (h *HTTPSender) Close() error {
	h.client.CloseIdleConnections()
	return nil
}

// GetMetrics возвращает метрики отправки
func (h *HTTPSender) GetMetrics() SenderMetrics {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.metrics
}
