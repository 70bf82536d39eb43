// Package advice реализует клиент внешнего сервиса советов по уходу за
// собаками. Любой сбой внешнего вызова гасится на месте и превращается в
// статичный совет по умолчанию: наружу ошибка не выходит, тарифная логика
// от доступности внешнего сервиса не зависит.
package advice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/godogapp/godog/internal/lib/sl"
)

// FallbackTip совет, который отдается при недоступности внешнего сервиса.
const FallbackTip = "טיול קצר בבוקר ומים טריים — הבסיס ליום טוב של כל כלב."

// Client клиент внешнего API советов.
type Client struct {
	apiURL     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient создает клиент с таймаутом на весь запрос.
func NewClient(apiURL string, log *slog.Logger) *Client {
	return &Client{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

type tipResponse struct {
	Text string `json:"text"`
}

// DailyTip возвращает совет дня. При любом сбое — сетевом, статусном или
// при пустом ответе — возвращается FallbackTip без ошибки.
func (c *Client) DailyTip(ctx context.Context) string {
	const op = "advice.DailyTip"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/tip", nil)
	if err != nil {
		c.log.Warn("failed to build advice request", slog.String("op", op), sl.Err(err))
		return FallbackTip
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("advice service unavailable", slog.String("op", op), sl.Err(err))
		return FallbackTip
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("advice service returned error", slog.String("op", op),
			sl.Err(fmt.Errorf("unexpected status: %s", resp.Status)))
		return FallbackTip
	}

	var tip tipResponse
	if err := json.NewDecoder(resp.Body).Decode(&tip); err != nil || tip.Text == "" {
		c.log.Warn("advice response malformed", slog.String("op", op))
		return FallbackTip
	}
	return tip.Text
}
