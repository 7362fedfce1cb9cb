package triage

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mc-theer/ticketd/internal/domain"
)

// FailureDraft — sentinel-значение черновика при сбое triage.
// Распознаётся точным сравнением; никогда не показывается пользователю как есть.
const FailureDraft = "AI_TRIAGE_FAILED_HUMAN_INTERVENTION_REQUIRED"

// FailureMessage — человекочитаемая замена sentinel для админского UI.
const FailureMessage = "AI Triage Failed. Human intervention required. Please provide a response manually."

const defaultTimeout = 30 * time.Second

// triagePrompt — фиксированная инструкция для AI-сервиса.
const triagePrompt = `You are a professional support ticket triager.
Analyze the support ticket and return ONLY a JSON object with the fields:
- category: a short category name, e.g. "Technical Support", "Billing", "Feature Request"
- sentiment_score: a whole number between 1 (extremely frustrated) and 10 (extremely happy)
- urgency: one of "High", "Medium", "Low"
- draft: a polite, context-aware and empathetic starting draft response for the support agent`

// Result — структурированный результат triage.
type Result struct {
	Category       string         `json:"category"`
	SentimentScore int            `json:"sentiment_score"`
	Urgency        domain.Urgency `json:"urgency"`
	Draft          string         `json:"draft"`
}

// IsFallback возвращает true, если результат — заглушка после сбоя.
func (r Result) IsFallback() bool {
	return r.Draft == FailureDraft
}

// Fallback возвращает фиксированный результат для любого сбоя triage.
func Fallback() Result {
	return Result{
		Category:       "Technical Support",
		SentimentScore: 5,
		Urgency:        domain.UrgencyLow,
		Draft:          FailureDraft,
	}
}

// Triager — интерфейс triage-вызова. Реализация не возвращает ошибку:
// сбой выражается через Fallback-результат.
type Triager interface {
	Triage(ctx context.Context, title, content string) Result
}

// Client — HTTP-клиент внешнего AI-сервиса классификации.
type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   *slog.Logger
}

// ClientConfig — конфигурация Client.
type ClientConfig struct {
	// Endpoint — URL AI-сервиса. Пустой endpoint означает, что triage
	// не сконфигурирован: каждый вызов вернёт Fallback().
	Endpoint string

	// APIKey — Bearer-токен. Опционален.
	APIKey string

	// Timeout — таймаут запроса (default: 30s).
	Timeout time.Duration

	// Logger — логгер (default: slog.Default()).
	Logger *slog.Logger
}

// NewClient создаёт новый Client.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// triageRequest — тело запроса к AI-сервису.
type triageRequest struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	Instructions string `json:"instructions"`
}

// triageResponse — ожидаемая форма ответа AI-сервиса.
type triageResponse struct {
	Category       string `json:"category"`
	SentimentScore int    `json:"sentiment_score"`
	Urgency        string `json:"urgency"`
	Draft          string `json:"draft"`
}

// Triage классифицирует тикет через внешний AI-сервис.
//
// Никогда не возвращает ошибку: отсутствие конфигурации, транспортный
// сбой и любой неожиданный ответ дают Fallback(). Решение о том, что
// с этим делать, принимает вызывающий по sentinel-значению Draft.
func (c *Client) Triage(ctx context.Context, title, content string) Result {
	if c.endpoint == "" {
		c.logger.Warn("triage endpoint not configured, returning fallback")
		return Fallback()
	}

	body, err := json.Marshal(triageRequest{
		Title:        title,
		Content:      content,
		Instructions: triagePrompt,
	})
	if err != nil {
		c.logger.Error("failed to marshal triage request", "error", err)
		return Fallback()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("failed to create triage request", "error", err)
		return Fallback()
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("triage request failed", "error", err)
		return Fallback()
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("failed to read triage response", "error", err)
		return Fallback()
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("triage service returned error status",
			"status", resp.StatusCode,
			"body", truncate(string(respBody), 200),
		)
		return Fallback()
	}

	var parsed triageResponse
	if err := json.Unmarshal(stripFences(respBody), &parsed); err != nil {
		c.logger.Warn("failed to parse triage response",
			"error", err,
			"body", truncate(string(respBody), 200),
		)
		return Fallback()
	}

	// Ответ без черновика — такая же поломка формата, как и кривой JSON
	if strings.TrimSpace(parsed.Draft) == "" {
		c.logger.Warn("triage response has empty draft")
		return Fallback()
	}

	return Result{
		Category:       strings.TrimSpace(parsed.Category),
		SentimentScore: parsed.SentimentScore,
		Urgency:        domain.ParseUrgency(parsed.Urgency),
		Draft:          strings.TrimSpace(parsed.Draft),
	}
}

// stripFences убирает markdown-ограждения вокруг JSON.
// Некоторые модели заворачивают ответ в ```json ... ``` несмотря на инструкцию.
func stripFences(body []byte) []byte {
	s := strings.TrimSpace(string(body))
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return []byte(strings.TrimSpace(s))
}

// truncate обрезает строку до указанной длины.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
