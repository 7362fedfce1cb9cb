package triage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mc-theer/ticketd/internal/domain"
)

func TestClient_Success(t *testing.T) {
	var receivedAuth string
	var receivedReq triageRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&receivedReq)
		json.NewEncoder(w).Encode(map[string]any{
			"category":        "Billing",
			"sentiment_score": 3,
			"urgency":         "High",
			"draft":           "I checked your invoice and the duplicate charge will be refunded within two days.",
		})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Endpoint: server.URL, APIKey: "secret"})
	result := client.Triage(context.Background(), "Double charge", "I was billed twice")

	if result.IsFallback() {
		t.Fatal("expected real result, got fallback")
	}
	if result.Category != "Billing" {
		t.Errorf("expected category Billing, got %q", result.Category)
	}
	if result.SentimentScore != 3 {
		t.Errorf("expected sentiment 3, got %d", result.SentimentScore)
	}
	if result.Urgency != domain.UrgencyHigh {
		t.Errorf("expected urgency High, got %s", result.Urgency)
	}

	// Запрос должен нести title, content и инструкцию
	if receivedReq.Title != "Double charge" || receivedReq.Content != "I was billed twice" {
		t.Errorf("unexpected request payload: %+v", receivedReq)
	}
	if receivedReq.Instructions == "" {
		t.Error("request must carry the triage instructions")
	}
	if receivedAuth != "Bearer secret" {
		t.Errorf("expected bearer auth, got %q", receivedAuth)
	}
}

func TestClient_MissingEndpoint(t *testing.T) {
	client := NewClient(ClientConfig{})
	result := client.Triage(context.Background(), "Title", "Content")

	if !result.IsFallback() {
		t.Fatal("missing endpoint must yield fallback")
	}
	if result.SentimentScore != 5 || result.Urgency != domain.UrgencyLow {
		t.Errorf("unexpected fallback values: %+v", result)
	}
	if result.Category != "Technical Support" {
		t.Errorf("expected fallback category Technical Support, got %q", result.Category)
	}
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	server.Close() // закрываем сразу — соединение откажет

	client := NewClient(ClientConfig{Endpoint: server.URL})
	result := client.Triage(context.Background(), "Title", "Content")

	if !result.IsFallback() {
		t.Error("transport error must yield fallback")
	}
}

func TestClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Endpoint: server.URL})
	if result := client.Triage(context.Background(), "Title", "Content"); !result.IsFallback() {
		t.Error("non-2xx status must yield fallback")
	}
}

func TestClient_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("definitely not json"))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Endpoint: server.URL})
	if result := client.Triage(context.Background(), "Title", "Content"); !result.IsFallback() {
		t.Error("malformed body must yield fallback")
	}
}

func TestClient_EmptyDraft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"category": "Billing", "sentiment_score": 5, "urgency": "Low", "draft": ""})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Endpoint: server.URL})
	if result := client.Triage(context.Background(), "Title", "Content"); !result.IsFallback() {
		t.Error("empty draft must yield fallback")
	}
}

func TestClient_StripsMarkdownFences(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Модель завернула JSON в markdown несмотря на инструкцию
		w.Write([]byte("```json\n{\"category\":\"Feature Request\",\"sentiment_score\":8,\"urgency\":\"Medium\",\"draft\":\"Great idea, I have filed it for the product team to review next sprint.\"}\n```"))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Endpoint: server.URL})
	result := client.Triage(context.Background(), "Title", "Content")

	if result.IsFallback() {
		t.Fatal("fenced JSON should still parse")
	}
	if result.Category != "Feature Request" {
		t.Errorf("expected Feature Request, got %q", result.Category)
	}
	if result.Urgency != domain.UrgencyMedium {
		t.Errorf("expected Medium, got %s", result.Urgency)
	}
}

func TestClient_NormalizesUnknownUrgency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"category":        "Technical Support",
			"sentiment_score": 2,
			"urgency":         "critical", // не из нашего enum
			"draft":           "Restart the agent service and the stuck sync will resume automatically.",
		})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Endpoint: server.URL})
	result := client.Triage(context.Background(), "Title", "Content")

	if result.Urgency != domain.UrgencyLow {
		t.Errorf("unknown urgency should normalize to Low, got %s", result.Urgency)
	}
}
