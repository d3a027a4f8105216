package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sportiq/sportiq-go/internal/chatbot"
	"github.com/sportiq/sportiq-go/internal/routing"
)

func TestMetrics_AskCounterExported(t *testing.T) {
	t.Parallel()

	session := &fakeSession{answer: chatbot.Answer{
		Text:     "answer",
		Category: routing.CategoryComparative,
		Outcome:  chatbot.OutcomeAnswered,
		Passages: 4,
	}}
	h := newTestServer(t, session, &Config{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ask",
		strings.NewReader(`{"question":"Messi vs Ronaldo?"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("ask status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d, want 200", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `sportiq_ask_requests_total{category="Comparative",outcome="answered"} 1`) {
		t.Errorf("metrics output missing ask counter; got:\n%s", body)
	}
	if !strings.Contains(body, `sportiq_ask_passages_count{category="Comparative"} 1`) {
		t.Error("metrics output missing passage histogram")
	}
	if !strings.Contains(body, "sportiq_http_requests_total") {
		t.Error("metrics output missing http request counter")
	}
}

func TestMetrics_FreshRegistryPerInstance(t *testing.T) {
	t.Parallel()

	// Constructing two servers must not panic with duplicate registration.
	for i := 0; i < 2; i++ {
		_ = newTestServer(t, &fakeSession{}, &Config{})
	}
}
