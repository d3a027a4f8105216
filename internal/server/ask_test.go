package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sportiq/sportiq-go/internal/chatbot"
	"github.com/sportiq/sportiq-go/internal/routing"
)

// fakeSession returns a canned answer and records questions it was asked.
type fakeSession struct {
	answer    chatbot.Answer
	questions []string
}

func (f *fakeSession) Ask(_ context.Context, question string) chatbot.Answer {
	f.questions = append(f.questions, question)
	return f.answer
}

// newTestServer builds a Server with a fresh metrics registry and returns its
// root handler for use with httptest.
func newTestServer(t *testing.T, session answerer, cfg *Config) http.Handler {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = testLogger()
	}
	s, err := newWithRegistry(session, cfg, prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("newWithRegistry: %v", err)
	}
	t.Cleanup(s.stopRL)
	return s.httpServer.Handler
}

func TestNew_NilSession(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, &Config{}); err == nil {
		t.Fatal("expected error for nil session")
	}
}

func TestHandleAsk_Success(t *testing.T) {
	t.Parallel()

	session := &fakeSession{answer: chatbot.Answer{
		Text:     "Messi won the 2022 World Cup with Argentina.",
		Category: routing.CategoryFactual,
		Outcome:  chatbot.OutcomeAnswered,
	}}
	h := newTestServer(t, session, &Config{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"question":"Who won the 2022 World Cup?"}`))
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp askResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Answer != session.answer.Text {
		t.Errorf("answer = %q, want %q", resp.Answer, session.answer.Text)
	}
	if resp.Category != "Factual" {
		t.Errorf("category = %q, want Factual", resp.Category)
	}
	if resp.Outcome != "answered" {
		t.Errorf("outcome = %q, want answered", resp.Outcome)
	}
	if len(session.questions) != 1 {
		t.Errorf("session asked %d times, want 1", len(session.questions))
	}
}

func TestHandleAsk_EmptyQuestion(t *testing.T) {
	t.Parallel()

	session := &fakeSession{}
	h := newTestServer(t, session, &Config{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"question":""}`))
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if len(session.questions) != 0 {
		t.Errorf("session should not be asked for an empty question")
	}
}

func TestHandleAsk_InvalidJSON(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, &fakeSession{}, &Config{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{not json`))
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleAsk_RefusalPassthrough(t *testing.T) {
	t.Parallel()

	session := &fakeSession{answer: chatbot.Answer{
		Text:     chatbot.RefusalMessage,
		Category: routing.CategoryNonSport,
		Outcome:  chatbot.OutcomeRefused,
	}}
	h := newTestServer(t, session, &Config{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"question":"What is the stock market doing?"}`))
	h.ServeHTTP(rec, req)

	var resp askResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Answer != chatbot.RefusalMessage {
		t.Errorf("answer = %q, want refusal message", resp.Answer)
	}
	if resp.Outcome != "refused" {
		t.Errorf("outcome = %q, want refused", resp.Outcome)
	}
}
