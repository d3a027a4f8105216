// Package chatbot implements the answering session: the externally visible
// entry point that turns a question into a displayable answer. The session
// consults the decision router for retrieved passages, formats them into the
// fixed prompt template, invokes the generative backend once, and
// post-processes the output. Every per-question failure resolves to a
// user-displayable string — Answer never surfaces an error to the caller.
package chatbot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sportiq/sportiq-go/internal/budget"
	"github.com/sportiq/sportiq-go/internal/logging"
	"github.com/sportiq/sportiq-go/internal/rag"
	"github.com/sportiq/sportiq-go/internal/routing"
)

// promptTemplate is the fixed template every sport question is answered
// through. It instructs the model to answer only from the supplied context
// and to admit insufficient information rather than fabricate.
const promptTemplate = `You are an expert sports assistant. Use the following pieces of context to answer the user's question.
If you don't know the answer from the context provided, just say that you don't have enough information.
Keep the answer concise and relevant.

Context:
%s

Question:
%s

Answer:`

// Fixed response strings. These are part of the external contract: callers
// and tests match them verbatim.
const (
	// RefusalMessage is returned for non-sport questions, with no retrieval
	// or generation performed.
	RefusalMessage = "I am a sports intelligence chatbot and can only answer questions related to sports. Please ask me something about sports!"

	// FallbackMessage replaces empty or insufficient-information completions.
	FallbackMessage = "I couldn't find a specific answer in my knowledge base. Can you try rephrasing the question?"

	// ApologyMessage replaces the answer when the generation call itself fails.
	ApologyMessage = "Sorry, something went wrong while answering your question. Please try again."

	// noContextPlaceholder stands in for the context block when retrieval
	// returns no passages.
	noContextPlaceholder = "No relevant information found in the knowledge base."

	// insufficientMarker is the case-insensitive substring that identifies a
	// model refusal in the generated text.
	insufficientMarker = "don't have enough information"
)

// Outcome labels how an answer was produced, for logging and metrics.
const (
	// OutcomeAnswered is a model completion returned verbatim.
	OutcomeAnswered = "answered"
	// OutcomeRefused is the fixed non-sport refusal.
	OutcomeRefused = "refused"
	// OutcomeFallback replaced an empty or insufficient completion.
	OutcomeFallback = "fallback"
	// OutcomeError replaced a failed generation call.
	OutcomeError = "error"
)

// Answer is the result of a single question.
type Answer struct {
	// Text is the user-displayable answer.
	Text string
	// Category is the routing tag the question was classified under.
	Category routing.Category
	// Outcome labels how Text was produced (answered, refused, fallback, error).
	Outcome string
	// Passages is the number of retrieved passages that fed the prompt.
	// Zero for refused questions and for questions with no relevant passages.
	Passages int
}

// Config holds the dependencies required to construct a Session.
type Config struct {
	// Router dispatches questions to the retrieval strategies.
	Router *routing.Router

	// Generator is the generative text backend.
	Generator Generator

	// MaxContextTokens caps the estimated token size of the retrieved
	// context block. Defaults to budget.DefaultMaxContextTokens if zero.
	MaxContextTokens int
}

// Session owns a router (and through it the index handle) and a generative
// backend for the lifetime of the process. It keeps no per-question state:
// answers are not cached and no conversation memory is retained across calls.
type Session struct {
	// router dispatches questions to the retrieval strategies.
	router *routing.Router

	// generator is the generative text backend.
	generator Generator

	// maxContextTokens caps the retrieved context block size.
	maxContextTokens int
}

// NewSession constructs a Session from the provided Config. Missing
// dependencies are initialization-level errors: they fail construction hard
// rather than degrading per question.
func NewSession(cfg *Config) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("chatbot: config must not be nil")
	}
	if cfg.Router == nil {
		return nil, fmt.Errorf("chatbot: router must not be nil")
	}
	if cfg.Generator == nil {
		return nil, fmt.Errorf("chatbot: generator must not be nil")
	}

	maxCtx := cfg.MaxContextTokens
	if maxCtx <= 0 {
		maxCtx = budget.DefaultMaxContextTokens
	}

	return &Session{
		router:           cfg.Router,
		generator:        cfg.Generator,
		maxContextTokens: maxCtx,
	}, nil
}

// Ask answers a single question. The question is classified exactly once (by
// the router); non-sport questions short-circuit to the fixed refusal before
// any retrieval or generation. For sport questions the retrieved passages are
// formatted into the prompt template and the backend is invoked once. Failed
// or insufficient generations are downgraded to fixed fallback strings.
func (s *Session) Ask(ctx context.Context, question string) Answer {
	log := logging.FromContext(ctx)

	docs, category := s.router.Route(ctx, question)

	if category == routing.CategoryNonSport {
		log.Warn("chatbot: non-sport question, replying with refusal")
		return Answer{Text: RefusalMessage, Category: category, Outcome: OutcomeRefused}
	}

	contextBlock := formatPassages(docs)
	contextBlock = budget.TruncateText(contextBlock, s.maxContextTokens)

	prompt := fmt.Sprintf(promptTemplate, contextBlock, question)

	output, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Error("chatbot: generation failed", slog.Any("error", err))
		return Answer{Text: ApologyMessage, Category: category, Outcome: OutcomeError, Passages: len(docs)}
	}

	output = strings.TrimSpace(output)
	if output == "" || strings.Contains(strings.ToLower(output), insufficientMarker) {
		log.Info("chatbot: empty or insufficient completion, replying with fallback")
		return Answer{Text: FallbackMessage, Category: category, Outcome: OutcomeFallback, Passages: len(docs)}
	}

	return Answer{Text: output, Category: category, Outcome: OutcomeAnswered, Passages: len(docs)}
}

// formatPassages concatenates passage texts with blank-line separators into a
// single context block. Empty retrieval yields the fixed placeholder so the
// template always receives some context text.
func formatPassages(docs []rag.Document) string {
	if len(docs) == 0 {
		return noContextPlaceholder
	}
	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		parts = append(parts, doc.Content)
	}
	return strings.Join(parts, "\n\n")
}
