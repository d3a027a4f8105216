// Package routing implements the question-routing core of sportiq: a
// keyword-based query classifier, a per-category retrieval strategy table,
// and a decision router that dispatches each question to the matching
// retrieval strategy. The router is a pure function of the question text and
// the index contents; no state is retained between calls.
package routing

// Category is the routing tag assigned to a question. It determines which
// retrieval parameters apply. Exactly one Category is assigned per question.
type Category string

const (
	// CategoryFactual marks direct questions seeking facts. It is also the
	// default when no other rule matches.
	CategoryFactual Category = "Factual"

	// CategoryComparative marks questions that compare two or more entities.
	CategoryComparative Category = "Comparative"

	// CategoryAnalytical marks questions that require reasoning or tactics.
	CategoryAnalytical Category = "Analytical"

	// CategoryNonSport marks questions outside the sports domain. Retrieval
	// is skipped entirely for these.
	CategoryNonSport Category = "Non-Sport"
)

// String returns the category tag as a plain string.
func (c Category) String() string { return string(c) }
