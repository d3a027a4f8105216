package routing

import "strings"

// Keyword tables for the classifier rules. Matching is case-insensitive;
// "contains" rules match anywhere in the question, "prefix" rules match only
// at the start.
var (
	// comparativeKeywords mark questions that compare entities.
	comparativeKeywords = []string{"vs", "versus", "compare", "better than", "more than"}

	// analyticalKeywords mark questions that require reasoning.
	analyticalKeywords = []string{"why", "how", "what is the strategy", "explain the tactic"}

	// factualPrefixes are interrogative openers for direct fact questions.
	factualPrefixes = []string{"who", "what", "when", "where", "list", "define"}

	// nonSportKeywords detect off-domain questions. Deliberately small;
	// expanding it improves off-domain detection.
	nonSportKeywords = []string{"movie", "politics", "stock market", "cooking", "music"}
)

// rule pairs a predicate with the Category it assigns. Rules are evaluated in
// order, first match wins, so the position in the table is the tie-break.
type rule struct {
	// name identifies the rule in logs and tests.
	name string
	// match reports whether the rule fires for the lowercased question.
	match func(q string) bool
	// category is assigned when the rule fires.
	category Category
}

// rules is the ordered classification table. Note the factual prefix rule is
// checked BEFORE the non-sport keyword rule: an off-domain question that
// opens with an interrogative word ("What's the best recipe for pasta?") is
// classified Factual, not Non-Sport. That ordering is load-bearing and
// covered by tests; changing it changes which questions reach retrieval.
var rules = []rule{
	{name: "comparative", match: containsAny(comparativeKeywords), category: CategoryComparative},
	{name: "analytical", match: containsAny(analyticalKeywords), category: CategoryAnalytical},
	{name: "factual-prefix", match: startsWithAny(factualPrefixes), category: CategoryFactual},
	{name: "non-sport", match: containsAny(nonSportKeywords), category: CategoryNonSport},
}

// Classify assigns exactly one Category to a question. It is a total, pure
// function: the rule table is evaluated in order against the lowercased
// question and the first match wins. Questions matching no rule default to
// Factual so nothing is ever left unclassified.
func Classify(question string) Category {
	q := strings.ToLower(question)
	for _, r := range rules {
		if r.match(q) {
			return r.category
		}
	}
	return CategoryFactual
}

// containsAny returns a predicate reporting whether any keyword appears as a
// substring of the question.
func containsAny(keywords []string) func(string) bool {
	return func(q string) bool {
		for _, kw := range keywords {
			if strings.Contains(q, kw) {
				return true
			}
		}
		return false
	}
}

// startsWithAny returns a predicate reporting whether the question starts
// with any of the given prefixes.
func startsWithAny(prefixes []string) func(string) bool {
	return func(q string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(q, p) {
				return true
			}
		}
		return false
	}
}
