package routing

// Per-category retrieval budgets. The three strategies share one underlying
// nearest-neighbor lookup and differ only in how many passages they request:
// comparative questions pull more passages to cover both entities, analytical
// questions pull a moderate amount for broader context. Query rewriting
// (entity splitting for comparative, multi-hop expansion for analytical) is
// deliberately deferred.
const (
	// TopKFactual is the passage budget for factual questions and the
	// defensive default for unrecognized categories.
	TopKFactual = 4

	// TopKComparative is the passage budget for comparative questions.
	TopKComparative = 6

	// TopKAnalytical is the passage budget for analytical questions.
	TopKAnalytical = 5
)

// strategyTopK maps each retrieving category to its passage budget.
// CategoryNonSport is intentionally absent: the router short-circuits it
// before consulting this table.
var strategyTopK = map[Category]int{
	CategoryFactual:     TopKFactual,
	CategoryComparative: TopKComparative,
	CategoryAnalytical:  TopKAnalytical,
}

// topKFor returns the passage budget for the given category, defaulting to
// the factual budget for categories missing from the table. Classify is
// exhaustive so the default should never fire, but a stale table entry must
// degrade to the simple strategy rather than panic.
func topKFor(category Category) int {
	if k, ok := strategyTopK[category]; ok {
		return k
	}
	return TopKFactual
}
