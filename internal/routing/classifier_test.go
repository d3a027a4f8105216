package routing

import "testing"

func Test_Classify_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		question string
		want     Category
	}{
		{
			name:     "comparative keyword",
			question: "Compare the careers of Pele and Maradona",
			want:     CategoryComparative,
		},
		{
			name:     "comparative vs uppercase",
			question: "Messi VS Ronaldo",
			want:     CategoryComparative,
		},
		{
			name:     "comparative better than",
			question: "Is Federer better than Nadal on grass?",
			want:     CategoryComparative,
		},
		{
			name:     "analytical why",
			question: "Why do teams use a 4-4-2 formation?",
			want:     CategoryAnalytical,
		},
		{
			name:     "analytical how",
			question: "How does the pressing game work?",
			want:     CategoryAnalytical,
		},
		{
			name:     "analytical explain the tactic",
			question: "Please explain the tactic behind tiki-taka",
			want:     CategoryAnalytical,
		},
		{
			name:     "factual who prefix",
			question: "Who won the 2018 World Cup?",
			want:     CategoryFactual,
		},
		{
			name:     "factual define prefix",
			question: "Define a hat-trick in football",
			want:     CategoryFactual,
		},
		{
			name:     "factual list prefix",
			question: "List the teams relegated in 2023",
			want:     CategoryFactual,
		},
		{
			name:     "non-sport stock market",
			question: "Tell me about the stock market.",
			want:     CategoryNonSport,
		},
		{
			name:     "non-sport cooking",
			question: "Is cooking at home cheaper?",
			want:     CategoryNonSport,
		},
		{
			name:     "default fallback",
			question: "Tell me about Pele",
			want:     CategoryFactual,
		},
		{
			name:     "empty question",
			question: "",
			want:     CategoryFactual,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tt.question); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.question, got, tt.want)
			}
		})
	}
}

// Test_Classify_RuleOrderTieBreak verifies that the comparative rule wins
// over the analytical rule when both keyword sets match, because it sits
// earlier in the table.
func Test_Classify_RuleOrderTieBreak(t *testing.T) {
	t.Parallel()

	q := "Why is Messi better than Ronaldo?"
	if got := Classify(q); got != CategoryComparative {
		t.Errorf("Classify(%q) = %s, want Comparative (comparative rule is first)", q, got)
	}
}

// Test_Classify_FactualPrefixBeatsNonSport pins the documented quirk: the
// factual prefix rule runs before the non-sport keyword rule, so an
// off-domain question opening with an interrogative word is classified
// Factual and still reaches retrieval.
func Test_Classify_FactualPrefixBeatsNonSport(t *testing.T) {
	t.Parallel()

	q := "What's the best recipe for pasta?"
	if got := Classify(q); got != CategoryFactual {
		t.Errorf("Classify(%q) = %s, want Factual (prefix rule precedes non-sport rule)", q, got)
	}
}
