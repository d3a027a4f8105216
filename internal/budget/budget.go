// Package budget provides token budget estimation and context trimming for
// the sportiq answering pipeline. Because the pipeline supports multiple LLM
// backends with different tokenizers, this package uses a conservative
// character-based heuristic: 1 token ≈ 4 characters (English prose). This
// deliberately under-estimates token counts to leave headroom for
// model-specific overhead.
package budget

const (
	// charsPerToken is the conservative character-to-token ratio used for
	// estimation. 4 chars/token is standard for English; using 3 would be
	// more aggressive but risks overflowing small context windows.
	charsPerToken = 4

	// DefaultMaxContextTokens is the default budget for the retrieved
	// context block injected into the prompt. Conservative enough to fit
	// within 8k-context models together with the template and question.
	DefaultMaxContextTokens = 6000
)

// Estimate returns a rough token count for s using the character heuristic.
func Estimate(s string) int {
	n := len(s) / charsPerToken
	if n == 0 && len(s) > 0 {
		return 1
	}
	return n
}

// TruncateText cuts s so its estimated token count fits within maxTokens.
// The cut lands on a rune boundary; a multi-byte rune is never split.
// Returns s unchanged when it already fits or when maxTokens is not positive.
func TruncateText(s string, maxTokens int) string {
	if maxTokens <= 0 || Estimate(s) <= maxTokens {
		return s
	}

	limit := maxTokens * charsPerToken
	runes := []rune(s)
	out := make([]rune, 0, len(runes))
	size := 0
	for _, r := range runes {
		size += len(string(r))
		if size > limit {
			break
		}
		out = append(out, r)
	}
	return string(out)
}
