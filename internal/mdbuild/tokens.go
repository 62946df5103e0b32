package mdbuild

import "strings"

// charsPerToken is the usual English-prose ratio for GPT-style tokenizers.
const charsPerToken = 4

// EstimateTokens gives a fast heuristic LLM token count for a markdown
// body. Character count dominated by the 4-chars-per-token rule, with the
// word count as a floor so that link- and code-dense documents are not
// underestimated.
func EstimateTokens(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}

	estimate := len(trimmed) / charsPerToken
	if words := len(strings.Fields(trimmed)); words > estimate {
		estimate = words
	}
	if estimate == 0 {
		estimate = 1
	}
	return estimate
}
