// Package normalize converts raw generative-model output into usable
// values. Model replies routinely arrive with markdown fences, single
// quotes where JSON needs double quotes, or stray escape characters; the
// cleaners here apply blunt string transforms and then attempt a JSON
// parse, falling back to the cleaned text when parsing still fails.
package normalize

import (
	"encoding/json"
	"log"
	"regexp"
	"strings"
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// CleanJSON normalizes model output that was asked to be structured. It
// collapses whitespace runs, coaxes single-quoted pseudo-JSON into valid
// JSON by swapping quote characters, strips backslashes and forward
// slashes, and parses the result. On success the decoded value is
// returned; on failure the transformed string itself is returned so the
// caller always receives something usable.
//
// The slash stripping is deliberately lossy: legitimate content such as
// "1/2 cup" is altered. Callers accepted that trade to neutralize escaped
// character artifacts.
func CleanJSON(raw string) interface{} {
	cleaned := scrub(raw, true)

	var value interface{}
	if err := json.Unmarshal([]byte(cleaned), &value); err != nil {
		log.Printf("[Normalize] falling back to cleaned text, parse failed: %v", err)
		return cleaned
	}
	return value
}

// CleanText normalizes a conversational reply. It applies the same
// transforms as CleanJSON except the quote swap, which would mangle
// apostrophes in prose. A parse is still attempted so a reply that happens
// to be JSON comes back structured.
func CleanText(raw string) interface{} {
	cleaned := scrub(raw, false)

	var value interface{}
	if err := json.Unmarshal([]byte(cleaned), &value); err != nil {
		return cleaned
	}
	return value
}

// FallbackString renders a normalized value back to text: the value itself
// when normalization fell back, its JSON encoding otherwise.
func FallbackString(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}
	data, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return string(data)
}

func scrub(raw string, swapQuotes bool) string {
	s := whitespaceRuns.ReplaceAllString(raw, " ")
	s = strings.TrimSpace(s)
	if swapQuotes {
		s = strings.ReplaceAll(s, "'", `"`)
	}
	s = strings.ReplaceAll(s, `\`, "")
	s = strings.ReplaceAll(s, "/", "")
	return s
}

// GroceryDisplay formats a stored grocery list for presentation: literal
// quote and backslash characters are stripped and items are re-joined with
// two spaces after each comma. It only shapes the returned copy; the
// stored value is never rewritten, and applying it again to its own output
// yields the same text.
func GroceryDisplay(stored string) string {
	s := strings.ReplaceAll(stored, `"`, "")
	s = strings.ReplaceAll(s, `\`, "")

	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, ",  ")
}
