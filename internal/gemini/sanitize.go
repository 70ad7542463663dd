package gemini

import (
	"encoding/json"
	"regexp"
)

// The model is instructed to answer with bare JSON, but in practice it
// sometimes wraps the object in a markdown code fence. Strip exactly one
// leading fence (optionally tagged "json") and one trailing fence line,
// including any whitespace after it; interior content is left untouched.
var fenceRe = regexp.MustCompile("^```(?:json)?\\s*|\\s*```\\s*$")

// StripFences removes a single wrapping markdown code-fence pair, if present.
func StripFences(text string) string {
	return fenceRe.ReplaceAllString(text, "")
}

// DecodeObject strips fencing and parses the remainder as a JSON object.
// Returns (nil, false) on parse failure; callers treat absence as "skip
// this page", never as a fatal condition.
func DecodeObject(text string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(StripFences(text)), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// StringField returns obj[key] if it is a string, else fallback.
func StringField(obj map[string]any, key, fallback string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return fallback
}

// ListField returns obj[key] if it is a list, else an empty list.
func ListField(obj map[string]any, key string) []any {
	if l, ok := obj[key].([]any); ok {
		return l
	}
	return nil
}

// NumberField returns obj[key] coerced to float64, else zero. JSON numbers
// decode as float64; anything else yields the zero default.
func NumberField(obj map[string]any, key string) float64 {
	if n, ok := obj[key].(float64); ok {
		return n
	}
	return 0
}
