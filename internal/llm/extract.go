package llm

import (
	"fmt"
	"strings"
)

// ExtractObject isolates the JSON object embedded in a model response. The
// body is usually prose with exactly one object somewhere inside it, so the
// fast path takes everything between the first '{' and the last '}'. When
// that slice has unbalanced braces (spurious braces in trailing prose), a
// character-by-character depth scan cuts the candidate where the first
// top-level object closes.
func ExtractObject(raw string) (string, error) {
	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first == -1 || last == -1 || last < first {
		return "", fmt.Errorf("%w: no JSON object found", ErrInvalidResponse)
	}

	candidate := raw[first : last+1]
	if strings.Count(candidate, "{") == strings.Count(candidate, "}") {
		return candidate, nil
	}

	depth := 0
	for i := first; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[first : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("%w: unterminated JSON object", ErrInvalidResponse)
}
