package locqa

import (
	"encoding/json"
	"strings"
)

// ExtractJSONObject returns the first balanced brace-delimited object in
// s. The scanner is string-aware: braces inside JSON string literals do
// not affect nesting depth. Returns false if no balanced object exists.
func ExtractJSONObject(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// DecodeJSONObject extracts the first balanced JSON object from raw and
// unmarshals it into v. Returns false if no object is found or the
// object does not parse. The model's text is an untrusted, best-effort
// oracle; callers fall back to keyword scanning on failure.
func DecodeJSONObject(raw string, v any) bool {
	obj, ok := ExtractJSONObject(raw)
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(obj), v) == nil
}

// ContainsKeyword reports whether s contains the keyword,
// case-insensitively.
func ContainsKeyword(s, keyword string) bool {
	return strings.Contains(strings.ToUpper(s), strings.ToUpper(keyword))
}
