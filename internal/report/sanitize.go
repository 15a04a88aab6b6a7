package report

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// Sanitization is lossy and one-directional: IPv4 addresses lose
// their last octet, MAC addresses their last three octets, and
// username lists and default-credential findings are removed
// entirely. Re-sanitizing already-sanitized data is a no-op because
// the replacement text no longer matches either pattern.
var (
	ipv4Pattern = regexp.MustCompile(`\b(\d{1,3}\.\d{1,3}\.\d{1,3})\.\d{1,3}\b`)
	macPattern  = regexp.MustCompile(`\b([0-9A-Fa-f]{2}:[0-9A-Fa-f]{2}:[0-9A-Fa-f]{2}):[0-9A-Fa-f]{2}:[0-9A-Fa-f]{2}:[0-9A-Fa-f]{2}\b`)
)

// Keys removed outright during sanitization, at any nesting depth.
var strippedKeys = map[string]bool{
	"users":              true,
	"accounts":           true,
	"defaultCredentials": true,
}

// CloneAndSanitize deep-clones v through its JSON form and redacts
// identifying network data from the clone. The input is never
// modified.
func CloneAndSanitize(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cloning scan data: %w", err)
	}
	var clone map[string]any
	if err := json.Unmarshal(raw, &clone); err != nil {
		return nil, fmt.Errorf("cloning scan data: %w", err)
	}
	sanitized, _ := sanitizeValue(clone).(map[string]any)
	return sanitized, nil
}

// SanitizeString redacts IPv4 and MAC addresses embedded in s.
func SanitizeString(s string) string {
	s = ipv4Pattern.ReplaceAllString(s, "$1.xxx")
	s = macPattern.ReplaceAllString(s, "$1:XX:XX:XX")
	return s
}

func sanitizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for key, inner := range val {
			if strippedKeys[key] {
				delete(val, key)
				continue
			}
			val[key] = sanitizeValue(inner)
		}
		return val
	case []any:
		for i, inner := range val {
			val[i] = sanitizeValue(inner)
		}
		return val
	case string:
		return SanitizeString(val)
	default:
		return v
	}
}
