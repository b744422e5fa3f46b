package domain

import (
	"fmt"
	"strings"
)

// FieldString renders a field value as plain text. Reference values are
// resolved to the referenced record's name fields; mailto links are reduced
// to the bare address; scalars are stringified.
func FieldString(value any) string {
	if value == nil {
		return ""
	}

	if obj, ok := value.(map[string]any); ok {
		if fields, ok := obj["fields"].(map[string]any); ok {
			for _, key := range []string{"name", "nazev", "title"} {
				if v, ok := fields[key]; ok {
					if s := FieldString(v); s != "" {
						return s
					}
				}
			}
			return ""
		}
		if href, ok := obj["href"].(string); ok {
			if isMailto, _ := obj["isMailto"].(bool); isMailto {
				return strings.TrimPrefix(href, "mailto:")
			}
		}
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case float64:
		// JSON numbers decode as float64; render integers without decimals.
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
