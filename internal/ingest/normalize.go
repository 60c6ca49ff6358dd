package ingest

import "strings"

// Payload is a parsed submission body. Submissions arrive with a mix of
// camelCase, dotted and snake_case keys depending on which authoring tool
// produced them.
type Payload map[string]any

// aliases maps each canonical field to its recognized alias keys, in
// preference order.
var aliases = []struct {
	canonical string
	keys      []string
}{
	{"broadcastId", []string{"broadcast.id", "broadcast_id"}},
	{"timestamp", []string{"ts.utc5"}},
	{"moduleId", []string{"module.id", "module_id"}},
	{"broadcastName", []string{"broadcast.name", "broadcast_name"}},
	{"broadcastSummary", []string{"broadcast.summary", "broadcast_summary"}},
	{"broadcastRating", []string{"broadcast.rating", "broadcast_rating"}},
	{"statusId", []string{"status.id", "status_id"}},
	{"artifactGitLink", []string{"artifact.git.link", "artifact_git_link"}},
	{"tagsKeys", []string{"tags.keys", "tags_keys"}},
}

// Normalize returns a copy of payload with every canonical field back-filled
// from the first recognized alias carrying a non-empty value. An already
// present non-empty canonical value wins. No key is ever dropped: later
// consumers may still read the original alias forms. Normalize is a fixed
// point: applying it to its own output changes nothing.
func Normalize(payload Payload) Payload {
	out := make(Payload, len(payload))
	for k, v := range payload {
		out[k] = v
	}

	for _, field := range aliases {
		if hasValue(out[field.canonical]) {
			continue
		}
		for _, key := range field.keys {
			if v, ok := out[key]; ok && hasValue(v) {
				out[field.canonical] = v
				break
			}
		}
	}
	return out
}

// String returns the trimmed string value of a canonical field, or "" when
// the field is absent or not a string.
func (p Payload) String(key string) string {
	if v, ok := p[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// Tags returns the submission's tag keys in order. The field accepts either
// a JSON array or a comma-joined string; empties are dropped.
func (p Payload) Tags() []string {
	switch v := p["tagsKeys"].(type) {
	case []any:
		keys := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				keys = append(keys, strings.TrimSpace(s))
			}
		}
		return keys
	case []string:
		return v
	case string:
		var keys []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				keys = append(keys, part)
			}
		}
		return keys
	default:
		return nil
	}
}

func hasValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case []any:
		return len(t) > 0
	case []string:
		return len(t) > 0
	default:
		return true
	}
}
