package generation

import (
	"encoding/json"
	"strings"
)

// IdeaSchema parameterizes sanitization: the wrapping list key, the required
// field set, which fields are list-typed, and the output cap.
type IdeaSchema struct {
	ListKey    string
	Fields     []string
	ListFields map[string]bool
	MaxCount   int
}

var ContentIdeaSchema = IdeaSchema{
	ListKey:    "ideas",
	Fields:     []string{"title", "concept", "visual_elements", "call_to_action", "why_it_works"},
	ListFields: map[string]bool{"visual_elements": true},
	MaxCount:   5,
}

var MonetizationIdeaSchema = IdeaSchema{
	ListKey:  "ideas",
	Fields:   []string{"brand_name", "collaboration_type", "pitch_angle", "taste_alignment", "why_it_works"},
	MaxCount: 3,
}

// SanitizeIdeas validates and repairs raw model output against schema. The
// payload may be an object exposing the designated list key or a bare list
// (the model sometimes drops the wrapper). Non-record elements are dropped,
// missing required fields are filled with schema-appropriate empty defaults,
// list-typed fields are coerced, and at most MaxCount ideas are returned.
// Excess ideas are discarded, never an error.
func SanitizeIdeas(raw json.RawMessage, schema IdeaSchema) []map[string]any {
	ideas := make([]map[string]any, 0, schema.MaxCount)

	for _, element := range extractList(raw, schema.ListKey) {
		if len(ideas) == schema.MaxCount {
			break
		}

		var idea map[string]any
		if err := json.Unmarshal(element, &idea); err != nil || idea == nil {
			continue
		}

		for _, field := range schema.Fields {
			if _, ok := idea[field]; !ok {
				if schema.ListFields[field] {
					idea[field] = []any{}
				} else {
					idea[field] = ""
				}
			}
		}
		for field := range schema.ListFields {
			idea[field] = coerceList(idea[field])
		}

		ideas = append(ideas, idea)
	}

	return ideas
}

func extractList(raw json.RawMessage, listKey string) []json.RawMessage {
	if len(raw) == 0 {
		return nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err == nil {
		var list []json.RawMessage
		if err := json.Unmarshal(wrapper[listKey], &list); err == nil {
			return list
		}
		return nil
	}

	var bare []json.RawMessage
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare
	}
	return nil
}

// coerceList normalizes a list-typed field: a non-empty string becomes a
// single-element list, a blank string or any other non-list value becomes an
// empty list.
func coerceList(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case string:
		if strings.TrimSpace(v) == "" {
			return []any{}
		}
		return []any{v}
	default:
		return []any{}
	}
}
