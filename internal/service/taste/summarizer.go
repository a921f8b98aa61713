// Package taste projects raw taste-graph affinity snapshots into the small,
// flat summaries fed to prompt composition.
package taste

import (
	"encoding/json"

	"github.com/trendulum/trendulum-api-go/internal/domain"
)

const (
	maxEntitiesPerDomain = 3
	maxTagsPerEntity     = 3
)

// domainProbe sniffs the shape of one raw domain insight. Pointer slices
// distinguish an absent entity list from a present-but-empty one; the
// upstream schema carries the list under either "entities" or "results".
type domainProbe struct {
	Error    string             `json:"error"`
	Entities *[]json.RawMessage `json:"entities"`
	Results  *[]json.RawMessage `json:"results"`
}

// Summarize projects a raw taste profile into its bounded, LLM-friendly
// form: at most three entities per domain, allow-listed fields only. Domains
// carrying an error marker, or without an entity list under an accepted
// field name, are dropped; a present-but-empty entity list is kept as an
// empty domain. The input is never mutated and order within a domain is
// preserved as received.
func Summarize(profile *domain.TasteProfile) domain.SummarizedProfile {
	summary := domain.SummarizedProfile{}
	if profile == nil {
		return summary
	}

	for tag, raw := range profile.Domains {
		var probe domainProbe
		if err := json.Unmarshal(raw, &probe); err != nil {
			continue
		}
		if probe.Error != "" {
			continue
		}

		list := probe.Entities
		if list == nil {
			list = probe.Results
		}
		if list == nil {
			continue
		}

		entities := make([]domain.TrimmedEntity, 0, maxEntitiesPerDomain)
		for _, rawEntity := range *list {
			if len(entities) == maxEntitiesPerDomain {
				break
			}
			if trimmed, ok := trimEntity(rawEntity); ok {
				entities = append(entities, trimmed)
			}
		}

		summary[tag] = domain.DomainSummary{Entities: entities}
	}

	return summary
}

// trimEntity extracts the allow-listed projection of one raw entity record.
// Every field is decoded independently so one malformed field never discards
// the others; only a missing name makes the entity unusable.
func trimEntity(raw json.RawMessage) (domain.TrimmedEntity, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.TrimmedEntity{}, false
	}

	var name string
	if err := json.Unmarshal(fields["name"], &name); err != nil || name == "" {
		return domain.TrimmedEntity{}, false
	}

	trimmed := domain.TrimmedEntity{
		Name:             name,
		ShortDescription: extractShortDescription(fields["properties"]),
		Tags:             extractTagNames(fields["tags"]),
	}

	var popularity float64
	if err := json.Unmarshal(fields["popularity"], &popularity); err == nil {
		trimmed.Popularity = &popularity
	}

	return trimmed, true
}

// extractShortDescription prefers the first entry of a short_descriptions
// list's value field, falling back to a scalar short_description.
func extractShortDescription(rawProps json.RawMessage) string {
	if rawProps == nil {
		return ""
	}

	var props struct {
		ShortDescription  json.RawMessage   `json:"short_description"`
		ShortDescriptions []json.RawMessage `json:"short_descriptions"`
	}
	if err := json.Unmarshal(rawProps, &props); err != nil {
		return ""
	}

	if len(props.ShortDescriptions) > 0 {
		var first struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(props.ShortDescriptions[0], &first); err == nil && first.Value != "" {
			return first.Value
		}
	}

	var scalar string
	if err := json.Unmarshal(props.ShortDescription, &scalar); err == nil {
		return scalar
	}
	return ""
}

func extractTagNames(rawTags json.RawMessage) []string {
	if rawTags == nil {
		return nil
	}

	var tags []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(rawTags, &tags); err != nil {
		return nil
	}

	if len(tags) > maxTagsPerEntity {
		tags = tags[:maxTagsPerEntity]
	}
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag.Name != "" {
			names = append(names, tag.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return names
}
