// Package prompt renders taste summaries and creator metadata into the
// deterministic natural-language prompts sent to the generation model.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/trendulum/trendulum-api-go/internal/domain"
	"github.com/trendulum/trendulum-api-go/internal/util"
)

const defaultBrandVoice = "not specified"

// ContentPromptVars holds variables for the content-idea prompt.
type ContentPromptVars struct {
	NicheDescription      string
	BrandVoice            string
	ContentType           string
	AdditionalConstraints string
	UserPrompt            string
	NegativeKeywords      []string
	Summary               domain.SummarizedProfile
}

// MonetizationPromptVars holds variables for the monetization-idea prompt.
type MonetizationPromptVars struct {
	NicheDescription  string
	BrandVoice        string
	CollaborationType string
	NegativeKeywords  []string
	Summary           domain.SummarizedProfile
}

// BuildContentPrompt renders the content-idea generation prompt. The output
// is byte-identical for identical inputs: domains follow the canonical tag
// order with any extras sorted behind them.
func BuildContentPrompt(vars ContentPromptVars) string {
	negativeClause := ""
	if len(vars.NegativeKeywords) > 0 {
		negativeClause = fmt.Sprintf("Avoid: %s.\n", strings.Join(vars.NegativeKeywords, ", "))
	}

	constraints := vars.AdditionalConstraints
	if constraints == "" {
		constraints = "None"
	}

	return fmt.Sprintf(`You are a world-class creative strategist for content creators.

Niche: %s
Brand Voice: %s
Audience Taste Profile:
%s
%sContent Type: %s
Constraints: %s

User's Request: %s

Instructions:
- Use the above audience taste profile and the user's request to generate 5 content ideas.
- For each idea, provide: title, concept, visual_elements (as a list), call_to_action, why_it_works (reference the audience taste profile).
- Output: JSON with key 'ideas', value is a list of idea objects. Each idea object must have keys: title, concept, visual_elements (list), call_to_action, why_it_works.`,
		vars.NicheDescription,
		brandVoiceOrDefault(vars.BrandVoice),
		formatProfileDetailed(vars.Summary),
		negativeClause,
		vars.ContentType,
		constraints,
		vars.UserPrompt,
	)
}

// BuildMonetizationPrompt renders the monetization-idea generation prompt.
func BuildMonetizationPrompt(vars MonetizationPromptVars) string {
	negativeClause := ""
	if len(vars.NegativeKeywords) > 0 {
		negativeClause = fmt.Sprintf("The creator wants to AVOID brands or topics related to: %s.\n", strings.Join(vars.NegativeKeywords, ", "))
	}

	return fmt.Sprintf(`Analyze the following creator profile and generate 3 innovative monetization ideas.

Creator Profile:
Niche: %s
Brand Voice: %s
Audience Taste Profile:
%s
%s
Task:
Generate 3 authentic and brand-aligned monetization ideas. For each idea, provide a potential brand name, the collaboration type, a concise pitch angle, a taste alignment explanation, and a "why_it_works" rationale.

Collaboration Type: %s

The "why_it_works" is crucial. It must be a concise sentence explaining why this collaboration makes sense for the audience, referencing their taste profile. For example: "This partnership is a natural fit because the audience's affinity for [Brand Category] and [Creator's Niche] overlap perfectly."

Output Format:
Return a JSON object with a single key "ideas", which is a list of 3 idea objects. Each object must have the following keys: "brand_name", "collaboration_type", "pitch_angle", "taste_alignment", "why_it_works".`,
		vars.NicheDescription,
		brandVoiceOrDefault(vars.BrandVoice),
		formatProfileCompact(vars.Summary),
		negativeClause,
		vars.CollaborationType,
	)
}

// formatProfileDetailed renders one section per domain with labeled
// sub-lines per entity. Empty domains still render their header.
func formatProfileDetailed(summary domain.SummarizedProfile) string {
	var lines []string
	for _, tag := range orderedTags(summary) {
		lines = append(lines, fmt.Sprintf("\n=== %s ===", util.TitleCase(tag)))
		for _, entity := range summary[tag].Entities {
			lines = append(lines, fmt.Sprintf("• Name: %s", entity.Name))
			if entity.ShortDescription != "" {
				lines = append(lines, fmt.Sprintf("  Description: %s", entity.ShortDescription))
			}
			if len(entity.Tags) > 0 {
				lines = append(lines, fmt.Sprintf("  Tags: %s", strings.Join(entity.Tags, ", ")))
			}
			if entity.Popularity != nil {
				lines = append(lines, fmt.Sprintf("  Popularity: %s", formatPopularity(*entity.Popularity)))
			}
			lines = append(lines, "")
		}
	}
	return strings.Join(lines, "\n")
}

// formatProfileCompact renders one line per entity under a bare domain
// header, the denser layout used by the monetization prompt.
func formatProfileCompact(summary domain.SummarizedProfile) string {
	var lines []string
	for _, tag := range orderedTags(summary) {
		lines = append(lines, util.TitleCase(tag))
		for _, entity := range summary[tag].Entities {
			tagsStr := ""
			if len(entity.Tags) > 0 {
				tagsStr = fmt.Sprintf(" [Tags: %s]", strings.Join(entity.Tags, ", "))
			}
			popStr := ""
			if entity.Popularity != nil {
				popStr = fmt.Sprintf(" (Popularity: %s)", formatPopularity(*entity.Popularity))
			}
			lines = append(lines, fmt.Sprintf("- %s: %s%s%s", entity.Name, entity.ShortDescription, tagsStr, popStr))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// orderedTags returns the summary's domain tags in canonical order, with any
// tags outside the fixed catalog sorted alphabetically at the end. Map
// iteration order must never leak into prompt bytes.
func orderedTags(summary domain.SummarizedProfile) []string {
	tags := make([]string, 0, len(summary))
	seen := make(map[string]struct{}, len(summary))
	for _, tag := range domain.DomainTags {
		if _, ok := summary[tag]; ok {
			tags = append(tags, tag)
			seen[tag] = struct{}{}
		}
	}

	var extras []string
	for tag := range summary {
		if _, ok := seen[tag]; !ok {
			extras = append(extras, tag)
		}
	}
	sort.Strings(extras)

	return append(tags, extras...)
}

func formatPopularity(popularity float64) string {
	return fmt.Sprintf("%.1f%%", popularity*100)
}

func brandVoiceOrDefault(voice string) string {
	if strings.TrimSpace(voice) == "" {
		return defaultBrandVoice
	}
	return voice
}
