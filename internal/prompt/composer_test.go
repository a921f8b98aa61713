package prompt

import (
	"strings"
	"testing"

	"github.com/trendulum/trendulum-api-go/internal/domain"
)

func sampleSummary() domain.SummarizedProfile {
	pop := 0.734
	return domain.SummarizedProfile{
		"music": {Entities: []domain.TrimmedEntity{
			{Name: "Tycho", ShortDescription: "Ambient electronica", Tags: []string{"ambient", "chill"}, Popularity: &pop},
		}},
		"fashion_brands": {Entities: []domain.TrimmedEntity{
			{Name: "Everlane"},
		}},
		"zz_custom": {Entities: []domain.TrimmedEntity{
			{Name: "Extra"},
		}},
	}
}

func TestBuildContentPromptDeterministic(t *testing.T) {
	vars := ContentPromptVars{
		NicheDescription: "sustainable living",
		ContentType:      "video",
		Summary:          sampleSummary(),
	}

	first := BuildContentPrompt(vars)
	for i := 0; i < 20; i++ {
		if BuildContentPrompt(vars) != first {
			t.Fatal("prompt differs across identical invocations")
		}
	}
}

func TestBuildContentPromptDomainOrder(t *testing.T) {
	text := BuildContentPrompt(ContentPromptVars{Summary: sampleSummary()})

	music := strings.Index(text, "=== Music ===")
	fashion := strings.Index(text, "=== Fashion_Brands ===")
	extra := strings.Index(text, "=== Zz_Custom ===")
	if music < 0 || fashion < 0 || extra < 0 {
		t.Fatalf("missing domain headers in:\n%s", text)
	}
	if !(music < fashion && fashion < extra) {
		t.Errorf("domain order wrong: music=%d fashion=%d extra=%d", music, fashion, extra)
	}
}

func TestBuildContentPromptEntityLines(t *testing.T) {
	text := BuildContentPrompt(ContentPromptVars{Summary: sampleSummary()})

	for _, want := range []string{
		"• Name: Tycho",
		"  Description: Ambient electronica",
		"  Tags: ambient, chill",
		"  Popularity: 73.4%",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	// Optional sub-lines are omitted for sparse entities.
	if strings.Contains(text, "Description: \n") {
		t.Error("empty description line should be omitted")
	}
}

func TestBuildContentPromptNegativeClause(t *testing.T) {
	withNegatives := BuildContentPrompt(ContentPromptVars{
		NegativeKeywords: []string{"fast fashion", "crypto"},
	})
	if !strings.Contains(withNegatives, "Avoid: fast fashion, crypto.") {
		t.Error("negative keyword clause missing")
	}

	withoutNegatives := BuildContentPrompt(ContentPromptVars{})
	if strings.Contains(withoutNegatives, "Avoid:") {
		t.Error("negative clause should be omitted entirely when empty")
	}
}

func TestBuildContentPromptDefaults(t *testing.T) {
	text := BuildContentPrompt(ContentPromptVars{})

	if !strings.Contains(text, "Brand Voice: not specified") {
		t.Error("missing brand voice default")
	}
	if !strings.Contains(text, "Constraints: None") {
		t.Error("missing constraints default")
	}
}

func TestBuildContentPromptEmptySummary(t *testing.T) {
	text := BuildContentPrompt(ContentPromptVars{
		NicheDescription: "vegan cooking",
		ContentType:      "reel",
		Summary:          domain.SummarizedProfile{},
	})

	if !strings.Contains(text, "Niche: vegan cooking") {
		t.Error("prompt should still render for an empty summary")
	}
	if strings.Contains(text, "===") {
		t.Error("empty summary should produce no domain sections")
	}
}

func TestBuildMonetizationPromptCompactLayout(t *testing.T) {
	text := BuildMonetizationPrompt(MonetizationPromptVars{
		NicheDescription:  "mindful travel",
		CollaborationType: "sponsorship",
		Summary:           sampleSummary(),
	})

	if !strings.Contains(text, "- Tycho: Ambient electronica [Tags: ambient, chill] (Popularity: 73.4%)") {
		t.Errorf("compact entity line missing in:\n%s", text)
	}
	if !strings.Contains(text, "- Everlane: ") {
		t.Error("sparse entity line missing")
	}
	if !strings.Contains(text, "Collaboration Type: sponsorship") {
		t.Error("collaboration type missing")
	}
	if !strings.Contains(text, `single key "ideas"`) {
		t.Error("output contract missing")
	}
}

func TestBuildMonetizationPromptNegativeClause(t *testing.T) {
	text := BuildMonetizationPrompt(MonetizationPromptVars{
		NegativeKeywords: []string{"gambling"},
	})
	if !strings.Contains(text, "The creator wants to AVOID brands or topics related to: gambling.") {
		t.Error("negative clause missing")
	}

	clean := BuildMonetizationPrompt(MonetizationPromptVars{})
	if strings.Contains(clean, "AVOID") {
		t.Error("negative clause should be omitted when empty")
	}
}
