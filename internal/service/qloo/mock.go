package qloo

import (
	"encoding/json"

	"github.com/trendulum/trendulum-api-go/internal/domain"
)

// NotesMock tags a mock taste profile so callers and the UI can tell it
// apart from a live analysis.
const NotesMock = "Mock analysis for demo purposes (API key may be missing or invalid)"

type mockAffinity struct {
	Genres        []string `json:"genres,omitempty"`
	Artists       []string `json:"artists,omitempty"`
	Directors     []string `json:"directors,omitempty"`
	Styles        []string `json:"styles,omitempty"`
	Brands        []string `json:"brands,omitempty"`
	Interests     []string `json:"interests,omitempty"`
	Activities    []string `json:"activities,omitempty"`
	AffinityScore float64  `json:"affinity_score"`
}

// MockTasteProfile returns the fixed demo profile used when no taste-graph
// credential is configured. It is independent of the input keywords and
// deterministic across calls.
func MockTasteProfile() *domain.TasteProfile {
	affinities := map[string]mockAffinity{
		"music": {
			Genres:        []string{"indie folk", "ambient", "jazz fusion"},
			Artists:       []string{"Bon Iver", "Tycho", "Khruangbin"},
			AffinityScore: 0.87,
		},
		"film": {
			Genres:        []string{"documentary", "indie drama", "foreign cinema"},
			Directors:     []string{"Wes Anderson", "Greta Gerwig", "Bong Joon-ho"},
			AffinityScore: 0.82,
		},
		"fashion": {
			Styles:        []string{"minimalist", "sustainable", "vintage"},
			Brands:        []string{"Everlane", "Reformation", "Patagonia"},
			AffinityScore: 0.79,
		},
		"lifestyle": {
			Interests:     []string{"mindfulness", "sustainability", "creativity"},
			Activities:    []string{"yoga", "cooking", "photography"},
			AffinityScore: 0.91,
		},
	}

	patterns := []string{
		"appreciation for craftsmanship and authenticity",
		"interest in sustainable and ethical choices",
		"preference for thoughtful, intentional experiences",
	}

	return &domain.TasteProfile{
		Domains: map[string]json.RawMessage{
			"primary_affinities":    mustMarshal(affinities),
			"cross_domain_patterns": mustMarshal(patterns),
			"audience_persona":      mustMarshal("conscious creators and mindful consumers"),
		},
		AnalysisNotes: NotesMock,
	}
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
