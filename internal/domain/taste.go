package domain

import "encoding/json"

// Content domains partitioning taste-graph affinity results. The list is
// fixed: aggregation always yields exactly one insight per tag.
const (
	DomainMusic         = "music"
	DomainFilm          = "film"
	DomainTV            = "tv"
	DomainPodcasts      = "podcasts"
	DomainBooks         = "books"
	DomainFashionBrands = "fashion_brands"
	DomainVideoGames    = "video_games"
)

// DomainTags is the canonical domain order, used for stable iteration when
// rendering prompts.
var DomainTags = []string{
	DomainMusic,
	DomainFilm,
	DomainTV,
	DomainPodcasts,
	DomainBooks,
	DomainFashionBrands,
	DomainVideoGames,
}

// TasteProfile is the raw per-domain affinity snapshot persisted for one
// creator profile. Domain values are kept verbatim as returned by the taste
// graph (or as an inline {"error": ...} marker) so nothing is lost between
// analysis and later summarization.
type TasteProfile struct {
	Domains       map[string]json.RawMessage `json:"taste_profile"`
	AnalysisNotes string                     `json:"analysis_notes"`
}

// TrimmedEntity is the allow-listed projection of one raw taste-graph entity.
type TrimmedEntity struct {
	Name             string   `json:"name"`
	ShortDescription string   `json:"short_description,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	Popularity       *float64 `json:"popularity,omitempty"`
}

type DomainSummary struct {
	Entities []TrimmedEntity `json:"entities"`
}

// SummarizedProfile is the ephemeral, size-bounded projection of a
// TasteProfile used only for prompt construction. It is never persisted and
// is recomputed from the stored profile on every generation request.
type SummarizedProfile map[string]DomainSummary
