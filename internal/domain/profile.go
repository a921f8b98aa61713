package domain

import "time"

// CreatorProfile describes one audience a creator wants to build content
// for. A creator may own several profiles; each carries its own keyword set
// and at most one stored taste profile (overwritten on every analysis).
type CreatorProfile struct {
	ID               int64         `json:"id"`
	UserID           int64         `json:"user_id"`
	ProfileName      string        `json:"profile_name"`
	NicheDescription string        `json:"niche_description"`
	Keywords         []string      `json:"keywords"`
	BrandVoice       string        `json:"brand_voice,omitempty"`
	NegativeKeywords []string      `json:"negative_keywords,omitempty"`
	SocialPlatform   string        `json:"social_platform"`
	SocialHandle     string        `json:"social_handle"`
	AudienceData     string        `json:"audience_data"`
	TasteProfile     *TasteProfile `json:"taste_profile,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}
