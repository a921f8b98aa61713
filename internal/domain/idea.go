package domain

import "time"

// ContentIdea is one sanitized content suggestion produced by the generation
// flow. Required fields are always present, possibly empty, never null.
type ContentIdea struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	CreatorProfileID int64     `json:"creator_profile_id"`
	Title            string    `json:"title"`
	Concept          string    `json:"concept"`
	ContentType      string    `json:"content_type"`
	VisualElements   []string  `json:"visual_elements"`
	CallToAction     string    `json:"call_to_action"`
	WhyItWorks       string    `json:"why_it_works"`
	IsSaved          bool      `json:"is_saved"`
	GeneratedAt      time.Time `json:"generated_at"`
}

// MonetizationIdea is one sanitized brand-collaboration suggestion.
type MonetizationIdea struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	CreatorProfileID  int64     `json:"creator_profile_id"`
	BrandName         string    `json:"brand_name"`
	CollaborationType string    `json:"collaboration_type"`
	PitchAngle        string    `json:"pitch_angle"`
	TasteAlignment    string    `json:"taste_alignment"`
	WhyItWorks        string    `json:"why_it_works"`
	IsSaved           bool      `json:"is_saved"`
	GeneratedAt       time.Time `json:"generated_at"`
}
