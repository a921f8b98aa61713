// Package pipeline composes entity resolution, insight aggregation,
// summarization, prompt composition, generation, and sanitization into the
// two end-to-end flows: analyze audience and generate ideas.
package pipeline

import (
	"context"
	"fmt"

	"github.com/trendulum/trendulum-api-go/internal/domain"
	"github.com/trendulum/trendulum-api-go/internal/prompt"
	"github.com/trendulum/trendulum-api-go/internal/service/generation"
	"github.com/trendulum/trendulum-api-go/internal/service/taste"
	apperrors "github.com/trendulum/trendulum-api-go/pkg/errors"
	"go.uber.org/zap"
)

const defaultCollaborationType = "sponsorship"

// Recommendations are the fixed high-level suggestions returned with every
// audience analysis.
var Recommendations = []string{
	"Leverage cross-domain interests for unique content mashups.",
	"Align brand partnerships with the top taste affinities for authenticity.",
	"Use the identified taste patterns to refine your content's aesthetic and tone.",
}

type EntityResolver interface {
	Resolve(ctx context.Context, keywords []string) []string
}

type InsightsAggregator interface {
	Aggregate(ctx context.Context, entityIDs []string) *domain.TasteProfile
}

// ProfileStore is the persistence collaborator for creator profiles.
type ProfileStore interface {
	FindByID(ctx context.Context, userID, profileID int64) (*domain.CreatorProfile, error)
	SaveTasteProfile(ctx context.Context, userID, profileID int64, profile *domain.TasteProfile) error
}

// IdeaStore appends generated idea records, filling ids and timestamps.
type IdeaStore interface {
	InsertContentIdeas(ctx context.Context, ideas []*domain.ContentIdea) error
	InsertMonetizationIdeas(ctx context.Context, ideas []*domain.MonetizationIdea) error
}

type Pipeline struct {
	resolver   EntityResolver
	aggregator InsightsAggregator
	completer  generation.Completer
	profiles   ProfileStore
	ideas      IdeaStore
	logger     *zap.Logger
}

func New(resolver EntityResolver, aggregator InsightsAggregator, completer generation.Completer, profiles ProfileStore, ideas IdeaStore, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		resolver:   resolver,
		aggregator: aggregator,
		completer:  completer,
		profiles:   profiles,
		ideas:      ideas,
		logger:     logger,
	}
}

// AnalyzeAudience resolves the profile's keywords, aggregates cross-domain
// insights, and overwrites the stored taste profile. Re-invocation fully
// recomputes the profile; no history is kept.
func (p *Pipeline) AnalyzeAudience(ctx context.Context, userID, profileID int64) (*domain.TasteProfile, error) {
	profile, err := p.findProfile(ctx, userID, profileID)
	if err != nil {
		return nil, err
	}

	entityIDs := p.resolver.Resolve(ctx, profile.Keywords)
	tasteProfile := p.aggregator.Aggregate(ctx, entityIDs)

	if err := p.profiles.SaveTasteProfile(ctx, userID, profileID, tasteProfile); err != nil {
		return nil, fmt.Errorf("save taste profile: %w", err)
	}

	p.logger.Info("Audience analysis stored",
		zap.Int64("profile_id", profileID),
		zap.Int("domains", len(tasteProfile.Domains)),
		zap.String("notes", tasteProfile.AnalysisNotes),
	)

	return tasteProfile, nil
}

// GenerateContentIdeas runs the generation flow for content ideas. It
// requires a previously stored taste profile; partial or even empty profiles
// are valid inputs and still produce a well-formed prompt.
func (p *Pipeline) GenerateContentIdeas(ctx context.Context, userID, profileID int64, contentType, additionalConstraints string) ([]*domain.ContentIdea, error) {
	profile, err := p.findProfile(ctx, userID, profileID)
	if err != nil {
		return nil, err
	}
	if profile.TasteProfile == nil {
		return nil, apperrors.NewPreconditionError("Please analyze your audience first")
	}

	promptText := prompt.BuildContentPrompt(prompt.ContentPromptVars{
		NicheDescription:      profile.NicheDescription,
		BrandVoice:            profile.BrandVoice,
		ContentType:           contentType,
		AdditionalConstraints: additionalConstraints,
		UserPrompt:            additionalConstraints,
		NegativeKeywords:      profile.NegativeKeywords,
		Summary:               taste.Summarize(profile.TasteProfile),
	})

	rawResult, err := p.completer.Complete(ctx, promptText)
	if err != nil {
		return nil, err
	}

	sanitized := generation.SanitizeIdeas(rawResult, generation.ContentIdeaSchema)
	if len(sanitized) == 0 {
		return nil, apperrors.NewGenerationError("No ideas returned. Please try again later.")
	}

	ideas := make([]*domain.ContentIdea, 0, len(sanitized))
	for _, idea := range sanitized {
		ideas = append(ideas, &domain.ContentIdea{
			UserID:           userID,
			CreatorProfileID: profileID,
			Title:            stringField(idea, "title"),
			Concept:          stringField(idea, "concept"),
			ContentType:      contentType,
			VisualElements:   stringListField(idea, "visual_elements"),
			CallToAction:     stringField(idea, "call_to_action"),
			WhyItWorks:       stringField(idea, "why_it_works"),
		})
	}

	if err := p.ideas.InsertContentIdeas(ctx, ideas); err != nil {
		return nil, fmt.Errorf("persist content ideas: %w", err)
	}

	p.logger.Info("Content ideas generated",
		zap.Int64("profile_id", profileID),
		zap.Int("count", len(ideas)),
	)

	return ideas, nil
}

// GenerateMonetizationIdeas runs the generation flow for monetization ideas.
func (p *Pipeline) GenerateMonetizationIdeas(ctx context.Context, userID, profileID int64, collaborationType string) ([]*domain.MonetizationIdea, error) {
	profile, err := p.findProfile(ctx, userID, profileID)
	if err != nil {
		return nil, err
	}
	if profile.TasteProfile == nil {
		return nil, apperrors.NewPreconditionError("Please analyze your audience first")
	}

	if collaborationType == "" {
		collaborationType = defaultCollaborationType
	}

	promptText := prompt.BuildMonetizationPrompt(prompt.MonetizationPromptVars{
		NicheDescription:  profile.NicheDescription,
		BrandVoice:        profile.BrandVoice,
		CollaborationType: collaborationType,
		NegativeKeywords:  profile.NegativeKeywords,
		Summary:           taste.Summarize(profile.TasteProfile),
	})

	rawResult, err := p.completer.Complete(ctx, promptText)
	if err != nil {
		return nil, err
	}

	sanitized := generation.SanitizeIdeas(rawResult, generation.MonetizationIdeaSchema)
	if len(sanitized) == 0 {
		return nil, apperrors.NewGenerationError("No ideas returned. Please try again later.")
	}

	ideas := make([]*domain.MonetizationIdea, 0, len(sanitized))
	for _, idea := range sanitized {
		ideas = append(ideas, &domain.MonetizationIdea{
			UserID:            userID,
			CreatorProfileID:  profileID,
			BrandName:         stringField(idea, "brand_name"),
			CollaborationType: stringField(idea, "collaboration_type"),
			PitchAngle:        stringField(idea, "pitch_angle"),
			TasteAlignment:    stringField(idea, "taste_alignment"),
			WhyItWorks:        stringField(idea, "why_it_works"),
		})
	}

	if err := p.ideas.InsertMonetizationIdeas(ctx, ideas); err != nil {
		return nil, fmt.Errorf("persist monetization ideas: %w", err)
	}

	p.logger.Info("Monetization ideas generated",
		zap.Int64("profile_id", profileID),
		zap.Int("count", len(ideas)),
	)

	return ideas, nil
}

func (p *Pipeline) findProfile(ctx context.Context, userID, profileID int64) (*domain.CreatorProfile, error) {
	profile, err := p.profiles.FindByID(ctx, userID, profileID)
	if err != nil {
		return nil, fmt.Errorf("load creator profile: %w", err)
	}
	if profile == nil {
		return nil, apperrors.NewNotFoundError("Creator profile not found")
	}
	return profile, nil
}

func stringField(idea map[string]any, key string) string {
	if s, ok := idea[key].(string); ok {
		return s
	}
	return ""
}

func stringListField(idea map[string]any, key string) []string {
	list, ok := idea[key].([]any)
	if !ok {
		return []string{}
	}
	values := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			values = append(values, s)
		}
	}
	return values
}
