package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/trendulum/trendulum-api-go/internal/domain"
	apperrors "github.com/trendulum/trendulum-api-go/pkg/errors"
	"go.uber.org/zap"
)

type fakeResolver struct {
	entityIDs []string
	keywords  []string
}

func (f *fakeResolver) Resolve(ctx context.Context, keywords []string) []string {
	f.keywords = keywords
	return f.entityIDs
}

type fakeAggregator struct {
	profile   *domain.TasteProfile
	entityIDs []string
}

func (f *fakeAggregator) Aggregate(ctx context.Context, entityIDs []string) *domain.TasteProfile {
	f.entityIDs = entityIDs
	return f.profile
}

type fakeCompleter struct {
	payload json.RawMessage
	err     error
	prompt  string
	calls   int
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (json.RawMessage, error) {
	f.calls++
	f.prompt = prompt
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

type fakeProfileStore struct {
	profile *domain.CreatorProfile
	findErr error

	savedProfile *domain.TasteProfile
	saveErr      error
}

func (f *fakeProfileStore) FindByID(ctx context.Context, userID, profileID int64) (*domain.CreatorProfile, error) {
	return f.profile, f.findErr
}

func (f *fakeProfileStore) SaveTasteProfile(ctx context.Context, userID, profileID int64, profile *domain.TasteProfile) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedProfile = profile
	return nil
}

type fakeIdeaStore struct {
	content      []*domain.ContentIdea
	monetization []*domain.MonetizationIdea
	insertErr    error
}

func (f *fakeIdeaStore) InsertContentIdeas(ctx context.Context, ideas []*domain.ContentIdea) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.content = ideas
	return nil
}

func (f *fakeIdeaStore) InsertMonetizationIdeas(ctx context.Context, ideas []*domain.MonetizationIdea) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.monetization = ideas
	return nil
}

func analyzedProfile() *domain.CreatorProfile {
	return &domain.CreatorProfile{
		ID:               7,
		UserID:           1,
		NicheDescription: "sustainable living",
		BrandVoice:       "warm and direct",
		Keywords:         []string{"yoga", "cooking"},
		NegativeKeywords: []string{"fast fashion"},
		TasteProfile: &domain.TasteProfile{
			Domains: map[string]json.RawMessage{
				"music": json.RawMessage(`{"entities":[{"name":"Tycho"}]}`),
			},
			AnalysisNotes: "live",
		},
	}
}

func newTestPipeline(resolver *fakeResolver, aggregator *fakeAggregator, completer *fakeCompleter, profiles *fakeProfileStore, ideas *fakeIdeaStore) *Pipeline {
	return New(resolver, aggregator, completer, profiles, ideas, zap.NewNop())
}

func TestAnalyzeAudienceStoresProfile(t *testing.T) {
	resolver := &fakeResolver{entityIDs: []string{"urn:entity:A"}}
	aggregator := &fakeAggregator{profile: &domain.TasteProfile{
		Domains:       map[string]json.RawMessage{"music": json.RawMessage(`{}`)},
		AnalysisNotes: "live",
	}}
	profiles := &fakeProfileStore{profile: analyzedProfile()}

	p := newTestPipeline(resolver, aggregator, &fakeCompleter{}, profiles, &fakeIdeaStore{})
	got, err := p.AnalyzeAudience(context.Background(), 1, 7)
	if err != nil {
		t.Fatalf("AnalyzeAudience() error = %v", err)
	}

	if len(resolver.keywords) != 2 {
		t.Errorf("resolver keywords = %v", resolver.keywords)
	}
	if len(aggregator.entityIDs) != 1 || aggregator.entityIDs[0] != "urn:entity:A" {
		t.Errorf("aggregator input = %v", aggregator.entityIDs)
	}
	if profiles.savedProfile != got {
		t.Error("returned profile should be the one persisted")
	}
}

func TestAnalyzeAudienceProfileNotFound(t *testing.T) {
	p := newTestPipeline(&fakeResolver{}, &fakeAggregator{}, &fakeCompleter{}, &fakeProfileStore{}, &fakeIdeaStore{})

	_, err := p.AnalyzeAudience(context.Background(), 1, 99)
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("error = %v, want not-found", err)
	}
}

func TestGenerateContentIdeasHappyPath(t *testing.T) {
	completer := &fakeCompleter{payload: json.RawMessage(`{"ideas":[
		{"title":"Zero-waste pantry tour","concept":"c","visual_elements":["jars"],"call_to_action":"cta","why_it_works":"w"},
		{"title":"Second","concept":"c2"}
	]}`)}
	profiles := &fakeProfileStore{profile: analyzedProfile()}
	ideas := &fakeIdeaStore{}

	p := newTestPipeline(&fakeResolver{}, &fakeAggregator{}, completer, profiles, ideas)
	got, err := p.GenerateContentIdeas(context.Background(), 1, 7, "video", "keep it short")
	if err != nil {
		t.Fatalf("GenerateContentIdeas() error = %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("ideas = %d, want 2", len(got))
	}
	first := got[0]
	if first.Title != "Zero-waste pantry tour" || first.ContentType != "video" {
		t.Errorf("idea = %+v", first)
	}
	if first.UserID != 1 || first.CreatorProfileID != 7 {
		t.Errorf("ownership = %d/%d", first.UserID, first.CreatorProfileID)
	}
	if len(first.VisualElements) != 1 || first.VisualElements[0] != "jars" {
		t.Errorf("visual elements = %v", first.VisualElements)
	}
	if got[1].VisualElements == nil {
		t.Error("missing visual_elements should come back as empty slice")
	}
	if len(ideas.content) != 2 {
		t.Errorf("persisted = %d ideas", len(ideas.content))
	}
	if completer.calls != 1 {
		t.Errorf("completer calls = %d, want exactly one", completer.calls)
	}
	if !strings.Contains(completer.prompt, "Niche: sustainable living") {
		t.Error("prompt missing niche")
	}
	if !strings.Contains(completer.prompt, "keep it short") {
		t.Error("prompt missing constraints")
	}
}

func TestGenerateContentIdeasRequiresAnalysis(t *testing.T) {
	profile := analyzedProfile()
	profile.TasteProfile = nil
	profiles := &fakeProfileStore{profile: profile}

	p := newTestPipeline(&fakeResolver{}, &fakeAggregator{}, &fakeCompleter{}, profiles, &fakeIdeaStore{})
	_, err := p.GenerateContentIdeas(context.Background(), 1, 7, "video", "")

	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.CodePrecondition {
		t.Fatalf("error = %v, want precondition failure", err)
	}
	if appErr.Message != "Please analyze your audience first" {
		t.Errorf("message = %q", appErr.Message)
	}
}

func TestGenerateContentIdeasCompleterFailurePersistsNothing(t *testing.T) {
	completer := &fakeCompleter{err: apperrors.NewGenerationError("model unavailable")}
	ideas := &fakeIdeaStore{}
	profiles := &fakeProfileStore{profile: analyzedProfile()}

	p := newTestPipeline(&fakeResolver{}, &fakeAggregator{}, completer, profiles, ideas)
	_, err := p.GenerateContentIdeas(context.Background(), 1, 7, "video", "")
	if err == nil {
		t.Fatal("expected error")
	}
	if ideas.content != nil {
		t.Error("no ideas should be persisted on generation failure")
	}
}

func TestGenerateContentIdeasZeroSurvivorsIsError(t *testing.T) {
	completer := &fakeCompleter{payload: json.RawMessage(`{"ideas":["not a record"]}`)}
	profiles := &fakeProfileStore{profile: analyzedProfile()}
	ideas := &fakeIdeaStore{}

	p := newTestPipeline(&fakeResolver{}, &fakeAggregator{}, completer, profiles, ideas)
	_, err := p.GenerateContentIdeas(context.Background(), 1, 7, "video", "")

	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.CodeGeneration {
		t.Fatalf("error = %v, want generation error", err)
	}
	if appErr.Message != "No ideas returned. Please try again later." {
		t.Errorf("message = %q", appErr.Message)
	}
	if ideas.content != nil {
		t.Error("nothing should be persisted when zero ideas survive")
	}
}

func TestGenerateMonetizationIdeasHappyPath(t *testing.T) {
	completer := &fakeCompleter{payload: json.RawMessage(`{"ideas":[
		{"brand_name":"Everlane","collaboration_type":"sponsorship","pitch_angle":"p","taste_alignment":"t","why_it_works":"w"}
	]}`)}
	profiles := &fakeProfileStore{profile: analyzedProfile()}
	ideas := &fakeIdeaStore{}

	p := newTestPipeline(&fakeResolver{}, &fakeAggregator{}, completer, profiles, ideas)
	got, err := p.GenerateMonetizationIdeas(context.Background(), 1, 7, "affiliate")
	if err != nil {
		t.Fatalf("GenerateMonetizationIdeas() error = %v", err)
	}

	if len(got) != 1 || got[0].BrandName != "Everlane" {
		t.Fatalf("ideas = %+v", got)
	}
	if len(ideas.monetization) != 1 {
		t.Errorf("persisted = %d ideas", len(ideas.monetization))
	}
	if !strings.Contains(completer.prompt, "Collaboration Type: affiliate") {
		t.Error("prompt missing collaboration type")
	}
}

func TestGenerateMonetizationIdeasDefaultsCollaborationType(t *testing.T) {
	completer := &fakeCompleter{payload: json.RawMessage(`{"ideas":[{"brand_name":"X"}]}`)}
	profiles := &fakeProfileStore{profile: analyzedProfile()}

	p := newTestPipeline(&fakeResolver{}, &fakeAggregator{}, completer, profiles, &fakeIdeaStore{})
	if _, err := p.GenerateMonetizationIdeas(context.Background(), 1, 7, ""); err != nil {
		t.Fatalf("error = %v", err)
	}

	if !strings.Contains(completer.prompt, "Collaboration Type: sponsorship") {
		t.Error("empty collaboration type should default to sponsorship")
	}
}
