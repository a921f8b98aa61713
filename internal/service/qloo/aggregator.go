package qloo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"github.com/trendulum/trendulum-api-go/internal/domain"
	apperrors "github.com/trendulum/trendulum-api-go/pkg/errors"
	"go.uber.org/zap"
)

const insightsTopK = 5

const (
	notesLive      = "Live cross-domain insights analysis using the v2/insights API"
	notesNoMatches = "Could not find any matching entities for the provided keywords in the taste graph."
)

// domainFilters maps every supported content domain to its taste-graph
// filter classifier, in canonical order.
var domainFilters = []struct {
	Tag    string
	Filter string
}{
	{domain.DomainMusic, "urn:entity:artist"},
	{domain.DomainFilm, "urn:entity:movie"},
	{domain.DomainTV, "urn:entity:tv_show"},
	{domain.DomainPodcasts, "urn:entity:podcast"},
	{domain.DomainBooks, "urn:entity:book"},
	{domain.DomainFashionBrands, "urn:entity:brand"},
	{domain.DomainVideoGames, "urn:entity:video_game"},
}

// Aggregator fetches ranked affinity results for every supported domain.
type Aggregator struct {
	client      Requester
	logger      *zap.Logger
	concurrency int
}

func NewAggregator(client Requester, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		client:      client,
		logger:      logger,
		concurrency: len(domainFilters),
	}
}

// Aggregate builds the per-domain taste profile for the resolved entity set.
// The result always contains exactly one entry per supported domain: a
// failed domain is recorded inline as {"error": ...} and never aborts the
// remaining domains. An empty entity set yields the explanatory "no matches"
// profile, and a missing credential yields the deterministic mock profile.
func (a *Aggregator) Aggregate(ctx context.Context, entityIDs []string) *domain.TasteProfile {
	if !a.client.Configured() {
		a.logger.Info("Qloo credential missing, falling back to mock taste profile")
		return MockTasteProfile()
	}

	if len(entityIDs) == 0 {
		return &domain.TasteProfile{
			Domains:       map[string]json.RawMessage{},
			AnalysisNotes: notesNoMatches,
		}
	}

	signal := strings.Join(entityIDs, ",")
	insights := make([]json.RawMessage, len(domainFilters))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(a.concurrency)
	for idx, df := range domainFilters {
		idx, df := idx, df
		p.Go(func() {
			insight := a.fetchDomain(ctx, signal, df.Tag, df.Filter)
			mu.Lock()
			insights[idx] = insight
			mu.Unlock()
		})
	}
	p.Wait()

	domains := make(map[string]json.RawMessage, len(domainFilters))
	for idx, df := range domainFilters {
		domains[df.Tag] = insights[idx]
	}

	return &domain.TasteProfile{
		Domains:       domains,
		AnalysisNotes: notesLive,
	}
}

func (a *Aggregator) fetchDomain(ctx context.Context, signal, tag, filter string) json.RawMessage {
	params := url.Values{}
	params.Set("signal.interests.entities", signal)
	params.Set("filter.type", filter)
	params.Set("take", strconv.Itoa(insightsTopK))

	body, err := a.client.DoRequest(ctx, http.MethodGet, "/v2/insights", params)
	if err != nil {
		return a.errorInsight(tag, err)
	}

	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(body, &parsed); err != nil {
		return a.errorInsight(tag, err)
	}

	results, ok := parsed["results"]
	if !ok {
		results = json.RawMessage("{}")
	}
	return results
}

// errorInsight converts a domain failure into its inline marker. Forbidden
// responses get the fixed restriction message; everything else carries a
// diagnostic.
func (a *Aggregator) errorInsight(tag string, err error) json.RawMessage {
	msg := "Failed to fetch data: " + err.Error()
	if appErr, ok := apperrors.AsAppError(err); ok && appErr.StatusCode == http.StatusForbidden {
		a.logger.Warn("Domain access forbidden", zap.String("domain", tag))
		msg = "Access to this domain is restricted."
	} else {
		a.logger.Warn("Domain insights request failed",
			zap.String("domain", tag),
			zap.Error(err),
		)
	}

	marker, marshalErr := json.Marshal(map[string]string{"error": msg})
	if marshalErr != nil {
		return json.RawMessage(`{"error":"Failed to fetch data"}`)
	}
	return marker
}
