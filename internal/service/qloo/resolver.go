package qloo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

const searchCandidates = 2

// Resolver turns free-text keywords into opaque taste-graph entity ids.
type Resolver struct {
	client      Requester
	logger      *zap.Logger
	concurrency int
}

func NewResolver(client Requester, logger *zap.Logger) *Resolver {
	return &Resolver{
		client:      client,
		logger:      logger,
		concurrency: 8,
	}
}

type searchResponse struct {
	Results []struct {
		EntityID string `json:"entity_id"`
	} `json:"results"`
}

// Resolve looks up each keyword and keeps the top-ranked candidate's entity
// id. Keywords that match nothing, or whose lookup fails, are skipped; a
// single bad keyword never poisons the rest. The returned set is deduplicated
// and sorted, and may legitimately be empty.
func (r *Resolver) Resolve(ctx context.Context, keywords []string) []string {
	if !r.client.Configured() || len(keywords) == 0 {
		return nil
	}

	results := make([]string, len(keywords))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(r.concurrency)
	for idx, keyword := range keywords {
		idx, keyword := idx, keyword
		p.Go(func() {
			id := r.resolveOne(ctx, keyword)
			mu.Lock()
			results[idx] = id
			mu.Unlock()
		})
	}
	p.Wait()

	seen := make(map[string]struct{}, len(results))
	entityIDs := make([]string, 0, len(results))
	for _, id := range results {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		entityIDs = append(entityIDs, id)
	}
	sort.Strings(entityIDs)

	r.logger.Info("Resolved keywords against taste graph",
		zap.Int("keywords", len(keywords)),
		zap.Int("entities", len(entityIDs)),
	)

	return entityIDs
}

func (r *Resolver) resolveOne(ctx context.Context, keyword string) string {
	params := url.Values{}
	params.Set("query", keyword)
	params.Set("take", strconv.Itoa(searchCandidates))

	body, err := r.client.DoRequest(ctx, http.MethodGet, "/search", params)
	if err != nil {
		r.logger.Warn("Keyword lookup failed",
			zap.String("keyword", keyword),
			zap.Error(err),
		)
		return ""
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		r.logger.Warn("Keyword lookup returned malformed payload",
			zap.String("keyword", keyword),
			zap.Error(err),
		)
		return ""
	}

	if len(parsed.Results) == 0 || parsed.Results[0].EntityID == "" {
		r.logger.Debug("No entity found for keyword", zap.String("keyword", keyword))
		return ""
	}

	return parsed.Results[0].EntityID
}
