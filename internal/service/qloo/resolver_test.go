package qloo

import (
	"context"
	"errors"
	"net/url"
	"reflect"
	"sync"
	"testing"

	"go.uber.org/zap"
)

type fakeRequester struct {
	configured bool
	respond    func(path string, params url.Values) ([]byte, error)

	mu    sync.Mutex
	calls []string
}

func (f *fakeRequester) DoRequest(ctx context.Context, method, path string, params url.Values) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, path+"?"+params.Encode())
	f.mu.Unlock()
	return f.respond(path, params)
}

func (f *fakeRequester) Configured() bool {
	return f.configured
}

func searchBody(entityIDs ...string) []byte {
	body := `{"results":[`
	for i, id := range entityIDs {
		if i > 0 {
			body += ","
		}
		body += `{"entity_id":"` + id + `","name":"x"}`
	}
	return []byte(body + `]}`)
}

func TestResolveDeduplicatesAndSorts(t *testing.T) {
	requester := &fakeRequester{
		configured: true,
		respond: func(path string, params url.Values) ([]byte, error) {
			switch params.Get("query") {
			case "yoga", "pilates":
				return searchBody("urn:entity:B"), nil
			case "cooking":
				return searchBody("urn:entity:A", "urn:entity:ignored"), nil
			}
			return searchBody(), nil
		},
	}

	resolver := NewResolver(requester, zap.NewNop())
	got := resolver.Resolve(context.Background(), []string{"yoga", "cooking", "pilates"})

	want := []string{"urn:entity:A", "urn:entity:B"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Resolve() = %v, want %v", got, want)
	}
}

func TestResolveSkipsFailedKeywords(t *testing.T) {
	requester := &fakeRequester{
		configured: true,
		respond: func(path string, params url.Values) ([]byte, error) {
			switch params.Get("query") {
			case "broken":
				return nil, errors.New("upstream timeout")
			case "garbled":
				return []byte("not json"), nil
			case "unknown":
				return searchBody(), nil
			}
			return searchBody("urn:entity:kept"), nil
		},
	}

	resolver := NewResolver(requester, zap.NewNop())
	got := resolver.Resolve(context.Background(), []string{"broken", "garbled", "unknown", "good"})

	want := []string{"urn:entity:kept"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Resolve() = %v, want %v", got, want)
	}
}

func TestResolveNothingResolvableYieldsEmpty(t *testing.T) {
	requester := &fakeRequester{
		configured: true,
		respond: func(path string, params url.Values) ([]byte, error) {
			return searchBody(), nil
		},
	}

	resolver := NewResolver(requester, zap.NewNop())
	if got := resolver.Resolve(context.Background(), []string{"a", "b"}); len(got) != 0 {
		t.Fatalf("Resolve() = %v, want empty", got)
	}
}

func TestResolveUnconfiguredSkipsNetwork(t *testing.T) {
	requester := &fakeRequester{
		configured: false,
		respond: func(path string, params url.Values) ([]byte, error) {
			t.Fatal("DoRequest should not be called when unconfigured")
			return nil, nil
		},
	}

	resolver := NewResolver(requester, zap.NewNop())
	if got := resolver.Resolve(context.Background(), []string{"yoga"}); got != nil {
		t.Fatalf("Resolve() = %v, want nil", got)
	}
}

func TestResolveRequestsTwoCandidates(t *testing.T) {
	requester := &fakeRequester{
		configured: true,
		respond: func(path string, params url.Values) ([]byte, error) {
			if path != "/search" {
				t.Errorf("path = %q, want /search", path)
			}
			if take := params.Get("take"); take != "2" {
				t.Errorf("take = %q, want 2", take)
			}
			return searchBody("urn:entity:X"), nil
		},
	}

	resolver := NewResolver(requester, zap.NewNop())
	resolver.Resolve(context.Background(), []string{"keyword"})

	if len(requester.calls) != 1 {
		t.Fatalf("expected 1 request, got %d", len(requester.calls))
	}
}
