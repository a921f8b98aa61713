package taste

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/trendulum/trendulum-api-go/internal/domain"
)

func rawProfile(domains map[string]string) *domain.TasteProfile {
	out := make(map[string]json.RawMessage, len(domains))
	for tag, body := range domains {
		out[tag] = json.RawMessage(body)
	}
	return &domain.TasteProfile{Domains: out}
}

func TestSummarizeDropsErrorDomains(t *testing.T) {
	profile := rawProfile(map[string]string{
		"music":    `{"entities":[{"name":"Tycho"}]}`,
		"podcasts": `{"error":"Access to this domain is restricted."}`,
	})

	summary := Summarize(profile)

	if _, ok := summary["podcasts"]; ok {
		t.Error("error-marked domain should be dropped")
	}
	if got := summary["music"].Entities; len(got) != 1 || got[0].Name != "Tycho" {
		t.Errorf("music entities = %+v", got)
	}
}

func TestSummarizeCapsEntitiesAtThree(t *testing.T) {
	profile := rawProfile(map[string]string{
		"books": `{"entities":[{"name":"A"},{"name":"B"},{"name":"C"},{"name":"D"},{"name":"E"}]}`,
	})

	summary := Summarize(profile)

	names := make([]string, 0, 3)
	for _, e := range summary["books"].Entities {
		names = append(names, e.Name)
	}
	if !reflect.DeepEqual(names, []string{"A", "B", "C"}) {
		t.Errorf("entities = %v, want first three in order", names)
	}
}

func TestSummarizeAcceptsResultsFieldName(t *testing.T) {
	profile := rawProfile(map[string]string{
		"film": `{"results":[{"name":"Parasite"}]}`,
	})

	summary := Summarize(profile)

	if got := summary["film"].Entities; len(got) != 1 || got[0].Name != "Parasite" {
		t.Errorf("film entities = %+v", got)
	}
}

func TestSummarizeKeepsPresentButEmptyList(t *testing.T) {
	profile := rawProfile(map[string]string{
		"tv": `{"entities":[]}`,
	})

	summary := Summarize(profile)

	got, ok := summary["tv"]
	if !ok {
		t.Fatal("domain with empty entity list should be kept")
	}
	if len(got.Entities) != 0 {
		t.Errorf("entities = %+v, want empty", got.Entities)
	}
}

func TestSummarizeDropsUnusableDomains(t *testing.T) {
	profile := rawProfile(map[string]string{
		"music":                 `{"duration":12}`,
		"cross_domain_patterns": `["a","b"]`,
		"audience_persona":      `"conscious creators"`,
	})

	summary := Summarize(profile)

	if len(summary) != 0 {
		t.Errorf("summary = %+v, want empty", summary)
	}
}

func TestSummarizeSkipsNamelessEntities(t *testing.T) {
	profile := rawProfile(map[string]string{
		"music": `{"entities":[{"popularity":0.5},{"name":""},{"name":"Kept"}]}`,
	})

	summary := Summarize(profile)

	got := summary["music"].Entities
	if len(got) != 1 || got[0].Name != "Kept" {
		t.Errorf("entities = %+v, want only the named one", got)
	}
}

func TestSummarizeEntityProjection(t *testing.T) {
	profile := rawProfile(map[string]string{
		"fashion_brands": `{"entities":[{
			"name":"Everlane",
			"popularity":0.734,
			"properties":{"short_descriptions":[{"value":"Ethical basics"},{"value":"ignored"}]},
			"tags":[{"name":"minimalist"},{"name":""},{"name":"sustainable"},{"name":"excess"}],
			"external_ids":{"x":"leaks"}
		}]}`,
	})

	summary := Summarize(profile)

	got := summary["fashion_brands"].Entities
	if len(got) != 1 {
		t.Fatalf("entities = %+v", got)
	}
	entity := got[0]
	if entity.Name != "Everlane" {
		t.Errorf("name = %q", entity.Name)
	}
	if entity.ShortDescription != "Ethical basics" {
		t.Errorf("short description = %q", entity.ShortDescription)
	}
	if !reflect.DeepEqual(entity.Tags, []string{"minimalist", "sustainable"}) {
		t.Errorf("tags = %v", entity.Tags)
	}
	if entity.Popularity == nil || *entity.Popularity != 0.734 {
		t.Errorf("popularity = %v", entity.Popularity)
	}
}

func TestSummarizeScalarShortDescriptionFallback(t *testing.T) {
	profile := rawProfile(map[string]string{
		"books": `{"entities":[{"name":"Walden","properties":{"short_description":"Pond life"}}]}`,
	})

	summary := Summarize(profile)

	if got := summary["books"].Entities[0].ShortDescription; got != "Pond life" {
		t.Errorf("short description = %q", got)
	}
}

func TestSummarizeDoesNotMutateInput(t *testing.T) {
	raw := `{"entities":[{"name":"A"},{"name":"B"},{"name":"C"},{"name":"D"}]}`
	profile := rawProfile(map[string]string{"music": raw})

	Summarize(profile)

	if string(profile.Domains["music"]) != raw {
		t.Error("input profile was mutated")
	}
}

func TestSummarizeNilProfile(t *testing.T) {
	if got := Summarize(nil); len(got) != 0 {
		t.Errorf("Summarize(nil) = %+v, want empty", got)
	}
}
