package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/openhaul/dispatch/pkg/config"
)

func testClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.GeocoderData{
		Endpoint: server.URL,
		Token:    token,
	}, zap.NewNop().Sugar())
}

const chicagoFeatures = `{
  "features": [
    {"id": "place.1", "text": "Chicago", "place_name": "Chicago, Illinois, United States",
     "place_type": ["place"], "center": [-87.65005, 41.85003]},
    {"id": "region.2", "text": "Illinois", "place_type": ["region"],
     "properties": {"short_code": "US-IL"}}
  ]
}`

func TestSearch(t *testing.T) {
	var gotPath string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.URL.Query().Get("access_token") != "tok" {
			t.Error("missing access token")
		}
		w.Write([]byte(chicagoFeatures))
	}, "tok")

	places, err := client.Search(context.Background(), "Chicago")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if gotPath != "/Chicago.json" {
		t.Errorf("request path = %q", gotPath)
	}
	if len(places) != 2 {
		t.Fatalf("expected 2 places, got %d", len(places))
	}
	if places[0].Label != "Chicago, Illinois, United States" {
		t.Errorf("label = %q", places[0].Label)
	}
	if places[0].Lng != -87.65005 || places[0].Lat != 41.85003 {
		t.Errorf("coords = %f,%f", places[0].Lng, places[0].Lat)
	}
}

func TestSearchShortQuery(t *testing.T) {
	called := false
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, "tok")

	places, err := client.Search(context.Background(), "  ab ")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if called {
		t.Error("short query must not reach the provider")
	}
	if len(places) != 0 {
		t.Errorf("expected empty result set, got %v", places)
	}
}

func TestSearchWithoutToken(t *testing.T) {
	client := NewClient(config.GeocoderData{}, zap.NewNop().Sugar())
	places, err := client.Search(context.Background(), "Chicago")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(places) != 0 {
		t.Error("missing token must degrade to an empty result set")
	}
}

func TestReverse(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chicagoFeatures))
	}, "tok")

	place, err := client.Reverse(context.Background(), -87.65, 41.85)
	if err != nil {
		t.Fatalf("Reverse failed: %v", err)
	}
	if place.Label != "Chicago, Illinois, United States" {
		t.Errorf("label = %q", place.Label)
	}
}

func TestReverseLabel(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{
			name:     "city and state",
			status:   http.StatusOK,
			body:     chicagoFeatures,
			expected: "Chicago, IL",
		},
		{
			name:   "city only",
			status: http.StatusOK,
			body: `{"features":[{"text":"Chicago","place_type":["place"]}]}`,
			expected: "Chicago",
		},
		{
			name:   "state only",
			status: http.StatusOK,
			body: `{"features":[{"place_type":["region"],"properties":{"short_code":"US-IL"}}]}`,
			expected: "IL",
		},
		{
			name:     "no usable features",
			status:   http.StatusOK,
			body:     `{"features":[]}`,
			expected: UnresolvedLabel,
		},
		{
			name:     "provider error degrades to sentinel",
			status:   http.StatusTooManyRequests,
			body:     `rate limited`,
			expected: UnresolvedLabel,
		},
		{
			name:     "malformed payload degrades to sentinel",
			status:   http.StatusOK,
			body:     `{"features": not json`,
			expected: UnresolvedLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}, "tok")

			label, err := client.ReverseLabel(context.Background(), -87.65, 41.85)
			if err != nil {
				t.Fatalf("ReverseLabel failed: %v", err)
			}
			if label != tt.expected {
				t.Errorf("label = %q, expected %q", label, tt.expected)
			}
		})
	}
}

func TestReverseLabelCancellation(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}, "tok")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ReverseLabel(ctx, -87.65, 41.85)
	if err == nil {
		t.Fatal("cancelled lookup must return the context error, not a sentinel")
	}
}

func TestRetrieveCoordinates(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chicagoFeatures))
	}, "tok")

	place, err := client.RetrieveCoordinates(context.Background(), "place.1")
	if err != nil {
		t.Fatalf("RetrieveCoordinates failed: %v", err)
	}
	if place.Lng != -87.65005 || place.Lat != 41.85003 {
		t.Errorf("coords = %f,%f", place.Lng, place.Lat)
	}
}
