package planner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/openhaul/dispatch/internal/logsheet"
	"github.com/openhaul/dispatch/pkg/config"
)

func testServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(config.PlannerData{BaseURL: server.URL}, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func TestPlanTrip(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/trips/plan" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}

		var req PlanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.PickupLocation == nil || req.PickupLocation.Label != "Chicago, IL" {
			t.Errorf("pickup = %+v", req.PickupLocation)
		}
		if req.CycleUsedHours != 12.5 {
			t.Errorf("cycle_used_hours = %f", req.CycleUsedHours)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"route": map[string]any{
				"polyline":       [][]float64{{-87.65, 41.85}, {-104.99, 39.74}},
				"distance_miles": 1003.2,
				"duration_hours": 18.5,
			},
			"stops": []map[string]any{
				{"type": "pickup", "lng": -87.65, "lat": 41.85},
				{"type": "fuel", "mile": 500.0},
			},
			"summary": map[string]any{
				"total_days":     2,
				"driving_hours":  18.5,
				"hos_compliance": true,
			},
			"logs": []map[string]any{
				{
					"day": 1,
					"events": []map[string]any{
						{"status": "DRIVING", "start": 420, "end": 720},
					},
					"remarks": []map[string]any{
						{"minute": 420, "stop_type": "pickup", "lng": -87.65, "lat": 41.85},
					},
				},
			},
		})
	})

	lng, lat := -87.65, 41.85
	plan, err := client.PlanTrip(context.Background(), PlanRequest{
		PickupLocation:  &Location{Label: "Chicago, IL", Lng: &lng, Lat: &lat},
		DropoffLocation: &Location{Label: "Denver, CO"},
		CycleUsedHours:  12.5,
	})
	if err != nil {
		t.Fatalf("PlanTrip failed: %v", err)
	}

	if plan.Route.DistanceMiles != 1003.2 {
		t.Errorf("distance = %f", plan.Route.DistanceMiles)
	}
	if len(plan.Stops) != 2 || plan.Stops[0].Type != "pickup" {
		t.Errorf("stops = %+v", plan.Stops)
	}
	if !plan.Summary.HOSCompliance || plan.Summary.TotalDays != 2 {
		t.Errorf("summary = %+v", plan.Summary)
	}
	if len(plan.Logs) != 1 || plan.Logs[0].Day != 1 {
		t.Fatalf("logs = %+v", plan.Logs)
	}

	// Raw log events feed the normalizer unchanged.
	events := logsheet.NormalizeEvents(plan.Logs[0].Events)
	if len(events) != 1 || events[0].Status != logsheet.Driving {
		t.Errorf("normalized events = %+v", events)
	}
}

func TestPlanTripBackendError(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	if _, err := client.PlanTrip(context.Background(), PlanRequest{}); err == nil {
		t.Fatal("expected an error for a failing backend")
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(config.PlannerData{}, zap.NewNop().Sugar()); err == nil {
		t.Fatal("expected an error for a missing base URL")
	}
}
