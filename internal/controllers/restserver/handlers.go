package restserver

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/openhaul/dispatch/internal/geo"
	"github.com/openhaul/dispatch/internal/logsheet"
	"github.com/openhaul/dispatch/internal/planner"
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{controller: ctrl}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// planTripRequest mirrors planner.PlanRequest but tolerates loose numeric
// encodings for cycle hours.
type planTripRequest struct {
	CurrentLocation *planner.Location `json:"current_location"`
	PickupLocation  *planner.Location `json:"pickup_location"`
	DropoffLocation *planner.Location `json:"dropoff_location"`
	CycleUsedHours  json.Number       `json:"cycle_used_hours"`
}

func normalizeLocation(loc *planner.Location) *planner.Location {
	if loc == nil {
		return nil
	}
	loc.Label = strings.TrimSpace(loc.Label)
	return loc
}

func geoPoint(loc *planner.Location) geo.Point {
	if loc == nil {
		return geo.Point{}
	}
	p := geo.Point{Label: loc.Label}
	if loc.Lng != nil && loc.Lat != nil {
		p.Lng, p.Lat, p.Coords = *loc.Lng, *loc.Lat, true
	}
	return p
}

// planTripResponse wraps the backend's plan with console-side annotations.
type planTripResponse struct {
	*planner.PlanResponse
	AlreadyAtPickup bool `json:"already_at_pickup"`
}

// PlanTrip validates the trip request, forwards it to the planning backend,
// and relays the plan. Upstream failure surfaces as 502 with an inline
// error body; the console shows it next to the form.
func (h *Handlers) PlanTrip(w http.ResponseWriter, req *http.Request) {
	var body planTripRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cycleHours, err := body.CycleUsedHours.Float64()
	if err != nil || cycleHours < 0 {
		cycleHours = 0
	}

	planReq := planner.PlanRequest{
		CurrentLocation: normalizeLocation(body.CurrentLocation),
		PickupLocation:  normalizeLocation(body.PickupLocation),
		DropoffLocation: normalizeLocation(body.DropoffLocation),
		CycleUsedHours:  cycleHours,
	}

	plan, err := h.controller.Planner.PlanTrip(req.Context(), planReq)
	if err != nil {
		h.controller.logger.Errorf("trip planning failed: %v", err)
		writeError(w, http.StatusBadGateway, "trip planning backend unavailable")
		return
	}

	writeJSON(w, http.StatusOK, planTripResponse{
		PlanResponse:    plan,
		AlreadyAtPickup: geo.Equal(geoPoint(planReq.CurrentLocation), geoPoint(planReq.PickupLocation)),
	})
}

// SearchPlaces proxies autocomplete queries to the geocoding provider.
// Queries below the minimum length return an empty list; the client side
// debounces, the server side just enforces the floor.
func (h *Handlers) SearchPlaces(w http.ResponseWriter, req *http.Request) {
	query := req.URL.Query().Get("q")

	places, err := h.controller.Geocoder.Search(req.Context(), query)
	if err != nil {
		if req.Context().Err() != nil {
			return
		}
		h.controller.logger.Warnf("place search failed: %v", err)
		writeError(w, http.StatusBadGateway, "Failed to load suggestions")
		return
	}
	writeJSON(w, http.StatusOK, places)
}

// ReverseGeocode resolves a coordinate pair for "use current location".
func (h *Handlers) ReverseGeocode(w http.ResponseWriter, req *http.Request) {
	lng, errLng := strconv.ParseFloat(req.URL.Query().Get("lng"), 64)
	lat, errLat := strconv.ParseFloat(req.URL.Query().Get("lat"), 64)
	if errLng != nil || errLat != nil {
		writeError(w, http.StatusBadRequest, "lng and lat are required")
		return
	}

	place, err := h.controller.Geocoder.Reverse(req.Context(), lng, lat)
	if err != nil {
		if req.Context().Err() != nil {
			return
		}
		h.controller.logger.Warnf("reverse geocode failed: %v", err)
		writeError(w, http.StatusBadGateway, "Failed to resolve location")
		return
	}
	writeJSON(w, http.StatusOK, place)
}

// RetrieveCoordinates is the follow-up lookup for suggestions without
// coordinates.
func (h *Handlers) RetrieveCoordinates(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	place, err := h.controller.Geocoder.RetrieveCoordinates(req.Context(), id)
	if err != nil {
		if req.Context().Err() != nil {
			return
		}
		h.controller.logger.Warnf("coordinate retrieval failed for %q: %v", id, err)
		writeError(w, http.StatusBadGateway, "Failed to resolve coordinates")
		return
	}
	writeJSON(w, http.StatusOK, place)
}

// renderLogSheetRequest is one day of raw events and remarks, exactly as
// the planning backend emits them.
type renderLogSheetRequest struct {
	Day     json.Number          `json:"day"`
	Events  []logsheet.RawEvent  `json:"events"`
	Remarks []logsheet.RawRemark `json:"remarks"`
}

// RenderLogSheet renders one day's duty log as SVG. Malformed events and
// remarks never fail the render; normalization absorbs them and the sheet
// draws whatever is valid. Only an undecodable body is an error.
func (h *Handlers) RenderLogSheet(w http.ResponseWriter, req *http.Request) {
	var body renderLogSheetRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	day64, err := body.Day.Int64()
	if err != nil || day64 < 1 {
		day64 = 1
	}

	events := logsheet.NormalizeEvents(body.Events)
	remarks := logsheet.NormalizeRemarks(body.Remarks)

	// The request context doubles as the batch cancellation signal: a
	// client that re-renders with new input disconnects, which cancels
	// the superseded batch.
	labels := h.controller.Resolver.Resolve(req.Context(), remarks)
	if req.Context().Err() != nil {
		return
	}

	sheet := logsheet.Sheet{
		Day:     int(day64),
		Events:  events,
		Remarks: remarks,
		Labels:  labels,
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	if err := logsheet.RenderSVG(w, sheet, logsheet.DefaultGeometry()); err != nil {
		h.controller.logger.Errorf("writing log sheet: %v", err)
	}
}

// ServeIndex serves the embedded console page.
func (h *Handlers) ServeIndex(w http.ResponseWriter, req *http.Request) {
	page, err := fs.ReadFile(*h.controller.FS, "index.html")
	if err != nil {
		http.Error(w, "console page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "%s", page)
}
