package geocode

import (
	"context"
	"sync"

	"github.com/openhaul/dispatch/internal/logsheet"
)

// UnresolvedLabel is the sentinel committed for coordinates that fail to
// resolve. It matches the sheet renderer's fallback.
const UnresolvedLabel = logsheet.UnresolvedLabel

// LabelGeocoder is the one capability the resolver needs from the geocoding
// client.
type LabelGeocoder interface {
	ReverseLabel(ctx context.Context, lng, lat float64) (string, error)
}

// Resolver resolves remark coordinates to short location labels, one
// outstanding lookup at a time, with a monotonically growing per-instance
// cache. Sequential resolution is a deliberate backpressure choice against
// provider rate limits, not an accident.
//
// Starting a new batch cancels whatever batch is still in flight; a
// cancelled batch commits nothing further. Cancellation is normal control
// flow, never an error.
type Resolver struct {
	geocoder LabelGeocoder

	mu          sync.Mutex
	cache       map[string]string
	cancelBatch context.CancelFunc
}

// NewResolver creates a resolver with an empty label cache.
func NewResolver(geocoder LabelGeocoder) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		cache:    make(map[string]string),
	}
}

type pending struct {
	key      string
	lng, lat float64
}

// Resolve looks up labels for every remark with coordinates that is not
// already cached, then returns a snapshot of the cache. The passed context
// bounds the whole batch; the batch also ends early if a newer Resolve call
// supersedes it.
func (r *Resolver) Resolve(ctx context.Context, remarks []logsheet.Remark) map[string]string {
	r.mu.Lock()
	if r.cancelBatch != nil {
		r.cancelBatch()
	}
	batchCtx, cancel := context.WithCancel(ctx)
	r.cancelBatch = cancel

	var batch []pending
	seen := make(map[string]bool)
	for _, rm := range remarks {
		if rm.Key == "" || seen[rm.Key] {
			continue
		}
		seen[rm.Key] = true
		if _, ok := r.cache[rm.Key]; ok {
			continue
		}
		batch = append(batch, pending{key: rm.Key, lng: rm.Lng, lat: rm.Lat})
	}
	r.mu.Unlock()

	for _, p := range batch {
		if batchCtx.Err() != nil {
			break
		}
		label, err := r.geocoder.ReverseLabel(batchCtx, p.lng, p.lat)
		if batchCtx.Err() != nil {
			// Superseded or caller went away; commit nothing more.
			break
		}
		if err != nil {
			label = UnresolvedLabel
		}
		r.mu.Lock()
		r.cache[p.key] = label
		r.mu.Unlock()
	}

	return r.Labels()
}

// Labels returns a snapshot of the current cache.
func (r *Resolver) Labels() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]string, len(r.cache))
	for k, v := range r.cache {
		out[k] = v
	}
	return out
}

// Close cancels any in-flight batch. The cache is discarded with the
// resolver itself.
func (r *Resolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancelBatch != nil {
		r.cancelBatch()
		r.cancelBatch = nil
	}
}
