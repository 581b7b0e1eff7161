// Package pickup holds the collection-job model, the concurrent address
// resolver and the map-click geomatcher.
package pickup

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/ecovolt/ewaste-backend/internal/geo"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Job lifecycle states.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusCompleted = "completed"
)

// Location is one collection-job candidate as shown to a collector. The
// display metadata plays no part in geomatching.
type Location struct {
	ID               string          `json:"id"`
	Address          string          `json:"address"`
	Coordinates      geo.Coordinates `json:"coordinates"`
	CustomerName     string          `json:"customerName"`
	Items            string          `json:"items"`
	ScheduledTime    string          `json:"scheduledTime"`
	EstimatedEarning float64         `json:"estimatedEarning"`
	Status           string          `json:"status"`
}

// Fallback anchor for addresses the geocoder cannot resolve. The jitter
// spreads failed addresses around it so they render as distinct points
// instead of collapsing onto a single pin.
const (
	fallbackLat = 28.6139
	fallbackLng = 77.2090
	jitterRange = 0.025
)

// Resolver geocodes job addresses in parallel. The random source is guarded
// by a mutex because resolutions for one batch run concurrently.
type Resolver struct {
	geocoder geo.Geocoder

	mu  sync.Mutex
	rng *rand.Rand
}

func NewResolver(geocoder geo.Geocoder) *Resolver {
	return NewResolverWithRand(geocoder, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewResolverWithRand takes an explicit random source so fallback jitter is
// reproducible in tests.
func NewResolverWithRand(geocoder geo.Geocoder, rng *rand.Rand) *Resolver {
	return &Resolver{geocoder: geocoder, rng: rng}
}

func (r *Resolver) jitter() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return (r.rng.Float64()*2 - 1) * jitterRange
}

func (r *Resolver) fallbackCoordinates() geo.Coordinates {
	return geo.Coordinates{
		Lat: fallbackLat + r.jitter(),
		Lng: fallbackLng + r.jitter(),
	}
}

// ResolveAll geocodes every job address concurrently and returns the jobs
// with coordinates filled in. A failed resolution is logged and replaced
// with jittered fallback coordinates; one bad address never aborts the
// batch, and the batch as a whole cannot fail.
func (r *Resolver) ResolveAll(ctx context.Context, jobs []Location) []Location {
	resolved := make([]Location, len(jobs))
	g, ctx := errgroup.WithContext(ctx)

	for i, job := range jobs {
		g.Go(func() error {
			result, err := r.geocoder.Geocode(ctx, job.Address)
			if err != nil {
				log.Warn().Err(err).Str("address", job.Address).Msg("geocoding failed, using fallback coordinates")
				job.Coordinates = r.fallbackCoordinates()
			} else {
				job.Coordinates = result.Coordinates
			}
			resolved[i] = job
			return nil
		})
	}

	// Workers never return an error; Wait is only a join point.
	_ = g.Wait()
	return resolved
}
