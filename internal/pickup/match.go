package pickup

import (
	"math"

	"github.com/ecovolt/ewaste-backend/internal/geo"
)

// CoordEpsilon is the per-axis tolerance for treating a map click as
// selecting a job's pin.
const CoordEpsilon = 1e-4

// Match returns the first job in list order whose coordinates are within
// CoordEpsilon of the click on both axes. A miss is an ordinary no-selection
// result, not an error.
func Match(click geo.Coordinates, jobs []Location) (Location, bool) {
	for _, job := range jobs {
		if math.Abs(job.Coordinates.Lat-click.Lat) < CoordEpsilon &&
			math.Abs(job.Coordinates.Lng-click.Lng) < CoordEpsilon {
			return job, true
		}
	}
	return Location{}, false
}
