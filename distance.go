package geoguess

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// EarthRadiusKm is the mean Earth radius used to turn central angles into
// surface distances.
const EarthRadiusKm = 6371.0088

// angleToKm converts a central angle to kilometers on the Earth's surface.
func angleToKm(a s1.Angle) float64 {
	return a.Radians() * EarthRadiusKm
}

// HaversineKm returns the great-circle distance between a and b in kilometers.
// s2.LatLng.Distance uses the haversine formula.
func HaversineKm(a, b Point) float64 {
	return angleToKm(pairAngle(a.LatLng(), b.LatLng()))
}

// pairAngle is the central angle between p and q. The points are put in a
// fixed order first: s2 multiplies the cosines left to right, so swapping the
// arguments can move the result by one ulp.
func pairAngle(p, q s2.LatLng) s1.Angle {
	if q.Lat < p.Lat || (q.Lat == p.Lat && q.Lng < p.Lng) {
		p, q = q, p
	}
	return p.Distance(q)
}

// MinDistanceKm returns the smallest great-circle distance between any vertex
// of a and any vertex of b. It reports false if either side has no vertices.
func MinDistanceKm(a, b []Point) (float64, bool) {
	if len(a) == 0 || len(b) == 0 {
		return 0, false
	}
	lla := make([]s2.LatLng, len(a))
	for i, p := range a {
		lla[i] = p.LatLng()
	}
	llb := make([]s2.LatLng, len(b))
	for i, p := range b {
		llb[i] = p.LatLng()
	}
	return minDistanceKm(lla, llb)
}

// DistanceTo returns the minimum vertex-to-vertex distance between two
// boundaries in kilometers, or false if either has no geometry.
func (b *Boundary) DistanceTo(other *Boundary) (float64, bool) {
	return minDistanceKm(b.latlngs, other.latlngs)
}

// minDistanceKm scans every pair. The minimum is kept as an angle and
// converted once, so the result orders exactly like angular separation.
func minDistanceKm(a, b []s2.LatLng) (float64, bool) {
	if len(a) == 0 || len(b) == 0 {
		return 0, false
	}
	best := s1.Angle(math.Inf(1))
	for _, p := range a {
		for _, q := range b {
			if d := pairAngle(p, q); d < best {
				best = d
				if best == 0 {
					return 0, true
				}
			}
		}
	}
	return angleToKm(best), true
}
