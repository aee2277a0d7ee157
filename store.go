package geoguess

import (
	"sort"
	"strings"

	geohash "github.com/TomiHiltunen/geohash-golang"
	"github.com/agnivade/levenshtein"
	"github.com/golang/geo/s2"
)

// maxSuggestDistance caps the edit distance used for "did you mean" lookups.
const maxSuggestDistance = 3

// querySuggestDistance is the edit distance used when a query names an
// unknown country.
const querySuggestDistance = 2

// geohashPrecision is the number of geohash characters reported by Describe.
// Five characters is a cell of roughly 5 km.
const geohashPrecision = 5

// Point is a boundary vertex in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

// LatLng converts p into an s2.LatLng.
func (p Point) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(p.Lat, p.Lng)
}

// Boundary is the outline of one country as a flat list of vertices,
// gathered from every ring of every polygon in its geometry. A Boundary is
// immutable; build it with NewBoundary.
type Boundary struct {
	Name string

	points  []Point
	latlngs []s2.LatLng // points converted once for the distance engine
}

// NewBoundary builds a Boundary. The points slice is copied.
func NewBoundary(name string, points []Point) Boundary {
	b := Boundary{
		Name:    name,
		points:  make([]Point, len(points)),
		latlngs: make([]s2.LatLng, len(points)),
	}
	copy(b.points, points)
	for i, p := range points {
		b.latlngs[i] = p.LatLng()
	}
	return b
}

// Points returns a copy of the boundary vertices.
func (b *Boundary) Points() []Point {
	out := make([]Point, len(b.points))
	copy(out, b.points)
	return out
}

// HasGeometry reports whether the boundary has any vertices to measure from.
func (b *Boundary) HasGeometry() bool {
	return len(b.latlngs) > 0
}

// BoundaryInfo summarizes a boundary for display.
type BoundaryInfo struct {
	Name     string
	Vertices int
	Bounds   s2.Rect
	Center   s2.LatLng
	Geohash  string // geohash of the bounds center, empty without geometry
}

// Describe returns the vertex count, bounding rectangle and a coarse
// geohash locator for the boundary.
func (b *Boundary) Describe() BoundaryInfo {
	info := BoundaryInfo{
		Name:     b.Name,
		Vertices: len(b.latlngs),
		Bounds:   s2.EmptyRect(),
	}
	for _, ll := range b.latlngs {
		info.Bounds = info.Bounds.AddPoint(ll)
	}
	if info.Bounds.IsEmpty() {
		return info
	}
	info.Center = info.Bounds.Center()
	hash := geohash.Encode(info.Center.Lat.Degrees(), info.Center.Lng.Degrees())
	if len(hash) > geohashPrecision {
		hash = hash[:geohashPrecision]
	}
	info.Geohash = hash
	return info
}

// Store holds every loaded country boundary. Iteration order is load order.
// A Store is read-only after construction and safe for concurrent use.
type Store struct {
	boundaries []*Boundary
	byName     map[string]int // lowercase name → index into boundaries
}

// NewStore builds a Store from boundaries. Names are unique case-insensitively;
// later duplicates of an existing name are dropped.
func NewStore(boundaries ...Boundary) *Store {
	s := &Store{
		boundaries: make([]*Boundary, 0, len(boundaries)),
		byName:     make(map[string]int, len(boundaries)),
	}
	for i := range boundaries {
		s.add(boundaries[i])
	}
	return s
}

// add appends b unless its name is already taken. It reports whether b was kept.
func (s *Store) add(b Boundary) bool {
	key := nameKey(b.Name)
	if key == "" {
		return false
	}
	if _, ok := s.byName[key]; ok {
		return false
	}
	s.byName[key] = len(s.boundaries)
	s.boundaries = append(s.boundaries, &b)
	return true
}

// Lookup finds a boundary by name, ignoring case and surrounding whitespace.
func (s *Store) Lookup(name string) (*Boundary, bool) {
	idx, ok := s.byName[nameKey(name)]
	if !ok {
		return nil, false
	}
	return s.boundaries[idx], true
}

// Boundaries returns all boundaries in load order.
// The returned slice must not be modified.
func (s *Store) Boundaries() []*Boundary {
	return s.boundaries
}

// Names returns all country names in load order.
func (s *Store) Names() []string {
	names := make([]string, len(s.boundaries))
	for i, b := range s.boundaries {
		names[i] = b.Name
	}
	return names
}

// Len returns the number of boundaries in the store.
func (s *Store) Len() int {
	return len(s.boundaries)
}

// Suggest returns country names within maxDist edits of name, closest first.
// maxDist is clamped to [1, maxSuggestDistance].
func (s *Store) Suggest(name string, maxDist int) []string {
	query := nameKey(name)
	if query == "" {
		return nil
	}
	if maxDist < 1 {
		maxDist = 1
	}
	if maxDist > maxSuggestDistance {
		maxDist = maxSuggestDistance
	}

	type suggestion struct {
		name string
		dist int
	}
	var found []suggestion
	for _, b := range s.boundaries {
		d := levenshtein.ComputeDistance(query, nameKey(b.Name))
		if d <= maxDist {
			found = append(found, suggestion{name: b.Name, dist: d})
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].dist < found[j].dist
	})

	names := make([]string, len(found))
	for i, f := range found {
		names[i] = f.name
	}
	return names
}

// nameKey normalizes a country name for case-insensitive comparison.
func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
