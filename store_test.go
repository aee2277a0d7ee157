package geoguess

import (
	"testing"
)

func TestNameKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"France", "france"},
		{"  SAN MARINO ", "san marino"},
		{"Côte d'Ivoire", "côte d'ivoire"},
		{"", ""},
		{"\t\n", ""},
	}
	for _, tt := range tests {
		if got := nameKey(tt.input); got != tt.want {
			t.Errorf("nameKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNewStore(t *testing.T) {
	store := NewStore(
		NewBoundary("Chile", []Point{{Lat: -33, Lng: -70}}),
		NewBoundary("CHILE", []Point{{Lat: 0, Lng: 0}}),
		NewBoundary("  ", []Point{{Lat: 1, Lng: 1}}),
		NewBoundary("Peru", []Point{{Lat: -12, Lng: -77}}),
	)

	if got := store.Names(); len(got) != 2 || got[0] != "Chile" || got[1] != "Peru" {
		t.Fatalf("Names() = %v, want [Chile Peru]", got)
	}

	peru, _ := store.Lookup("peru")
	if !peru.HasGeometry() {
		t.Error("Peru.HasGeometry() = false, want true")
	}
	chile, _ := store.Lookup("chile")
	if _, ok := chile.DistanceTo(peru); !ok {
		t.Error("Chile.DistanceTo(Peru) reported no distance")
	}
}

func TestNewBoundary_CopiesPoints(t *testing.T) {
	pts := []Point{{Lat: 1, Lng: 2}}
	b := NewBoundary("X", pts)
	pts[0] = Point{Lat: 50, Lng: 50}
	if got := b.Points()[0]; got != (Point{Lat: 1, Lng: 2}) {
		t.Errorf("boundary changed with caller slice: %v", got)
	}
}

func TestBoundaryPoints_ReturnsCopy(t *testing.T) {
	a := NewBoundary("A", []Point{{Lat: 0, Lng: 0}})
	b := NewBoundary("B", []Point{{Lat: 0, Lng: 1}})
	before, _ := a.DistanceTo(&b)

	pts := a.Points()
	pts[0] = Point{Lat: 0, Lng: 0.5}

	if got := a.Points()[0]; got != (Point{Lat: 0, Lng: 0}) {
		t.Errorf("Points()[0] = %v after editing the returned slice, want {0 0}", got)
	}
	if after, _ := a.DistanceTo(&b); after != before {
		t.Errorf("DistanceTo() = %v after editing Points(), want %v", after, before)
	}
	if info := a.Describe(); info.Vertices != 1 {
		t.Errorf("Describe().Vertices = %d, want 1", info.Vertices)
	}
}

func TestStoreSuggest(t *testing.T) {
	store := NewStore(
		NewBoundary("France", nil),
		NewBoundary("Iran", nil),
		NewBoundary("Iraq", nil),
		NewBoundary("Italy", nil),
		NewBoundary("Mali", nil),
	)

	tests := []struct {
		name    string
		query   string
		maxDist int
		want    []string
	}{
		{"transposition", "Frnace", 2, []string{"France"}},
		{"closest first", "Iraqq", 2, []string{"Iraq", "Iran"}},
		{"ties keep store order", "Ira", 1, []string{"Iran", "Iraq"}},
		{"case ignored", "ITALI", 1, []string{"Italy"}},
		{"nothing close", "Kazakhstan", 3, []string{}},
		{"empty query", "", 3, nil},
		{"distance clamped", "Frnace", 100, []string{"France"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := store.Suggest(tt.query, tt.maxDist)
			if len(got) != len(tt.want) {
				t.Fatalf("Suggest(%q, %d) = %v, want %v", tt.query, tt.maxDist, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Suggest(%q, %d) = %v, want %v", tt.query, tt.maxDist, got, tt.want)
					break
				}
			}
		})
	}
}

func TestBoundaryDescribe(t *testing.T) {
	b := NewBoundary("Box", []Point{{Lat: 10, Lng: 20}, {Lat: 12, Lng: 20}, {Lat: 12, Lng: 24}, {Lat: 10, Lng: 24}})
	info := b.Describe()

	if info.Vertices != 4 {
		t.Errorf("Vertices = %d, want 4", info.Vertices)
	}
	if lat := info.Center.Lat.Degrees(); lat < 10.999 || lat > 11.001 {
		t.Errorf("Center.Lat = %v, want 11", lat)
	}
	if lng := info.Center.Lng.Degrees(); lng < 21.999 || lng > 22.001 {
		t.Errorf("Center.Lng = %v, want 22", lng)
	}
	if len(info.Geohash) != geohashPrecision {
		t.Errorf("Geohash = %q, want %d characters", info.Geohash, geohashPrecision)
	}
	if lo := info.Bounds.Lo().Lat.Degrees(); lo < 9.999 || lo > 10.001 {
		t.Errorf("Bounds.Lo().Lat = %v, want 10", lo)
	}

	empty := NewBoundary("Empty", nil)
	if info := empty.Describe(); info.Geohash != "" || info.Vertices != 0 || !info.Bounds.IsEmpty() {
		t.Errorf("Describe() of empty boundary = %+v", info)
	}
}
