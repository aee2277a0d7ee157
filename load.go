package geoguess

import (
	"bytes"
	"compress/bzip2"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog"
)

// NameProperty is the feature property holding the country name.
const NameProperty = "NAME"

// ErrNotFeatureCollection is returned when the boundary document is valid
// GeoJSON but not a FeatureCollection.
var ErrNotFeatureCollection = errors.New("geojson is not a FeatureCollection")

// LoadOptions configures boundary loading.
type LoadOptions struct {
	Logger zerolog.Logger // receives one debug line per skipped feature
}

// LoadFile reads a GeoJSON FeatureCollection of country boundaries from path.
// Files ending in .bz2 are decompressed on the fly.
func LoadFile(path string, opts ...LoadOptions) (*Store, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening boundary data: %w", err)
	}
	defer fh.Close()

	var r io.Reader = fh
	if strings.HasSuffix(path, ".bz2") {
		r = bzip2.NewReader(fh)
	}
	store, err := LoadGeoJSON(r, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return store, nil
}

// LoadGeoJSON builds a Store from a GeoJSON FeatureCollection.
//
// Every feature needs a string NAME property and a Polygon or MultiPolygon
// geometry; other features are skipped. Vertices are taken polygon by
// polygon, ring by ring, in file order.
func LoadGeoJSON(r io.Reader, opts ...LoadOptions) (*Store, error) {
	options := LoadOptions{Logger: zerolog.Nop()}
	if len(opts) > 0 {
		options = opts[0]
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading geojson: %w", err)
	}

	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(data), &probe); err != nil {
		return nil, fmt.Errorf("invalid geojson: %w", err)
	}
	if probe.Type != "FeatureCollection" {
		return nil, fmt.Errorf("%w (type %q)", ErrNotFeatureCollection, probe.Type)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("invalid geojson: %w", err)
	}

	store := NewStore()
	for i, f := range fc.Features {
		b, ok := featureBoundary(f)
		if !ok {
			options.Logger.Debug().Int("feature", i).Msg("skipping feature without NAME or polygon geometry")
			continue
		}
		if !store.add(b) {
			options.Logger.Debug().Int("feature", i).Str("name", b.Name).Msg("skipping duplicate country")
		}
	}
	return store, nil
}

// featureBoundary extracts the name and vertices of one feature.
func featureBoundary(f *geojson.Feature) (Boundary, bool) {
	if f == nil || f.Geometry == nil {
		return Boundary{}, false
	}
	name, ok := f.Properties[NameProperty].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return Boundary{}, false
	}

	var points []Point
	switch g := f.Geometry.(type) {
	case orb.MultiPolygon:
		for _, poly := range g {
			points = appendPolygon(points, poly)
		}
	case orb.Polygon:
		points = appendPolygon(points, g)
	default:
		return Boundary{}, false
	}
	return NewBoundary(name, points), true
}

func appendPolygon(points []Point, poly orb.Polygon) []Point {
	for _, ring := range poly {
		for _, p := range ring {
			points = append(points, Point{Lat: p.Lat(), Lng: p.Lon()})
		}
	}
	return points
}
