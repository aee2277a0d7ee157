package geoguess

import (
	"fmt"
	"strconv"
	"strings"
)

// marginSeparator splits a distance expression into distance and margin.
const marginSeparator = "--"

// ParseDistance parses a distance expression of the form "<km>" or
// "<km>--<margin>", e.g. "500" or "500--50". The margin defaults to 0.
// Both values must be non-negative.
func ParseDistance(input string) (distanceKm, marginKm float64, err error) {
	parts := strings.Split(strings.TrimSpace(input), marginSeparator)

	switch len(parts) {
	case 1:
		distanceKm, err = parseKm("distance", parts[0])
		if err != nil {
			return 0, 0, err
		}
		return distanceKm, 0, nil
	case 2:
		distanceKm, err = parseKm("distance", parts[0])
		if err != nil {
			return 0, 0, err
		}
		marginKm, err = parseKm("margin", parts[1])
		if err != nil {
			return 0, 0, err
		}
		return distanceKm, marginKm, nil
	default:
		return 0, 0, fmt.Errorf("%w: use 'distance' or 'distance--margin'", ErrInvalidQuery)
	}
}

func parseKm(what, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s format %q", ErrInvalidQuery, what, s)
	}
	if err := validateDistance(what, v); err != nil {
		return 0, err
	}
	return v, nil
}
