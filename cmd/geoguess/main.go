// Command geoguess helps find a mystery country from a guessed country and
// the distance between them.
//
// Usage:
//
//	geoguess --data country_data.json
//	geoguess query France 500--50
//
// Boundary data is a GeoJSON FeatureCollection with a NAME property per
// country, such as the Natural Earth admin 0 countries file.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
