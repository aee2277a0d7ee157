package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andreiashu/geoguess"
)

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List the loaded countries",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		for _, b := range solver.Store().Boundaries() {
			if b.HasGeometry() {
				fmt.Fprintln(out, b.Name)
			} else {
				fmt.Fprintf(out, "%s (no geometry)\n", b.Name)
			}
		}
	},
}

var distanceCmd = &cobra.Command{
	Use:   "distance <country> <country>",
	Short: "Print the minimum border distance between two countries",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range args {
			if _, ok := solver.Store().Lookup(name); !ok {
				return &geoguess.UnknownCountryError{Name: name, Suggestions: solver.Store().Suggest(name, 2)}
			}
		}
		km, ok := solver.Distance(args[0], args[1])
		if !ok {
			return fmt.Errorf("no distance between %s and %s: missing boundary geometry", args[0], args[1])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s km\n", formatKm(km))
		return nil
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe <country>",
	Short: "Show boundary details for a country",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, ok := solver.Store().Lookup(args[0])
		if !ok {
			return &geoguess.UnknownCountryError{Name: args[0], Suggestions: solver.Store().Suggest(args[0], 2)}
		}
		info := b.Describe()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Name:     %s\n", info.Name)
		fmt.Fprintf(out, "Vertices: %d\n", info.Vertices)
		if info.Vertices == 0 {
			fmt.Fprintln(out, "Bounds:   none")
			return nil
		}
		lo, hi := info.Bounds.Lo(), info.Bounds.Hi()
		fmt.Fprintf(out, "Bounds:   %.4f,%.4f to %.4f,%.4f\n",
			lo.Lat.Degrees(), lo.Lng.Degrees(), hi.Lat.Degrees(), hi.Lng.Degrees())
		fmt.Fprintf(out, "Center:   %.4f,%.4f\n", info.Center.Lat.Degrees(), info.Center.Lng.Degrees())
		fmt.Fprintf(out, "Geohash:  %s\n", info.Geohash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countriesCmd, distanceCmd, describeCmd)
}
