package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andreiashu/geoguess"
)

var queryJSON bool

var queryCmd = &cobra.Command{
	Use:   "query <country> <distance[--margin]>",
	Short: "Find mystery country candidates once",
	Long: `Lists every country whose border is the given distance from the guessed
country. The distance may carry a margin, e.g. "500--50" for 450 to 550 km.
With no match the margin widens step by step up to the configured ceiling.`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(queryCmd)
}

// queryOutput is the JSON form of a search result.
type queryOutput struct {
	Guess           string   `json:"guess"`
	TargetKm        float64  `json:"target_km"`
	InitialMarginKm float64  `json:"initial_margin_km"`
	MarginKm        float64  `json:"margin_km"`
	Expanded        bool     `json:"expanded"`
	Iterations      int      `json:"iterations"`
	Candidates      []string `json:"candidates"`
}

func runQuery(cmd *cobra.Command, args []string) error {
	km, margin, err := geoguess.ParseDistance(args[1])
	if err != nil {
		return err
	}
	res, err := solver.Query(args[0], km, margin)
	if err != nil {
		return err
	}

	if queryJSON {
		out := queryOutput{
			Guess:           res.Guess,
			TargetKm:        res.TargetKm,
			InitialMarginKm: res.InitialMarginKm,
			MarginKm:        res.MarginKm,
			Expanded:        res.Expanded(),
			Iterations:      res.Iterations,
			Candidates:      res.Candidates,
		}
		if out.Candidates == nil {
			out.Candidates = []string{}
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	printResult(cmd.OutOrStdout(), res)
	return nil
}
