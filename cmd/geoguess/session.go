package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andreiashu/geoguess"
)

const quitCommand = "quit"

func runSession(cmd *cobra.Command, _ []string) error {
	s := &session{
		solver: solver,
		in:     bufio.NewScanner(cmd.InOrStdin()),
		out:    cmd.OutOrStdout(),
		prompt: isTerminal(cmd.InOrStdin()),
	}
	return s.run()
}

// session is the interactive guess/distance loop.
type session struct {
	solver *geoguess.Solver
	in     *bufio.Scanner
	out    io.Writer
	prompt bool // print prompts; off when input is piped
}

func (s *session) run() error {
	fmt.Fprintln(s.out, "Country Distance Calculator")
	fmt.Fprintln(s.out, "==========================")

	for {
		name, ok := s.ask("\nEnter the country you guessed (or 'quit' to exit): ")
		if !ok {
			return s.in.Err()
		}
		if strings.EqualFold(name, quitCommand) {
			fmt.Fprintln(s.out, "Thank you for using the Country Distance Calculator!")
			return nil
		}

		guess, found := s.solver.Store().Lookup(name)
		if !found {
			fmt.Fprintf(s.out, "Error: Country '%s' not found in database\n", name)
			if sugg := s.solver.Store().Suggest(name, 2); len(sugg) > 0 {
				fmt.Fprintf(s.out, "Did you mean: %s?\n", strings.Join(sugg, ", "))
			}
			continue
		}

		expr, ok := s.ask("Enter the distance (km) and optional margin (e.g., 500--50): ")
		if !ok {
			return s.in.Err()
		}
		km, margin, err := geoguess.ParseDistance(expr)
		if err != nil {
			fmt.Fprintf(s.out, "Error parsing distance: %v\n", err)
			continue
		}

		res, err := s.solver.FindCandidates(guess, km, margin)
		if err != nil {
			if errors.Is(err, geoguess.ErrInvalidQuery) {
				fmt.Fprintf(s.out, "Error: %v\n", err)
				continue
			}
			return err
		}
		printResult(s.out, res)
	}
}

// ask prints label when prompting and reads one trimmed line.
// It reports false at end of input.
func (s *session) ask(label string) (string, bool) {
	if s.prompt {
		fmt.Fprint(s.out, label)
	}
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// printResult writes a search result the way the interactive session shows it.
func printResult(w io.Writer, res geoguess.Result) {
	if res.Exhausted() {
		fmt.Fprintf(w, "\nNo countries found even with increased margin of %s km.\n", formatKm(res.MarginKm))
		return
	}
	if res.Expanded() {
		fmt.Fprintf(w, "No countries found within %s km, increased search margin to %s km.\n",
			formatKm(res.InitialMarginKm), formatKm(res.MarginKm))
		fmt.Fprintf(w, "\nFound countries with adjusted margin of %s km:\n", formatKm(res.MarginKm))
	}
	fmt.Fprintf(w, "\nPossible mystery countries (%d found):\n", len(res.Candidates))
	for _, name := range res.Candidates {
		fmt.Fprintf(w, "- %s\n", name)
	}
}

func formatKm(km float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.3f", km), "0"), ".")
}
