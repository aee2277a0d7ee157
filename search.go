package geoguess

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Margin expansion defaults, in kilometers.
const (
	DefaultMarginStepKm    = 1.0
	DefaultMarginCeilingKm = 100.0
)

var (
	// ErrInvalidQuery is returned for negative or non-finite distances and margins.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrUnknownCountry is returned when a guessed country is not in the store.
	ErrUnknownCountry = errors.New("unknown country")
)

// UnknownCountryError carries the unmatched name and close matches from the store.
type UnknownCountryError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownCountryError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("country %q not found", e.Name)
	}
	return fmt.Sprintf("country %q not found (did you mean %s?)", e.Name, strings.Join(e.Suggestions, ", "))
}

func (e *UnknownCountryError) Unwrap() error { return ErrUnknownCountry }

// SolverConfig contains the tunables for candidate search.
type SolverConfig struct {
	MarginStepKm    float64 // Margin added per expansion (default: 1)
	MarginCeilingKm float64 // Expansion stops once the margin reaches this (default: 100)
	SpecialPairs    SpecialPairs
	Cache           *DistanceCache
	Logger          zerolog.Logger
	Metrics         *Metrics
}

// Option is a functional option for configuring a Solver.
type Option func(*SolverConfig)

// WithMarginStep sets how much the margin grows per expansion.
func WithMarginStep(km float64) Option {
	return func(c *SolverConfig) {
		c.MarginStepKm = km
	}
}

// WithMarginCeiling sets the margin at which expansion stops.
func WithMarginCeiling(km float64) Option {
	return func(c *SolverConfig) {
		c.MarginCeilingKm = km
	}
}

// WithSpecialPairs replaces the special pair table.
func WithSpecialPairs(p SpecialPairs) Option {
	return func(c *SolverConfig) {
		c.SpecialPairs = p
	}
}

// WithCache shares an existing distance cache with the solver.
func WithCache(cache *DistanceCache) Option {
	return func(c *SolverConfig) {
		c.Cache = cache
	}
}

// WithLogger sets the logger used for search diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *SolverConfig) {
		c.Logger = l
	}
}

// WithMetrics records cache and search activity on m.
func WithMetrics(m *Metrics) Option {
	return func(c *SolverConfig) {
		c.Metrics = m
	}
}

func defaultSolverConfig() *SolverConfig {
	return &SolverConfig{
		MarginStepKm:    DefaultMarginStepKm,
		MarginCeilingKm: DefaultMarginCeilingKm,
		SpecialPairs:    DefaultSpecialPairs(),
		Logger:          zerolog.Nop(),
	}
}

// Solver finds mystery country candidates from a guess and a distance.
// Safe for concurrent use; the distance cache is shared by all queries.
type Solver struct {
	store   *Store
	cache   *DistanceCache
	special SpecialPairs
	step    float64
	ceiling float64
	log     zerolog.Logger
	metrics *Metrics
}

// NewSolver creates a Solver over store.
//
//	s, err := NewSolver(store, WithMarginCeiling(250))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := s.Query("France", 0, 0)
func NewSolver(store *Store, opts ...Option) (*Solver, error) {
	if store == nil {
		return nil, errors.New("nil boundary store")
	}
	cfg := defaultSolverConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if !(cfg.MarginStepKm > 0) || math.IsInf(cfg.MarginStepKm, 0) {
		return nil, fmt.Errorf("margin step must be positive and finite, got %v", cfg.MarginStepKm)
	}
	if !(cfg.MarginCeilingKm >= 0) || math.IsInf(cfg.MarginCeilingKm, 0) {
		return nil, fmt.Errorf("margin ceiling must be non-negative and finite, got %v", cfg.MarginCeilingKm)
	}
	if cfg.Cache == nil {
		cfg.Cache = NewDistanceCache()
	}
	if cfg.Metrics != nil && cfg.Cache.metrics == nil {
		cfg.Cache.metrics = cfg.Metrics
	}

	return &Solver{
		store:   store,
		cache:   cfg.Cache,
		special: cfg.SpecialPairs,
		step:    cfg.MarginStepKm,
		ceiling: cfg.MarginCeilingKm,
		log:     cfg.Logger,
		metrics: cfg.Metrics,
	}, nil
}

// Store returns the boundary store the solver searches.
func (s *Solver) Store() *Store { return s.store }

// Cache returns the solver's distance cache.
func (s *Solver) Cache() *DistanceCache { return s.cache }

// Result is the outcome of a candidate search.
type Result struct {
	Guess           string
	TargetKm        float64
	InitialMarginKm float64
	MarginKm        float64  // margin in effect when the search stopped
	Iterations      int      // number of margin values evaluated
	Candidates      []string // matching countries in store order
}

// Expanded reports whether the margin had to be widened.
func (r Result) Expanded() bool {
	return r.MarginKm > r.InitialMarginKm
}

// Exhausted reports whether the search reached the ceiling without a match.
func (r Result) Exhausted() bool {
	return len(r.Candidates) == 0
}

// Query resolves guess by name and runs FindCandidates.
// Unknown names return an *UnknownCountryError wrapping ErrUnknownCountry.
func (s *Solver) Query(guess string, targetKm, marginKm float64) (Result, error) {
	b, ok := s.store.Lookup(guess)
	if !ok {
		return Result{}, &UnknownCountryError{
			Name:        strings.TrimSpace(guess),
			Suggestions: s.store.Suggest(guess, querySuggestDistance),
		}
	}
	return s.FindCandidates(b, targetKm, marginKm)
}

// FindCandidates returns every country whose distance to guessed lies within
// [targetKm-marginKm, targetKm+marginKm], or that forms a special pair with it.
//
// If nothing matches, the margin grows by the configured step and all
// countries are evaluated again, until something matches or the margin
// reaches the ceiling. An empty result at the ceiling is not an error.
func (s *Solver) FindCandidates(guessed *Boundary, targetKm, marginKm float64) (Result, error) {
	if guessed == nil {
		return Result{}, fmt.Errorf("%w: no guessed country", ErrInvalidQuery)
	}
	if err := validateDistance("distance", targetKm); err != nil {
		return Result{}, err
	}
	if err := validateDistance("margin", marginKm); err != nil {
		return Result{}, err
	}

	res := Result{
		Guess:           guessed.Name,
		TargetKm:        targetKm,
		InitialMarginKm: marginKm,
	}
	margin := marginKm
	for {
		res.Iterations++
		res.MarginKm = margin
		res.Candidates = s.scan(guessed, targetKm, margin)
		if len(res.Candidates) > 0 || margin >= s.ceiling {
			break
		}
		// Derive from the iteration count so repeated steps do not drift.
		margin = marginKm + float64(res.Iterations)*s.step
		s.metrics.observeExpansion()
		s.log.Debug().
			Str("guess", guessed.Name).
			Float64("target_km", targetKm).
			Float64("margin_km", margin).
			Msg("no countries found, increasing search margin")
	}

	s.metrics.observeSearch(res)
	s.log.Debug().
		Str("guess", guessed.Name).
		Float64("target_km", targetKm).
		Float64("margin_km", res.MarginKm).
		Int("iterations", res.Iterations).
		Int("candidates", len(res.Candidates)).
		Msg("search finished")
	return res, nil
}

// scan evaluates every country other than guessed against one margin value.
func (s *Solver) scan(guessed *Boundary, targetKm, marginKm float64) []string {
	lower := targetKm - marginKm
	upper := targetKm + marginKm
	guessKey := nameKey(guessed.Name)

	var matches []string
	for _, b := range s.store.Boundaries() {
		if nameKey(b.Name) == guessKey {
			continue
		}
		if s.special.Contains(guessed.Name, b.Name) {
			matches = append(matches, b.Name)
			continue
		}
		km, ok := s.distance(guessed, b)
		if !ok {
			continue
		}
		if km >= lower && km <= upper {
			matches = append(matches, b.Name)
		}
	}
	return matches
}

// distance returns the cached distance between two boundaries, computing it
// on first use.
func (s *Solver) distance(a, b *Boundary) (float64, bool) {
	// Absent distances are never cached, so skip the table for them entirely.
	if !a.HasGeometry() || !b.HasGeometry() {
		return 0, false
	}
	return s.cache.GetOrCompute(a.Name, b.Name, func() (float64, bool) {
		start := time.Now()
		km, ok := a.DistanceTo(b)
		s.metrics.observeCompute(time.Since(start))
		return km, ok
	})
}

// Distance returns the minimum distance between two named countries.
// It reports false if either name is unknown or lacks geometry.
func (s *Solver) Distance(a, b string) (float64, bool) {
	ba, ok := s.store.Lookup(a)
	if !ok {
		return 0, false
	}
	bb, ok := s.store.Lookup(b)
	if !ok {
		return 0, false
	}
	if ba == bb {
		return 0, ba.HasGeometry()
	}
	return s.distance(ba, bb)
}

func validateDistance(what string, km float64) error {
	if math.IsNaN(km) || math.IsInf(km, 0) {
		return fmt.Errorf("%w: %s must be a finite number", ErrInvalidQuery, what)
	}
	if km < 0 {
		return fmt.Errorf("%w: %s cannot be negative", ErrInvalidQuery, what)
	}
	return nil
}
