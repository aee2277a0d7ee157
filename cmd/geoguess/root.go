package main

import (
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/andreiashu/geoguess"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	configPath      string
	dataPath        string
	marginStepKm    float64
	marginCeilingKm float64
	logLevel        string
	logPretty       bool
	metricsAddr     string
)

// solver is built by the root pre-run hook and used by every command.
var (
	solver        *geoguess.Solver
	logger        = zerolog.Nop()
	metricsServer *http.Server
)

var rootCmd = &cobra.Command{
	Use:   "geoguess",
	Short: "Find the mystery country from a guess and a distance",
	Long: `Loads country boundaries from a GeoJSON FeatureCollection and lists every
country whose border lies at the given distance from a guessed country.

Run without a subcommand for an interactive session.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE:               runSession,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (.toml, .yaml or .yml)")
	flags.StringVarP(&dataPath, "data", "d", "country_data.json", "GeoJSON FeatureCollection of country boundaries (.bz2 accepted)")
	flags.Float64Var(&marginStepKm, "margin-step", geoguess.DefaultMarginStepKm, "km added to the margin per expansion")
	flags.Float64Var(&marginCeilingKm, "margin-ceiling", geoguess.DefaultMarginCeilingKm, "margin in km at which expansion stops")
	flags.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.BoolVar(&logPretty, "log-pretty", true, "human readable logs")
	flags.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
}

// setup loads configuration, boundary data and the solver.
func setup(cmd *cobra.Command, _ []string) error {
	if skipSetup(cmd) {
		return nil
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, &cfg)
	logger = setupLogger(cfg.Log, cmd.ErrOrStderr())

	start := time.Now()
	store, err := geoguess.LoadFile(cfg.Data, geoguess.LoadOptions{Logger: logger})
	if err != nil {
		return err
	}
	if store.Len() == 0 {
		return errors.New("no usable country boundaries in " + cfg.Data)
	}
	logger.Info().
		Str("path", cfg.Data).
		Int("countries", store.Len()).
		Dur("took", time.Since(start)).
		Msg("loaded country boundaries")

	opts := []geoguess.Option{
		geoguess.WithMarginStep(cfg.MarginStepKm),
		geoguess.WithMarginCeiling(cfg.MarginCeilingKm),
		geoguess.WithSpecialPairs(cfg.specialPairs()),
		geoguess.WithLogger(logger),
	}
	if cfg.MetricsAddr != "" {
		m := geoguess.NewMetrics()
		opts = append(opts, geoguess.WithMetrics(m))
		if err := serveMetrics(cfg.MetricsAddr, m); err != nil {
			return err
		}
	}

	solver, err = geoguess.NewSolver(store, opts...)
	return err
}

// applyFlags overrides config file values with flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *Config) {
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.Data = dataPath
	}
	if flags.Changed("margin-step") {
		cfg.MarginStepKm = marginStepKm
	}
	if flags.Changed("margin-ceiling") {
		cfg.MarginCeilingKm = marginCeilingKm
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-pretty") {
		cfg.Log.Pretty = logPretty
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = metricsAddr
	}
}

func skipSetup(cmd *cobra.Command) bool {
	return cmd == versionCmd || cmd.Name() == "help" || cmd.Name() == "completion"
}

func serveMetrics(addr string, m *geoguess.Metrics) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	metricsServer = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := metricsServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server stopped")
		}
	}()
	logger.Info().Str("addr", ln.Addr().String()).Msg("serving metrics")
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if metricsServer != nil {
		err := metricsServer.Close()
		metricsServer = nil
		return err
	}
	return nil
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
