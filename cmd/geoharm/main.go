package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/geoharm/internal/config"
	"github.com/san-kum/geoharm/internal/field"
	"github.com/san-kum/geoharm/internal/gravity"
	"github.com/san-kum/geoharm/internal/logging"
	"github.com/san-kum/geoharm/internal/viz"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	preset     string
	modelName  string
	modelFile  string
	degree     int
	order      int
	altitude   float64
	latStep    float64
	lonStep    float64
	samples    int
	// profile / spectrum placement
	atLat   float64
	atLon   float64
	specLat float64
	// legendre
	legNMax  int
	legNorm  string
	legPhase bool
	legDeriv bool
	// survey
	saveRun bool
	showMap bool
	// bench
	benchPoints int
	// export-csv, svg output
	outFile string
	svgFile string

	log = logging.New(logging.LevelInfo)
)

// settings is the merged view of config file, preset and flags.
type settings struct {
	cfg   *config.Config
	model *gravity.Model
}

func (s settings) limits() field.Limits { return s.cfg.Limits() }

func main() {
	rootCmd := &cobra.Command{
		Use:           "geoharm",
		Short:         "spherical harmonic gravity field toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetLevel(logging.ParseLevel(logLevel))
		},
		RunE: runExplore,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".geoharm", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	pf.StringVar(&preset, "preset", "", "truncation/sampling preset")
	pf.StringVar(&modelName, "model", config.DefaultModel, "builtin model name")
	pf.StringVar(&modelFile, "model-file", "", "gfc model file (overrides --model)")
	pf.IntVar(&degree, "degree", -1, "maximum degree (<= 0 for the full model)")
	pf.IntVar(&order, "order", field.AllOrders, "maximum order (-1 for all, 0 for zonal only)")
	pf.Float64Var(&altitude, "alt", 0, "altitude above the reference radius [m]")

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "show model header and zonal terms",
		Args:  cobra.NoArgs,
		RunE:  runInfo,
	}

	potentialCmd := &cobra.Command{
		Use:   "potential [lat] [lon] [alt]",
		Short: "potential at a geocentric point (degrees, metres)",
		Args:  cobra.RangeArgs(2, 3),
		RunE:  runPotential,
	}

	accelCmd := &cobra.Command{
		Use:   "accel [lat] [lon] [alt]",
		Short: "body-fixed acceleration at a geocentric point",
		Args:  cobra.RangeArgs(2, 3),
		RunE:  runAccel,
	}

	gradientCmd := &cobra.Command{
		Use:   "gradient [lat] [lon] [alt]",
		Short: "spherical partial derivatives of the potential",
		Args:  cobra.RangeArgs(2, 3),
		RunE:  runGradient,
	}

	legendreCmd := &cobra.Command{
		Use:   "legendre [colatitude]",
		Short: "print associated Legendre functions at a colatitude [deg]",
		Args:  cobra.ExactArgs(1),
		RunE:  runLegendre,
	}
	legendreCmd.Flags().IntVar(&legNMax, "nmax", 4, "maximum degree")
	legendreCmd.Flags().StringVar(&legNorm, "norm", "full", "full or schmidt")
	legendreCmd.Flags().BoolVar(&legPhase, "phase", false, "include the Condon-Shortley phase")
	legendreCmd.Flags().BoolVar(&legDeriv, "deriv", false, "also print dP/dθ")

	surveyCmd := &cobra.Command{
		Use:   "survey",
		Short: "evaluate a global grid and store the run",
		Args:  cobra.NoArgs,
		RunE:  runSurvey,
	}
	surveyCmd.Flags().Float64Var(&latStep, "lat-step", config.DefaultLatStep, "latitude step [deg]")
	surveyCmd.Flags().Float64Var(&lonStep, "lon-step", config.DefaultLonStep, "longitude step [deg]")
	surveyCmd.Flags().BoolVar(&showMap, "map", false, "print an anomaly map")

	profileCmd := &cobra.Command{
		Use:   "profile [meridian|circle]",
		Short: "plot the anomaly along a meridian or latitude circle",
		Args:  cobra.ExactArgs(1),
		RunE:  runProfile,
	}
	profileCmd.Flags().Float64Var(&atLat, "lat", 0, "latitude of the circle [deg]")
	profileCmd.Flags().Float64Var(&atLon, "lon", 0, "longitude of the meridian [deg]")
	profileCmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "number of points")
	profileCmd.Flags().BoolVar(&saveRun, "save", false, "store the profile as a run")
	profileCmd.Flags().StringVar(&svgFile, "svg", "", "also write the profile as an SVG file")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum",
		Short: "order content of the potential along a latitude circle",
		Args:  cobra.NoArgs,
		RunE:  runSpectrum,
	}
	spectrumCmd.Flags().Float64Var(&specLat, "lat", 30, "latitude of the circle [deg]")
	spectrumCmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "number of points (rounded up to a power of two)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "also write a map (grid runs) or profile as an SVG file")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and samples as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark acceleration throughput per degree",
		Args:  cobra.NoArgs,
		RunE:  benchModel,
	}
	benchCmd.Flags().IntVar(&benchPoints, "points", 20000, "points per degree")

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive field explorer",
		Args:  cobra.NoArgs,
		RunE:  runExplore,
	}
	exploreCmd.Flags().Float64Var(&atLat, "lat", 0, "starting latitude [deg]")
	exploreCmd.Flags().Float64Var(&atLon, "lon", 0, "starting longitude [deg]")

	rootCmd.AddCommand(infoCmd, potentialCmd, accelCmd, gradientCmd, legendreCmd, surveyCmd,
		profileCmd, spectrumCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, presetsCmd, benchCmd, exploreCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadSettings merges the config file, preset and explicitly set flags,
// in that order, and loads the model.
func loadSettings(cmd *cobra.Command) (settings, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return settings{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if !cmd.Flags().Changed("log-level") {
			log.SetLevel(logging.ParseLevel(cfg.LogLevel))
		}
	}

	if preset != "" && !config.Apply(cfg, preset) {
		return settings{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}

	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.Model, cfg.ModelFile = modelName, ""
	}
	if flags.Changed("model-file") {
		cfg.ModelFile = modelFile
	}
	if flags.Changed("degree") {
		cfg.Degree = degree
	}
	if flags.Changed("order") {
		cfg.Order = order
	}
	if flags.Changed("alt") {
		cfg.Altitude = altitude
	}
	if flags.Changed("lat-step") {
		cfg.LatStep = latStep
	}
	if flags.Changed("lon-step") {
		cfg.LonStep = lonStep
	}
	if flags.Changed("samples") {
		cfg.Samples = samples
	}
	if err := cfg.Validate(); err != nil {
		return settings{}, err
	}

	model, err := cfg.LoadModel()
	if err != nil {
		return settings{}, err
	}
	log.Debug("loaded %s", model)
	return settings{cfg: cfg, model: model}, nil
}

func runExplore(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	return viz.RunExplorer(s.model, atLat, atLon, s.cfg.Altitude, s.limits())
}
