package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/geoharm/internal/analysis"
	"github.com/san-kum/geoharm/internal/config"
	"github.com/san-kum/geoharm/internal/export"
	"github.com/san-kum/geoharm/internal/field"
	"github.com/san-kum/geoharm/internal/geo"
	"github.com/san-kum/geoharm/internal/legendre"
	"github.com/san-kum/geoharm/internal/storage"
	"github.com/san-kum/geoharm/internal/survey"
)

const mGal = 1e-5

var (
	headStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00cccc"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899")).Width(24)
)

// parsePoint reads lat, lon [deg] and an optional altitude [m] that falls
// back to def.
func parsePoint(args []string, def float64) (lat, lon, alt float64, err error) {
	vals := []float64{0, 0, def}
	for i, a := range args {
		if vals[i], err = strconv.ParseFloat(a, 64); err != nil {
			return 0, 0, 0, fmt.Errorf("invalid coordinate %q: %w", a, err)
		}
	}
	if vals[0] < -90 || vals[0] > 90 {
		return 0, 0, 0, fmt.Errorf("latitude %g outside [-90, 90]", vals[0])
	}
	return vals[0], vals[1], vals[2], nil
}

func pointArgs(cmd *cobra.Command, args []string) (settings, geo.Spherical, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return settings{}, geo.Spherical{}, err
	}
	lat, lon, alt, err := parsePoint(args, s.cfg.Altitude)
	if err != nil {
		return settings{}, geo.Spherical{}, err
	}
	return s, geo.Spherical{Lat: geo.Deg2Rad(lat), Lon: geo.Deg2Rad(lon), R: s.model.R0() + alt}, nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	meta := s.model.Meta()
	z := s.model.Zonals()

	row := func(k, v string) { fmt.Println(labelStyle.Render(k) + v) }
	fmt.Println(headStyle.Render(meta.Name))
	row("product type", meta.ProductType)
	row("gm [m³/s²]", strconv.FormatFloat(meta.Mu, 'e', 10, 64))
	row("radius [m]", strconv.FormatFloat(meta.R0, 'f', 3, 64))
	row("max degree", strconv.Itoa(meta.NMax))
	row("normalization", meta.Norm.String())
	row("tide system", meta.TideSystem)
	row("errors", meta.Errors)
	fmt.Println()
	fmt.Println(headStyle.Render("zonal terms"))
	row("J2", strconv.FormatFloat(z.J2, 'e', 12, 64))
	row("J3", strconv.FormatFloat(z.J3, 'e', 12, 64))
	row("J4", strconv.FormatFloat(z.J4, 'e', 12, 64))
	return nil
}

func runPotential(cmd *cobra.Command, args []string) error {
	s, p, err := pointArgs(cmd, args)
	if err != nil {
		return err
	}
	u := field.New(s.model).PotentialLimits(p.ToECEF(), s.limits())
	fmt.Printf("U = %.9f J/kg\n", u)
	return nil
}

func runAccel(cmd *cobra.Command, args []string) error {
	s, p, err := pointArgs(cmd, args)
	if err != nil {
		return err
	}
	pos := p.ToECEF()
	a := field.Acceleration(s.model, pos, s.limits())
	anomaly := a.Norm() - s.model.Mu()/(p.R*p.R)

	fmt.Printf("position  [m]     (%.3f, %.3f, %.3f)\n", pos.X, pos.Y, pos.Z)
	fmt.Printf("a         [m/s²]  (%.12f, %.12f, %.12f)\n", a.X, a.Y, a.Z)
	fmt.Printf("|a|       [m/s²]  %.12f\n", a.Norm())
	fmt.Printf("anomaly   [mGal]  %+.4f\n", anomaly/mGal)
	return nil
}

func runGradient(cmd *cobra.Command, args []string) error {
	s, p, err := pointArgs(cmd, args)
	if err != nil {
		return err
	}
	g := field.Gradient(s.model, p.ToECEF(), s.limits())
	fmt.Printf("dU/dr    %.12e m/s²\n", g.DR)
	fmt.Printf("dU/dlat  %.12e m²/s²/rad\n", g.DLat)
	fmt.Printf("dU/dlon  %.12e m²/s²/rad\n", g.DLon)
	return nil
}

func runLegendre(cmd *cobra.Command, args []string) error {
	colat, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid colatitude %q: %w", args[0], err)
	}
	norm, err := legendre.ParseNormalization(legNorm)
	if err != nil {
		return err
	}

	P, dP, err := legendre.ComputeDerivative(geo.Deg2Rad(colat), legNMax, norm, legPhase)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := "N\tM\tP\t"
	if legDeriv {
		header += "dP/dθ\t"
	}
	fmt.Fprintln(w, header)
	for n := 0; n <= legNMax; n++ {
		for m := 0; m <= n; m++ {
			line := fmt.Sprintf("%d\t%d\t% .15e\t", n, m, P.At(n, m))
			if legDeriv {
				line += fmt.Sprintf("% .15e\t", dP.At(n, m))
			}
			fmt.Fprintln(w, line)
		}
	}
	return w.Flush()
}

func runSurvey(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	grid := survey.Grid{LatStep: s.cfg.LatStep, LonStep: s.cfg.LonStep, Altitude: s.cfg.Altitude}
	log.Info("surveying %s at %.0f m, %gx%g deg", s.model.Name(), grid.Altitude, grid.LatStep, grid.LonStep)
	start := time.Now()

	samples, err := grid.Run(ctx, s.model, s.limits())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	log.Info("evaluated %d points in %v", len(samples), elapsed)

	metrics := survey.Summarize(samples, survey.DefaultMetrics()...)
	id, err := saveSamples(s, "grid", samples, metrics)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", id)
	fmt.Printf("points: %d\n", len(samples))
	printMetrics(metrics)

	if showMap {
		fmt.Println()
		fmt.Println(renderMap(samples, s.cfg.LonStep))
	}
	return nil
}

func saveSamples(s settings, kind string, samples []survey.Sample, metrics map[string]float64) (string, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return "", err
	}
	return st.Save(storage.RunMetadata{
		Kind:     kind,
		Model:    s.model.Name(),
		Degree:   s.cfg.Degree,
		Order:    s.cfg.Order,
		Altitude: s.cfg.Altitude,
		LatStep:  s.cfg.LatStep,
		LonStep:  s.cfg.LonStep,
		Metrics:  metrics,
	}, samples)
}

func printMetrics(metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.4f mGal\n", name, metrics[name]/mGal)
	}
}

// gridRows regroups latitude-major grid values into rows of one latitude.
func gridRows(values []float64, lonStep float64) [][]float64 {
	perRow := int(math.Ceil(360/lonStep - 1e-9))
	if perRow < 1 || len(values) < perRow {
		return nil
	}
	rows := make([][]float64, 0, len(values)/perRow)
	for i := 0; i+perRow <= len(values); i += perRow {
		rows = append(rows, values[i:i+perRow])
	}
	return rows
}

func renderMap(samples []survey.Sample, lonStep float64) string {
	return analysis.HeatMap(gridRows(survey.Anomalies(samples), lonStep), 72, 18)
}

// writeProfileSVG plots anomaly [mGal] against latitude for meridians and
// longitude otherwise, when --svg is set.
func writeProfileSVG(kind string, samples []survey.Sample, anomaly []float64) error {
	if svgFile == "" {
		return nil
	}
	xs := make([]float64, len(samples))
	for i, s := range samples {
		if kind == "meridian" {
			xs[i] = s.Lat
		} else {
			xs[i] = s.Lon
		}
	}
	doc, err := export.ProfileSVG(xs, anomaly, 800, 300, "#00ccff")
	if err != nil {
		return err
	}
	return writeSVG(doc)
}

func writeSVG(doc string) error {
	if err := os.WriteFile(svgFile, []byte(doc), 0644); err != nil {
		return err
	}
	log.Info("wrote %s", svgFile)
	return nil
}

func runProfile(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	var (
		samples []survey.Sample
		caption string
	)
	switch args[0] {
	case "meridian":
		samples, err = survey.Meridian(s.model, atLon, s.cfg.Altitude, s.cfg.Samples, s.limits())
		caption = fmt.Sprintf("anomaly [mGal] along %.1f° meridian, south to north", atLon)
	case "circle":
		samples, err = survey.LatitudeCircle(s.model, atLat, s.cfg.Altitude, s.cfg.Samples, s.limits())
		caption = fmt.Sprintf("anomaly [mGal] along %.1f° latitude, from -180°", atLat)
	default:
		return fmt.Errorf("unknown profile %q (meridian or circle)", args[0])
	}
	if err != nil {
		return err
	}

	data := survey.Anomalies(samples)
	for i := range data {
		data[i] /= mGal
	}
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	))
	if err := writeProfileSVG(args[0], samples, data); err != nil {
		return err
	}

	if saveRun {
		id, err := saveSamples(s, args[0], samples, survey.Summarize(samples, survey.DefaultMetrics()...))
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", id)
	}
	return nil
}

func runSpectrum(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	n := len(analysis.PadPow2(make([]float64, s.cfg.Samples)))
	samples, err := survey.LatitudeCircle(s.model, specLat, s.cfg.Altitude, n, s.limits())
	if err != nil {
		return err
	}

	amp, err := analysis.OrderSpectrum(survey.Potentials(samples))
	if err != nil {
		return err
	}

	top := s.model.NMax() + 2
	if top > len(amp) {
		top = len(amp)
	}
	// the mean dwarfs every other order
	fmt.Println(asciigraph.Plot(amp[1:top],
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("order amplitude [J/kg] at %.1f° latitude, m = 1..%d", specLat, top-1)),
	))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tAMPLITUDE [J/kg]")
	for m := 0; m < top; m++ {
		fmt.Fprintf(w, "%d\t%.6e\n", m, amp[m])
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tMODEL\tTIME\tDEGREE\tORDER\tALT\tPOINTS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%.0fm\t%d\n",
			run.ID,
			run.Kind,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Degree,
			run.Order,
			run.Altitude,
			run.Points,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	var (
		meta *storage.RunMetadata
		err  error
	)
	if len(args) == 0 {
		meta, err = st.Latest()
	} else {
		meta, err = st.Load(args[0])
	}
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(meta.ID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", len(samples))

	anomaly := survey.Anomalies(samples)
	for i := range anomaly {
		anomaly[i] /= mGal
	}

	if meta.Kind == "grid" && meta.LonStep > 0 {
		fmt.Println(renderMap(samples, meta.LonStep))
		if svgFile != "" {
			doc, err := export.HeatMapSVG(gridRows(anomaly, meta.LonStep), 8)
			if err != nil {
				return err
			}
			if err := writeSVG(doc); err != nil {
				return err
			}
		}
	} else if err := writeProfileSVG(meta.Kind, samples, anomaly); err != nil {
		return err
	}
	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{survey.Potentials(samples), "potential [J/kg]"},
		{anomaly, "anomaly [mGal]"},
	} {
		fmt.Println(asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		))
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
}

func exportCSV(cmd *cobra.Command, args []string) error {
	samples, err := storage.New(dataDir).LoadSamples(args[0])
	if err != nil {
		return err
	}

	out := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := storage.WriteCSV(out, samples); err != nil {
		return err
	}
	if outFile != "" {
		fmt.Fprintf(os.Stderr, "wrote %d samples to %s\n", len(samples), outFile)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tDEGREE\tORDER\tGRID\tSAMPLES")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%gx%g\t%d\n", name, limitText(p.Degree, "full"), limitText(p.Order, "all"), p.LatStep, p.LonStep, p.Samples)
	}
	return w.Flush()
}

func limitText(v int, sentinel string) string {
	if v < 0 {
		return sentinel
	}
	return strconv.Itoa(v)
}

func benchModel(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if benchPoints < 1 {
		return fmt.Errorf("points must be positive, got %d", benchPoints)
	}

	rng := rand.New(rand.NewSource(42))
	positions := make([]geo.Vec3, benchPoints)
	for i := range positions {
		positions[i] = geo.Spherical{
			Lat: math.Asin(2*rng.Float64() - 1),
			Lon: (2*rng.Float64() - 1) * math.Pi,
			R:   s.model.R0() + s.cfg.Altitude + rng.Float64()*1000e3,
		}.ToECEF()
	}

	fmt.Printf("benchmarking %s, %d points\n\n", s.model.Name(), benchPoints)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DEGREE\tSERIAL\tPARALLEL\tPOINTS/SEC")

	for _, deg := range benchDegrees(s.model.NMax()) {
		lim := field.Degree(deg)

		ev := field.New(s.model)
		start := time.Now()
		for _, p := range positions {
			ev.Acceleration(p, lim)
		}
		serial := time.Since(start)

		start = time.Now()
		field.AccelerationBatch(s.model, positions, lim)
		parallel := time.Since(start)

		fmt.Fprintf(w, "%d\t%v\t%v\t%.0f\n", deg, serial.Round(time.Microsecond), parallel.Round(time.Microsecond),
			float64(benchPoints)/parallel.Seconds())
	}
	return w.Flush()
}

// benchDegrees doubles from 2 up to and including nMax.
func benchDegrees(nMax int) []int {
	degs := []int{}
	for d := 2; d < nMax; d *= 2 {
		degs = append(degs, d)
	}
	if nMax >= 1 {
		degs = append(degs, nMax)
	}
	return degs
}

