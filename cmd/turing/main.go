package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/analysis"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/automation"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/config"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/experiment"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/export"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/optim"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/sim"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/storage"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/viz"
)

var (
	dataDir     string
	configFile  string
	preset      string
	size        int
	seed        int64
	workers     int
	strict      bool
	du, dv      float64
	feed, kill  float64
	dt          float64
	tmax        int
	sampleEvery int
	// live view
	stepsPerFrame int
	viewMode      string
	theme         string
	liveGIF       string
	autoStart     bool
	// run
	integrator string
	runGIF     string
	gifEvery   int
	// plot / export
	svgPath   string
	fieldDump bool
	// sweep
	fRange   string
	kRange   string
	metric   string
	maximize bool
	top      int
	// ensemble
	trials int
	// bench
	benchSteps int
)

// main registers the commands and flags and runs the root command. With no
// subcommand the interactive preset picker opens. Errors exit with status 1.
func main() {
	log.SetPrefix("turing: ")
	log.SetFlags(0)

	rootCmd := &cobra.Command{
		Use:           "turing",
		Short:         "gray-scott reaction-diffusion lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			viz.SetTheme(theme)
			return viz.RunInteractive(cfg, liveOptions(cfg))
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "parameter preset (see presets)")
	pf.IntVar(&size, "size", 0, "grid size N")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = unseeded)")
	pf.IntVar(&workers, "workers", 0, "row workers (0 = all CPUs)")
	pf.BoolVar(&strict, "strict", false, "fail on NaN or Inf instead of continuing")
	pf.Float64Var(&du, "du", 0, "activator diffusion")
	pf.Float64Var(&dv, "dv", 0, "inhibitor diffusion")
	pf.Float64Var(&feed, "f", 0, "feed rate")
	pf.Float64Var(&kill, "k", 0, "kill rate")
	pf.Float64Var(&dt, "dt", 0, "time step")
	pf.IntVar(&tmax, "tmax", 0, "step limit")
	pf.IntVar(&sampleEvery, "sample-every", 0, "steps between recorded samples")
	pf.StringVar(&theme, "theme", "lab", "colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation headless and save it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&integrator, "integrator", "euler", "integrator ("+strings.Join(experiment.NewRegistry().ListIntegrators(), ", ")+")")
	runCmd.Flags().StringVar(&runGIF, "gif", "", "also record an animation to this path")
	runCmd.Flags().IntVar(&gifEvery, "gif-every", 50, "steps between animation frames")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&stepsPerFrame, "steps-per-frame", 1, "steps per 60 Hz frame")
	liveCmd.Flags().StringVar(&viewMode, "mode", "shade", "view mode (shade, ramp, contour)")
	liveCmd.Flags().StringVar(&liveGIF, "gif", "turing.gif", "where g saves the recording")
	liveCmd.Flags().BoolVar(&autoStart, "start", false, "start running immediately")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot mean concentrations of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the mean U series as SVG")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and series as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().BoolVar(&fieldDump, "field", false, "write the final field as CSV instead")
	exportCmd.Flags().StringVar(&svgPath, "svg", "", "also write the final field as SVG")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "pattern wavelength and oscillation analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list parameter presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search over feed and kill rates",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&fRange, "f-range", "0.02:0.06:5", "feed values lo:hi:n")
	sweepCmd.Flags().StringVar(&kRange, "k-range", "0.05:0.07:5", "kill values lo:hi:n")
	sweepCmd.Flags().StringVar(&metric, "metric", "activity", "metric to optimise")
	sweepCmd.Flags().BoolVar(&maximize, "maximize", false, "maximise instead of minimise")
	sweepCmd.Flags().IntVar(&top, "top", 10, "rows to print")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted scenario from YAML",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "rerun a preset under many seeds",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().IntVar(&trials, "trials", 10, "number of seeds")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the integrator across sizes and worker counts",
		Args:  cobra.NoArgs,
		RunE:  benchIntegrator,
	}
	benchCmd.Flags().IntVar(&benchSteps, "steps", 200, "steps per measurement")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, analyzeCmd, presetsCmd, sweepCmd, scenarioCmd, ensembleCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

// resolveConfig layers defaults, preset, config file, environment and
// explicit flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(config.ListPresets(), ", "))
		}
	}
	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("strict") {
		cfg.Strict = strict
	}
	if flags.Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	overrides := []struct {
		flag, param string
		value       float64
	}{
		{"du", "du", du},
		{"dv", "dv", dv},
		{"f", "f", feed},
		{"k", "k", kill},
		{"dt", "dt", dt},
		{"tmax", "tmax", float64(tmax)},
	}
	for _, o := range overrides {
		if !flags.Changed(o.flag) {
			continue
		}
		p, err := cfg.Params.With(o.param, o.value)
		if err != nil {
			return nil, err
		}
		cfg.Params = p
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func liveOptions(cfg *config.Config) viz.Options {
	mode := viz.ShadeMode
	switch viewMode {
	case "ramp":
		mode = viz.RampMode
	case "contour":
		mode = viz.ContourMode
	}
	return viz.Options{
		Title:        cfg.Preset,
		GIFPath:      liveGIF,
		StepsPerTick: stepsPerFrame,
		AutoStart:    autoStart,
		Mode:         mode,
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.New(experiment.Config{
		Sim:         cfg.SimConfig(),
		Integrator:  integrator,
		SampleEvery: cfg.SampleEvery,
	})
	if err != nil {
		return err
	}

	var rec *export.Recorder
	if runGIF != "" {
		rec = export.NewRecorder(gifEvery, 2)
		exp.GetSimulator().AddObserver(rec)
	}

	progressEvery := max(cfg.Params.TMax/10, 1)
	exp.BeforeStep(func(t int, _ *sim.Simulator) error {
		if t > 0 && t%progressEvery == 0 {
			log.Printf("step %d/%d", t, cfg.Params.TMax)
		}
		return nil
	})

	fmt.Printf("running %s on %dx%d for %d steps...\n", cfg.Preset, cfg.Size, cfg.Size, cfg.Params.TMax)

	ctx, cancel := signalContext()
	defer cancel()
	result, runErr := exp.Run(ctx)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	if runErr != nil {
		log.Printf("interrupted at step %d, saving partial run", result.Steps)
	}

	meta := storage.RunMetadata{
		Preset: cfg.Preset,
		Seed:   cfg.Seed,
		Size:   cfg.Size,
		Params: cfg.Params,
	}
	if lambda, err := analysis.DominantWavelength(result.Final); err == nil {
		meta.Wavelength = lambda
	}
	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}

	if rec != nil {
		if err := rec.Save(runGIF); err != nil {
			log.Printf("gif: %v", err)
		} else {
			fmt.Printf("animation: %s (%d frames)\n", runGIF, rec.Len())
		}
	}

	fmt.Printf("completed in %v\n", result.Elapsed.Round(time.Millisecond))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d (%s)\n", result.Steps, result.Status)
	if meta.Wavelength > 0 {
		fmt.Printf("wavelength: %.2f cells\n", meta.Wavelength)
	}
	fmt.Println("\nmetrics:")
	for _, name := range experiment.NewRegistry().ListMetrics() {
		if val, ok := result.Metrics[name]; ok {
			fmt.Printf("  %s: %.6f\n", name, val)
		}
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	s, err := sim.New(cfg.SimConfig())
	if err != nil {
		return err
	}
	viz.SetTheme(theme)
	return viz.Run(s, liveOptions(cfg))
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	runs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSIZE\tSTEPS\tSTATUS\tF\tK\tWAVELENGTH")

	for _, run := range runs {
		wl := "-"
		if run.Wavelength > 0 {
			wl = fmt.Sprintf("%.2f", run.Wavelength)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%.4f\t%.4f\t%s\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Size,
			run.Steps,
			run.Status,
			run.Params.F,
			run.Params.K,
			wl,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return fmt.Errorf("no data to plot")
	}

	res := &experiment.Result{Samples: samples}
	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(samples))

	for _, series := range []struct{ name, caption string }{
		{"mean_u", "mean U (activator)"},
		{"mean_v", "mean V (inhibitor)"},
	} {
		data, err := res.Series(series.name)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if svgPath != "" {
		ys, _ := res.Series("mean_u")
		svg := export.SeriesToSVG(res.SampleSteps(), ys, 800, 300, "#00ff88")
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)

	if svgPath != "" {
		field, err := st.LoadField(runID)
		if err != nil {
			return err
		}
		if err := os.WriteFile(svgPath, []byte(export.FieldToSVG(field, 4)), 0644); err != nil {
			return err
		}
		log.Printf("wrote %s", svgPath)
	}

	if fieldDump {
		field, err := st.LoadField(runID)
		if err != nil {
			return err
		}
		return export.WriteFieldCSV(os.Stdout, field)
	}
	return st.ExportJSON(os.Stdout, runID)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	field, err := st.LoadField(runID)
	if err != nil {
		return err
	}

	fmt.Printf("pattern analysis: %s\n", meta.ID)
	fmt.Printf("preset: %s  f=%.4f k=%.4f\n\n", meta.Preset, meta.Params.F, meta.Params.K)

	ps := analysis.RadialSpectrum(field)
	if len(ps) > 2 {
		graph := asciigraph.Plot(ps[1:],
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("radial power spectrum of U (wavenumber 1..N/2)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	lambda, err := analysis.DominantWavelength(field)
	switch {
	case errors.Is(err, analysis.ErrNoPattern):
		fmt.Println("no spatial pattern: field is uniform")
	case err != nil:
		return err
	default:
		fmt.Printf("dominant wavelength: %.2f cells\n", lambda)
		meta.Wavelength = lambda
		if err := st.Update(meta); err != nil {
			return err
		}
	}

	samples, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	series, _ := (&experiment.Result{Samples: samples}).Series("mean_u")
	if period, err := analysis.DominantPeriod(series); err == nil && len(samples) > 1 {
		stride := samples[1].T - samples[0].T
		fmt.Printf("mean U oscillation: period %.1f samples (~%.0f steps)\n", period, period*float64(stride))
	}

	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDU\tDV\tF\tK\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.4f\t%.4f\t%s\n",
			name, p.Params.Du, p.Params.Dv, p.Params.F, p.Params.K, p.Description)
	}
	return w.Flush()
}

// parseRange reads lo:hi:n.
func parseRange(s string) ([]float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("range %q: want lo:hi:n", s)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, fmt.Errorf("range %q: %w", s, err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, fmt.Errorf("range %q: %w", s, err)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 1 {
		return nil, fmt.Errorf("range %q: n must be a positive integer", s)
	}
	return optim.Linspace(lo, hi, n), nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	fs, err := parseRange(fRange)
	if err != nil {
		return err
	}
	ks, err := parseRange(kRange)
	if err != nil {
		return err
	}

	g := optim.NewGridSearch([]string{"f", "k"}, [][]float64{fs, ks})
	g.Maximize = maximize
	// Each run already spreads rows over the CPUs.
	g.Workers = max(runtime.NumCPU()/4, 1)

	build := func(params map[string]float64) (*experiment.Experiment, error) {
		sc := cfg.SimConfig()
		sc.Workers = 4
		for name, v := range params {
			p, err := sc.Params.With(name, v)
			if err != nil {
				return nil, err
			}
			sc.Params = p
		}
		return experiment.New(experiment.Config{Sim: sc, SampleEvery: cfg.SampleEvery})
	}

	log.Printf("sweeping %d points (%d steps each)", len(fs)*len(ks), cfg.Params.TMax)
	ctx, cancel := signalContext()
	defer cancel()
	best, points, err := g.Search(ctx, build, optim.MetricObjective(metric))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "F\tK\t%s\tMEAN_U\tWAVELENGTH\n", strings.ToUpper(metric))
	for i, p := range g.Rank(points) {
		if i >= top {
			break
		}
		wl := "-"
		if lambda, err := analysis.DominantWavelength(p.Result.Final); err == nil {
			wl = fmt.Sprintf("%.2f", lambda)
		}
		fmt.Fprintf(w, "%.4f\t%.4f\t%.6f\t%.4f\t%s\n", p.Params["f"], p.Params["k"], p.Value, p.Result.Metrics["mean_u"], wl)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest: f=%.4f k=%.4f %s=%.6f\n", best.Params["f"], best.Params["k"], metric, best.Value)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("running scenario %s (%d events)\n", sc.Name, len(sc.Events))
	ctx, cancel := signalContext()
	defer cancel()
	result, err := automation.RunScenario(ctx, sc)
	if err != nil {
		return err
	}

	simCfg, _ := sc.SimConfig()
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	meta := storage.RunMetadata{
		Preset: sc.Name,
		Seed:   simCfg.Seed,
		Size:   simCfg.Size,
		Params: simCfg.Params,
	}
	if lambda, err := analysis.DominantWavelength(result.Final); err == nil {
		meta.Wavelength = lambda
	}
	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed.Round(time.Millisecond))
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	results, err := automation.RunEnsemble(ctx, &automation.EnsembleConfig{
		Preset:   cfg.Preset,
		Size:     cfg.Size,
		TMax:     cfg.Params.TMax,
		Trials:   trials,
		BaseSeed: cfg.Seed,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tSEED\tSTABLE\tMEAN_U\tWAVELENGTH")
	sum, n := 0.0, 0
	for _, r := range results {
		wl := "-"
		if r.Wavelength > 0 {
			wl = fmt.Sprintf("%.2f", r.Wavelength)
			sum += r.Wavelength
			n++
		}
		fmt.Fprintf(w, "%d\t%d\t%v\t%.4f\t%s\n", r.Trial, r.Seed, r.Stable, r.MeanU, wl)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if n > 0 {
		fmt.Printf("\nmean wavelength over %d patterned trials: %.2f cells\n", n, sum/float64(n))
	}
	return nil
}

func benchIntegrator(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sizes := []int{64, 150, 256}
	workerCounts := []int{1, runtime.NumCPU()}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tWORKERS\tSTEPS\tTIME\tSTEPS/SEC\tCELLS/SEC")

	for _, n := range sizes {
		for _, wk := range workerCounts {
			sc := cfg.SimConfig()
			sc.Size = n
			sc.Workers = wk
			sc.Seed = 1
			sc.Params.TMax = benchSteps

			exp, err := experiment.New(experiment.Config{Sim: sc, SampleEvery: benchSteps, Metrics: []string{"stability"}})
			if err != nil {
				return err
			}
			result, err := exp.Run(context.Background())
			if err != nil {
				return err
			}

			stepsPerSec := float64(result.Steps) / result.Elapsed.Seconds()
			fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.0f\t%.2e\n",
				n, wk, result.Steps, result.Elapsed.Round(time.Millisecond), stepsPerSec, stepsPerSec*float64(n*n))
		}
	}

	return w.Flush()
}
