package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/conserve/internal/config"
	"github.com/san-kum/conserve/internal/dynamo"
	"github.com/san-kum/conserve/internal/export"
	"github.com/san-kum/conserve/internal/gui"
	"github.com/san-kum/conserve/internal/physics"
	"github.com/san-kum/conserve/internal/plot"
	"github.com/san-kum/conserve/internal/sim"
	"github.com/san-kum/conserve/internal/storage"
	"github.com/san-kum/conserve/internal/viz"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	m0, v0     float64
	m1, v1     float64
	xMin, xMax float64
	samples    int
	noPersist  bool
	verbose    bool
	// eval
	atX []float64
	// plot
	plotHeight int
	plotWidth  int
	// export-svg
	svgWidth  int
	svgHeight int
)

// main registers the commands and flags; with no subcommand it opens the
// desktop window.
func main() {
	rootCmd := &cobra.Command{
		Use:           "conserve",
		Short:         "momentum and energy conservation curves for a 1d two-body collision",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGUI,
	}

	addSessionFlags(rootCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal UI",
		RunE:  runTUI,
	}

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "draw the curves as an ascii chart",
		RunE:  plotCurves,
	}
	plotCmd.Flags().IntVar(&plotHeight, "height", 20, "chart height in rows")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "chart width in columns")

	evalCmd := &cobra.Command{
		Use:   "eval",
		Short: "print conserved quantities and curve values",
		RunE:  evalState,
	}
	evalCmd.Flags().Float64SliceVar(&atX, "at", nil, "v₁ values to evaluate the curves at")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [file]",
		Short: "export sampled curves to CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [file]",
		Short: "export state, derived quantities and curves to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [file]",
		Short: "render the plot to SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 800, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tM0\tV0\tM1\tV1")
			for _, name := range config.ListPresets() {
				s := config.Presets[name]
				fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\n", name, s.M0, s.V0, s.M1, s.V1)
			}
			return w.Flush()
		},
	}

	stateCmd := &cobra.Command{
		Use:   "state",
		Short: "show the saved state",
		RunE:  showState,
	}
	stateCmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "delete the saved state",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			if err := st.ClearState(); err != nil {
				return fmt.Errorf("clear state: %w", err)
			}
			fmt.Printf("removed %s\n", st.StatePath())
			return nil
		},
	})

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [file]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	})

	rootCmd.AddCommand(tuiCmd, plotCmd, evalCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, stateCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// addSessionFlags registers the flags every command uses to build its
// session.
func addSessionFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".conserve", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a named preset")
	pf.Float64Var(&m0, "m0", 0, "mass of object 1")
	pf.Float64Var(&v0, "v0", 0, "velocity of object 1")
	pf.Float64Var(&m1, "m1", 0, "mass of object 2")
	pf.Float64Var(&v1, "v1", 0, "velocity of object 2")
	pf.Float64Var(&xMin, "xmin", config.DefaultXMin, "left edge of the plotted v₁ range")
	pf.Float64Var(&xMax, "xmax", config.DefaultXMax, "right edge of the plotted v₁ range")
	pf.IntVar(&samples, "samples", config.DefaultSamples, "samples per curve")
	pf.BoolVar(&noPersist, "no-persist", false, "do not read or write the saved state")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// loadConfig reads --config over the defaults and applies the plot flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("xmin") {
		cfg.Plot.XMin = xMin
	}
	if flags.Changed("xmax") {
		cfg.Plot.XMax = xMax
	}
	if flags.Changed("samples") {
		cfg.Plot.Samples = samples
	}
	if noPersist {
		cfg.Persist = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveState layers the starting state: saved state, then the config
// file's state section, then --preset, then any explicit --m0/--v0/--m1/--v1.
func resolveState(cmd *cobra.Command, cfg *config.Config, store sim.StateStore, log logrus.FieldLogger) (dynamo.State, error) {
	state := sim.Restore(store, cfg.State, log)
	if cfg.StateSet {
		state = cfg.State
	}

	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return dynamo.State{}, err
		}
		state = p
	}

	flags := cmd.Flags()
	overrides := map[dynamo.Field]float64{
		dynamo.FieldM0: m0,
		dynamo.FieldV0: v0,
		dynamo.FieldM1: m1,
		dynamo.FieldV1: v1,
	}
	for _, f := range dynamo.Fields {
		if flags.Changed(f.Name()) {
			if err := state.Set(f, overrides[f]); err != nil {
				return dynamo.State{}, err
			}
		}
	}

	for _, f := range dynamo.Fields {
		v := state.Get(f)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return dynamo.State{}, fmt.Errorf("%w: %s = %v", dynamo.ErrParameterBounds, f.Name(), v)
		}
	}
	return state.Clamp(cfg.Slider.Min, cfg.Slider.Max), nil
}

// newSession wires config, saved state and logging into a session.
func newSession(cmd *cobra.Command, log *logrus.Logger) (*sim.Session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	// The data directory is created on the first save, not here.
	var store sim.StateStore
	if cfg.Persist {
		store = storage.New(dataDir)
	}

	state, err := resolveState(cmd, cfg, store, log)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"state":   state.String(),
		"domain":  fmt.Sprintf("[%g, %g]", cfg.Plot.XMin, cfg.Plot.XMax),
		"persist": cfg.Persist,
	}).Debug("session ready")

	return sim.NewSession(state, cfg, store, log), nil
}

// currentFrame evaluates the curves once for the non-interactive commands.
func currentFrame(cmd *cobra.Command) (sim.Frame, *config.Config, error) {
	log := newLogger()
	session, err := newSession(cmd, log)
	if err != nil {
		return sim.Frame{}, nil, err
	}
	cfg := session.Config()
	return session.Frame(cfg.Domain()), cfg, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	session, err := newSession(cmd, newLogger())
	if err != nil {
		return err
	}
	return gui.Run(session)
}

func runTUI(cmd *cobra.Command, args []string) error {
	log := newLogger()
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	f, err := tea.LogToFile(filepath.Join(dataDir, "conserve.log"), "conserve")
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer f.Close()
	log.SetOutput(f)

	session, err := newSession(cmd, log)
	if err != nil {
		return err
	}
	if err := viz.Run(session); err != nil {
		return err
	}
	return session.Close()
}

func plotCurves(cmd *cobra.Command, args []string) error {
	frame, _, err := currentFrame(cmd)
	if err != nil {
		return err
	}

	series := frame.Series()
	data := make([][]float64, len(series))
	finite := 0
	for i, s := range series {
		finite += s.Finite()
		data[i] = make([]float64, len(s.Points))
		for j, p := range s.Points {
			if p.Finite() {
				data[i][j] = p.Y
			} else {
				data[i][j] = math.NaN()
			}
		}
	}
	if finite == 0 {
		fmt.Println("no finite points to plot (is a mass zero?)")
		return nil
	}

	caption := fmt.Sprintf("%s   v₁ from %s to %s", frame.State, plot.AxisLabel(frame.Domain.Min), plot.AxisLabel(frame.Domain.Max))
	graph := asciigraph.PlotMany(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue, asciigraph.Blue),
		asciigraph.SeriesLegends(plot.MomentumLegend, plot.EnergyLegend, ""),
	)
	fmt.Println(graph)
	return nil
}

func evalState(cmd *cobra.Command, args []string) error {
	frame, _, err := currentFrame(cmd)
	if err != nil {
		return err
	}
	s := frame.State
	sum := sim.Summarize(s)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "state\t%s\n", s)
	fmt.Fprintf(w, "momentum\t%.6f\n", sum.Momentum)
	fmt.Fprintf(w, "energy\t%.6f\n", sum.Energy)
	fmt.Fprintf(w, "reachable |v₁|\t%.6f\n", sum.ReachableBound)
	fmt.Fprintf(w, "elastic outcome\t(%.6f, %.6f)\n", sum.Elastic.X, sum.Elastic.Y)
	fmt.Fprintf(w, "inelastic outcome\t(%.6f, %.6f)\n", sum.Inelastic.X, sum.Inelastic.Y)
	fmt.Fprintf(w, "energy lost\t%.6f\n", sum.EnergyLoss)
	if err := w.Flush(); err != nil {
		return err
	}

	if len(atX) == 0 {
		return nil
	}
	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "V1\tMOMENTUM V2\tENERGY V2+\tENERGY V2-")
	for _, x := range atX {
		fmt.Fprintf(w, "%g\t%.6f\t%.6f\t%.6f\n", x,
			physics.MomentumAt(s, x), physics.EnergyUpperAt(s, x), physics.EnergyLowerAt(s, x))
	}
	return w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	frame, _, err := currentFrame(cmd)
	if err != nil {
		return err
	}
	path := "curves.csv"
	if len(args) > 0 {
		path = args[0]
	}
	if err := storage.ExportCSV(path, frame); err != nil {
		return err
	}
	fmt.Printf("exported %d rows to %s\n", 3*len(frame.Momentum.Points), path)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	frame, _, err := currentFrame(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return storage.WriteJSON(os.Stdout, frame)
	}

	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	if err := storage.WriteJSON(f, frame); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", args[0])
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	frame, cfg, err := currentFrame(cmd)
	if err != nil {
		return err
	}
	path := "curves.svg"
	if len(args) > 0 {
		path = args[0]
	}

	vp := plot.NewViewport(cfg.Plot.XMin, cfg.Plot.XMax, cfg.Plot.YMin, cfg.Plot.YMax)
	svg := export.FrameToSVG(frame, vp, svgWidth, svgHeight)
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("rendered %s\n", path)
	return nil
}

// initConfig writes the defaults to [file], or config.yaml in the data
// directory. An existing file is left alone.
func initConfig(cmd *cobra.Command, args []string) error {
	path := filepath.Join(dataDir, "config.yaml")
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func showState(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	s, defaulted, err := st.LoadState()
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if len(defaulted) == len(dynamo.Fields) {
		fmt.Printf("no saved state in %s\n", st.StatePath())
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "file\t%s\n", st.StatePath())
	for _, f := range dynamo.Fields {
		fmt.Fprintf(w, "%s\t%g\n", f.Name(), s.Get(f))
	}
	if len(defaulted) > 0 {
		fmt.Fprintf(w, "defaulted\t%v\n", defaulted)
	}
	return w.Flush()
}
