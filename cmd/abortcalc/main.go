package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/lmittmann/tint"
	"github.com/san-kum/abortcalc/internal/config"
	"github.com/san-kum/abortcalc/internal/engine"
	"github.com/san-kum/abortcalc/internal/margin"
	"github.com/san-kum/abortcalc/internal/sweep"
	"github.com/san-kum/abortcalc/internal/tui"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	verbose    bool
	logFile    string
	themeName  string
	// solve
	angle   float64
	buffer  float64
	elapsed float64
	speed   float64
	radius  float64
	output  string
	asJSON  bool
	// sweep
	samples     int
	graphHeight int
	graphWidth  int
	// init-config
	force bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "abortcalc",
		Short:        "lateral abort safety margin calculator",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "start from a preset")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to file while the TUI runs")
	rootCmd.Flags().StringVar(&themeName, "theme", "cyberpunk", "color theme (cyberpunk|retro|minimal|ocean)")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "solve for the output quantity once",
		Args:  cobra.NoArgs,
		RunE:  runSolve,
	}
	solveCmd.Flags().Float64Var(&angle, "theta", 0, "deflection angle (degrees)")
	solveCmd.Flags().Float64Var(&buffer, "buffer", 0, "lateral buffer (feet)")
	solveCmd.Flags().Float64Var(&elapsed, "time", 0, "elapsed time (seconds)")
	solveCmd.Flags().Float64Var(&speed, "speed", 0, "ground speed (knots)")
	solveCmd.Flags().Float64Var(&radius, "radius", 0, "turn radius (feet)")
	solveCmd.Flags().StringVarP(&output, "output", "o", "", "quantity to solve for (θ|b|t|s|r)")
	solveCmd.Flags().BoolVar(&asJSON, "json", false, "print the snapshot as JSON")

	sweepCmd := &cobra.Command{
		Use:   "sweep [quantity]",
		Short: "plot the output across the range of one input",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVarP(&output, "output", "o", "", "quantity to solve for (θ|b|t|s|r)")
	sweepCmd.Flags().IntVar(&samples, "samples", 80, "number of samples")
	sweepCmd.Flags().IntVar(&graphHeight, "height", 12, "plot height")
	sweepCmd.Flags().IntVar(&graphWidth, "width", 70, "plot width")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	rootCmd.AddCommand(solveCmd, sweepCmd, presetsCmd, initCmd)
	return rootCmd
}

func newLogger(w io.Writer, noColor bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
	}))
	slog.SetDefault(logger)
	return logger
}

// loadConfig resolves preset and config file; the file overrides the preset.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}
	if configFile != "" {
		c, err := config.LoadOver(cfg, configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}
	slog.Debug("config resolved", "preset", preset, "file", configFile, "output", cfg.Output)
	return cfg, nil
}

func newEngine(logger *slog.Logger) (*engine.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	st, err := cfg.State()
	if err != nil {
		return nil, err
	}
	return engine.New(st, engine.WithLogger(logger)), nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	theme, err := tui.GetTheme(themeName)
	if err != nil {
		return err
	}

	logger := slog.New(slog.DiscardHandler)
	slog.SetDefault(logger)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		logger = newLogger(f, true)
	}

	e, err := newEngine(logger)
	if err != nil {
		return err
	}
	logger.Info("starting tui", "state", e.Current().String())
	return tui.Run(e, theme)
}

func runSolve(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr(), false)

	e, err := newEngine(logger)
	if err != nil {
		return err
	}

	target := e.Current().Output()
	if output != "" {
		if target, err = margin.ParseQuantity(output); err != nil {
			return err
		}
	}
	if _, err := e.SetOutputTarget(target); err != nil {
		return err
	}

	inputs := []struct {
		flag string
		q    margin.Quantity
		v    float64
	}{
		{"theta", margin.Angle, angle},
		{"buffer", margin.Buffer, buffer},
		{"time", margin.Time, elapsed},
		{"speed", margin.Speed, speed},
		{"radius", margin.Radius, radius},
	}
	for _, in := range inputs {
		if !cmd.Flags().Changed(in.flag) {
			continue
		}
		if _, err := e.SetInput(in.q, in.v); err != nil {
			if errors.Is(err, engine.ErrOutputLocked) {
				return fmt.Errorf("--%s: %s is the output quantity", in.flag, in.q.Name())
			}
			return err
		}
	}

	st := e.Current()
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}
	return printState(cmd.OutOrStdout(), st)
}

func printState(out io.Writer, st engine.State) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "QUANTITY\tVALUE\tUNITS\tRANGE\tROLE")
	for _, q := range margin.All {
		rec := st.Record(q)
		role := "input"
		if q == st.Output() {
			role = "output"
		}
		fmt.Fprintf(w, "%s (%s)\t%s\t%s\t%g..%g / %g\t%s\n",
			q.Symbol(), q.Name(),
			engine.FormatValue(rec.Value),
			rec.Units,
			rec.Range.Start, rec.Range.Stop, rec.Range.Step,
			role,
		)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr(), false)

	free, err := margin.ParseQuantity(args[0])
	if err != nil {
		return err
	}
	e, err := newEngine(logger)
	if err != nil {
		return err
	}
	if output != "" {
		target, err := margin.ParseQuantity(output)
		if err != nil {
			return err
		}
		if _, err := e.SetOutputTarget(target); err != nil {
			return err
		}
	}

	res, err := sweep.Run(e.Current(), free, samples)
	if err != nil {
		return err
	}
	vals, dropped := res.Outputs()
	if len(vals) == 0 {
		return fmt.Errorf("no finite %s values across %s", res.Output.Name(), res.Free.Name())
	}

	out := cmd.OutOrStdout()
	rng := e.Current().Record(free).Range
	fmt.Fprintf(out, "sweep: %s over %g..%g %s\n", res.Free.Name(), rng.Start, rng.Stop, res.Free.Units())
	fmt.Fprintf(out, "output: %s (%s)\n\n", res.Output.Name(), res.Output.Units())

	graph := asciigraph.Plot(vals,
		asciigraph.Height(graphHeight),
		asciigraph.Width(graphWidth),
		asciigraph.Caption(fmt.Sprintf("%s vs %s", res.Output.Symbol(), res.Free.Symbol())),
	)
	fmt.Fprintln(out, graph)
	fmt.Fprintln(out)

	lo, hi, _ := res.Bounds()
	fmt.Fprintf(out, "min: %s  max: %s\n", engine.FormatValue(lo), engine.FormatValue(hi))
	if dropped > 0 {
		logger.Warn("non-finite samples dropped", "count", dropped, "samples", len(res.Points))
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tOUTPUT\tVALUES")
	for _, name := range config.ListPresets() {
		cfg, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		st, err := cfg.State()
		if err != nil {
			return fmt.Errorf("preset %s: %w", name, err)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, st.Output().Name(), st)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	newLogger(cmd.ErrOrStderr(), false)

	path := "abortcalc.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force)", path)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
