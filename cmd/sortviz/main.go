package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/experiment"
	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/sorts"
	"github.com/san-kum/sortviz/internal/storage"
	"github.com/san-kum/sortviz/internal/visual"
	"github.com/san-kum/sortviz/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	runName    string
	count      int
	seed       uint64
	workers    int
	progress   bool
	logLevel   string
	logFormat  string
)

// main registers the sortviz commands and exits with status 1 when the
// selected command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "sortviz",
		Short:        "render sorting algorithms as bar chart frames",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".sortviz", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "sort a random permutation and write one PNG per operation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSort,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "palette preset")
	runCmd.Flags().StringVar(&runName, "name", config.DefaultName, "frame file prefix")
	runCmd.Flags().IntVar(&count, "count", config.DefaultCount, "number of values")
	runCmd.Flags().Uint64Var(&seed, "seed", 0, "permutation seed (0 picks one from the clock)")
	runCmd.Flags().IntVar(&workers, "workers", visual.DefaultCapacity, "concurrent frame writers")
	runCmd.Flags().BoolVar(&progress, "progress", false, "show live progress")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot how many values were out of place at each frame",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [algorithm...]",
		Short: "compare algorithms on the same permutation",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareAlgorithms,
	}
	compareCmd.Flags().IntVar(&count, "count", config.DefaultCount, "number of values")
	compareCmd.Flags().Uint64Var(&seed, "seed", 0, "permutation seed (0 picks one from the clock)")
	compareCmd.Flags().IntVar(&workers, "workers", visual.DefaultCapacity, "concurrent frame renderers")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list palette presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-8s %s %s\n", name, viz.Swatch(p.Background, 2), viz.GradientStrip(p.Gradient, 24))
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "sortviz.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, exportCmd, plotCmd, compareCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() (*slog.Logger, error) {
	lvl, err := logging.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(os.Stderr, lvl, logFormat)
}

// resolveConfig layers the config file, preset and explicitly set flags.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if len(args) > 0 {
		cfg.Algorithm = args[0]
	}
	if flags.Changed("name") {
		cfg.Name = runName
	}
	if flags.Changed("count") {
		cfg.Count = count
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSort(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	expCfg := experiment.Config{
		Name:      cfg.Name,
		Algorithm: cfg.Algorithm,
		Input:     experiment.Permutation(cfg.Count, cfg.Seed),
		Seed:      cfg.Seed,
		Workers:   cfg.Workers,
		Render:    cfg.Render.Raster(),
	}

	var (
		runID  string
		result *experiment.Result
	)
	record := func(opts ...experiment.Option) error {
		exp := experiment.New(expCfg, append(opts, experiment.WithLogger(logger))...)
		id, res, err := exp.Record(context.Background(), st)
		runID, result = id, res
		return err
	}

	if progress {
		title := fmt.Sprintf("%s sort of %d values", cfg.Algorithm, cfg.Count)
		err = viz.RunWithProgress(title, os.Stdout, func(o visual.Observer) error {
			return record(experiment.WithObserver(o))
		})
	} else {
		fmt.Printf("running %s sort of %d values...\n", cfg.Algorithm, cfg.Count)
		err = record()
	}
	if err != nil {
		return err
	}

	fmt.Println(viz.Summary(runID, st.RunDir(runID), result))
	return nil
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
	fmt.Fprintln(w, "ID\tALGORITHM\tTIME\tCOUNT\tFRAMES\tSWAPS\tCOMPARES\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%dms\n",
			run.ID,
			run.Algorithm,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Count,
			run.Frames,
			run.Swaps,
			run.Compares,
			run.ElapsedMs,
		)
	}

	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	ops, err := st.LoadOperations(meta.ID)
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		return fmt.Errorf("no operations to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("algorithm: %s\n", meta.Algorithm)
	fmt.Printf("frames: %d\n\n", len(ops))

	fmt.Println(viz.ValuesChart(meta.Input, "input"))
	fmt.Println()
	fmt.Println(viz.MisplacedChart(ops))
	return nil
}

func compareAlgorithms(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	if count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", count)
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	input := experiment.Permutation(count, seed)
	render := config.DefaultConfig().Render.Raster()
	names, err := sorts.NewRegistry().Resolve(args)
	if err != nil {
		return err
	}

	fmt.Printf("comparing on %d values (seed %d)\n\n", count, seed)

	runs := make(map[string][]storage.Operation, len(names))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tFRAMES\tSWAPS\tCOMPARES\tELAPSED")

	for _, name := range names {
		exp := experiment.New(experiment.Config{
			Name:      name,
			Algorithm: name,
			Input:     input,
			Seed:      seed,
			Workers:   workers,
			Render:    render,
		}, experiment.WithLogger(logger))

		result, err := exp.Run(context.Background(), storage.Discard{})
		if err != nil {
			return err
		}
		runs[result.Algorithm] = result.Ops

		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%v\n",
			result.Algorithm,
			result.Frames,
			result.Swaps,
			result.Compares,
			result.Elapsed.Round(time.Microsecond),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(viz.CompareChart(runs))
	return nil
}
