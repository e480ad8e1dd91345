package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/theSadeQ/dip-smc-pso-sub005/internal/config"
	"github.com/theSadeQ/dip-smc-pso-sub005/internal/cost"
	"github.com/theSadeQ/dip-smc-pso-sub005/internal/dynamo"
	"github.com/theSadeQ/dip-smc-pso-sub005/internal/export"
	"github.com/theSadeQ/dip-smc-pso-sub005/internal/integrators"
	"github.com/theSadeQ/dip-smc-pso-sub005/internal/plant"
	"github.com/theSadeQ/dip-smc-pso-sub005/internal/pso"
	"github.com/theSadeQ/dip-smc-pso-sub005/internal/scenario"
	"github.com/theSadeQ/dip-smc-pso-sub005/internal/sim"
	"github.com/theSadeQ/dip-smc-pso-sub005/internal/smc"
)

var (
	configFile string
	presetName string
	controller string
	gainsFlag  string
	dt         float64
	duration   float64
	seed       int64
	swarmSize  int
	iterations int
	scenarios  int
	workers    int
	warmStart  bool
	// Initial condition for simulate
	theta1 float64
	theta2 float64
	omega1 float64
	omega2 float64
	pos    float64
	vel    float64
	// Output paths
	csvPath  string
	jsonPath string
	plotPath string
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dipsmc",
		Short: "sliding-mode control tuning for a double inverted pendulum",
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&presetName, "preset", "", "use preset configuration")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "tune controller gains with particle swarm optimization",
		RunE:  runTune,
	}
	tuneCmd.Flags().StringVar(&controller, "controller", "", "controller type (classical|adaptive|sta|hybrid)")
	tuneCmd.Flags().IntVar(&swarmSize, "swarm", 0, "swarm size")
	tuneCmd.Flags().IntVar(&iterations, "iters", 0, "iteration budget")
	tuneCmd.Flags().Int64Var(&seed, "seed", 0, "random seed for swarm and scenarios")
	tuneCmd.Flags().IntVar(&scenarios, "scenarios", 0, "number of evaluation scenarios")
	tuneCmd.Flags().IntVar(&workers, "workers", 0, "candidate evaluation workers (0 = all cores)")
	tuneCmd.Flags().BoolVar(&warmStart, "warm-start", false, "seed part of the swarm near the configured gains")
	tuneCmd.Flags().StringVar(&plotPath, "plot", "", "write convergence plot to file")

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "run one closed-loop rollout",
		RunE:  runSimulate,
	}
	simulateCmd.Flags().StringVar(&controller, "controller", "", "controller type (classical|adaptive|sta|hybrid)")
	simulateCmd.Flags().StringVar(&gainsFlag, "gains", "", "comma-separated gain vector")
	simulateCmd.Flags().Float64Var(&dt, "dt", 0, "timestep")
	simulateCmd.Flags().Float64Var(&duration, "time", 0, "duration")
	simulateCmd.Flags().Float64Var(&theta1, "theta1", 0.1, "initial first link angle")
	simulateCmd.Flags().Float64Var(&theta2, "theta2", 0.05, "initial second joint angle, relative to the first link")
	simulateCmd.Flags().Float64Var(&omega1, "omega1", 0.0, "initial first link rate")
	simulateCmd.Flags().Float64Var(&omega2, "omega2", 0.0, "initial second link rate")
	simulateCmd.Flags().Float64Var(&pos, "pos", 0.0, "initial cart position")
	simulateCmd.Flags().Float64Var(&vel, "vel", 0.0, "initial cart velocity")
	simulateCmd.Flags().StringVar(&csvPath, "csv", "", "write trajectory CSV to file")
	simulateCmd.Flags().StringVar(&jsonPath, "json", "", "write run JSON to file")

	boundsCmd := &cobra.Command{
		Use:   "bounds [type]",
		Short: "show gain search bounds per controller type",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBounds,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(tuneCmd, simulateCmd, boundsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves preset, then config file, then flags, so a changed
// CLI flag always wins.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if presetName != "" {
		cfg = config.GetPreset(presetName)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("controller") {
		cfg.Controller.Type = controller
	}
	if cmd.Flags().Changed("dt") {
		cfg.Sim.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Sim.Duration = duration
	}
	if cmd.Flags().Changed("seed") {
		cfg.PSO.Seed = seed
		cfg.Scenarios.Seed = seed
	}
	if cmd.Flags().Changed("swarm") {
		cfg.PSO.SwarmSize = swarmSize
	}
	if cmd.Flags().Changed("iters") {
		cfg.PSO.Iterations = iterations
	}
	if cmd.Flags().Changed("scenarios") {
		cfg.Scenarios.Count = scenarios
	}
	if cmd.Flags().Changed("workers") {
		cfg.Cost.Workers = workers
	}
	if cmd.Flags().Changed("gains") {
		gains, err := parseGains(gainsFlag)
		if err != nil {
			return nil, err
		}
		cfg.Controller.Gains = gains
	} else if cmd.Flags().Changed("controller") {
		// Gains carried over from another variant's layout are meaningless.
		if t, err := smc.ParseType(cfg.Controller.Type); err == nil && len(cfg.Controller.Gains) != smc.GainCount(t) {
			cfg.Controller.Gains = nil
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctrlType, err := cfg.ControllerType()
	if err != nil {
		return err
	}

	model := plant.New(cfg.ToPlantParams())
	registry, err := smc.NewRegistry(model)
	if err != nil {
		return err
	}

	scns, err := scenario.Generate(cfg.Scenarios)
	if err != nil {
		return err
	}
	x0s := make([]dynamo.State, len(scns))
	for i, sc := range scns {
		x0s[i] = sc.X0
	}

	robust := cost.NewRobust(registry, model, cost.RobustConfig{
		Type:        ctrlType,
		Options:     cfg.ToOptions(),
		Scenarios:   x0s,
		Sim:         cfg.ToSimConfig(),
		Weights:     cfg.Cost.Weights,
		Penalty:     cfg.Cost.Penalty,
		WorstWeight: cfg.Cost.WorstWeight,
		Workers:     cfg.Cost.Workers,
	})

	bounds, err := smc.BoundsFor(ctrlType)
	if err != nil {
		return err
	}

	psoCfg := cfg.PSO
	if warmStart {
		if len(cfg.Controller.Gains) != len(bounds.Lower) {
			return fmt.Errorf("warm start needs %d configured gains, have %d",
				len(bounds.Lower), len(cfg.Controller.Gains))
		}
		psoCfg.WarmStart = cfg.Controller.Gains
	}

	tuner, err := pso.NewTuner(psoCfg, bounds, robust)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println(titleStyle.Render(fmt.Sprintf("tuning %s controller (%d particles, %d iterations, %d scenarios)",
		ctrlType, psoCfg.SwarmSize, psoCfg.Iterations, len(x0s))))
	start := time.Now()

	result, runErr := tuner.Run(ctx)
	elapsed := time.Since(start)
	if runErr != nil {
		fmt.Println(warnStyle.Render(fmt.Sprintf("stopped early: %v", runErr)))
	}

	fmt.Printf("completed %d iterations in %v\n\n", result.Iterations, elapsed.Round(time.Millisecond))
	fmt.Println(asciigraph.Plot(result.History,
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.Caption("best cost per iteration"),
	))
	fmt.Println()

	fmt.Println(okStyle.Render(fmt.Sprintf("best cost: %.6f", result.BestCost)))
	fmt.Printf("best gains: %s\n", formatGains(result.BestGains))
	fmt.Printf("evaluations: %d (invalid gains: %d, diverged rollouts: %d)\n",
		result.Tally.Candidates, result.Tally.InvalidGains, result.Tally.DivergedRuns)

	if plotPath != "" {
		if err := export.ConvergencePlot(plotPath, result.History); err != nil {
			return err
		}
		fmt.Printf("convergence plot: %s\n", plotPath)
	}

	return runErr
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctrlType, err := cfg.ControllerType()
	if err != nil {
		return err
	}
	if cfg.Controller.Gains == nil {
		return fmt.Errorf("no gains configured; pass --gains or set them in the config")
	}

	model := plant.New(cfg.ToPlantParams())
	registry, err := smc.NewRegistry(model)
	if err != nil {
		return err
	}
	ctrl, err := registry.New(ctrlType, cfg.Controller.Gains, cfg.ToOptions())
	if err != nil {
		return err
	}

	x0 := dynamo.State{pos, theta1, theta2, vel, omega1, omega2}
	simCfg := cfg.ToSimConfig()

	runner := sim.NewRunner(model, integrators.NewRK4(), ctrl)
	result, err := runner.Run(context.Background(), x0, simCfg)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("%s controller, gains %s", ctrlType, formatGains(cfg.Controller.Gains))))
	fmt.Printf("steps: %d  dt: %.4f\n\n", result.Steps(), simCfg.Dt)

	angle1 := make([]float64, len(result.States))
	for i, x := range result.States {
		angle1[i] = x[1]
	}
	fmt.Println(asciigraph.Plot(angle1,
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.Caption("theta1 (rad)"),
	))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	final := result.States[len(result.States)-1]
	fmt.Fprintln(w, "X\tTHETA1\tTHETA2\tXDOT\tOMEGA1\tOMEGA2")
	fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n",
		final[0], final[1], final[2], final[3], final[4], final[5])
	w.Flush()

	maxU := 0.0
	for _, u := range result.Controls {
		if u > maxU {
			maxU = u
		}
		if -u > maxU {
			maxU = -u
		}
	}
	fmt.Printf("\npeak force: %.2f N\n", maxU)
	if result.Diverged {
		fmt.Println(warnStyle.Render("rollout diverged"))
	} else if result.Err != nil {
		fmt.Println(warnStyle.Render(fmt.Sprintf("rollout ended early: %v", result.Err)))
	} else {
		fmt.Println(okStyle.Render("rollout completed"))
	}

	if csvPath != "" {
		if err := export.WriteTrajectoryCSV(csvPath, result); err != nil {
			return err
		}
		fmt.Printf("trajectory CSV: %s\n", csvPath)
	}
	if jsonPath != "" {
		if err := export.ExportJSON(jsonPath, ctrlType.String(), cfg.Controller.Gains,
			simCfg.Dt, simCfg.Duration, result); err != nil {
			return err
		}
		fmt.Printf("run JSON: %s\n", jsonPath)
	}

	return nil
}

func runBounds(cmd *cobra.Command, args []string) error {
	types := smc.Types()
	if len(args) == 1 {
		t, err := smc.ParseType(args[0])
		if err != nil {
			return err
		}
		types = []smc.Type{t}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tDIM\tLOWER\tUPPER")
	for _, t := range types {
		b, err := smc.BoundsFor(t)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", t, smc.GainCount(t), formatGains(b.Lower), formatGains(b.Upper))
	}
	return w.Flush()
}

func parseGains(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	gains := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad gain %q: %w", p, err)
		}
		gains = append(gains, v)
	}
	return gains, nil
}

func formatGains(gains []float64) string {
	parts := make([]string, len(gains))
	for i, g := range gains {
		parts[i] = strconv.FormatFloat(g, 'g', 5, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
