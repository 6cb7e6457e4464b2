package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/trajopt/internal/config"
	"github.com/san-kum/trajopt/internal/export"
	"github.com/san-kum/trajopt/internal/metrics"
	"github.com/san-kum/trajopt/internal/problem"
	"github.com/san-kum/trajopt/internal/transcribe"
	"github.com/san-kum/trajopt/internal/tui"
	"github.com/san-kum/trajopt/internal/viz"
)

var (
	configFile string
	preset     string
	intervals  int
	friction   float64
	t0         float64
	tfGuess    float64
	finishX    float64
	finishY    float64
	// export options
	format  string
	outFile string
	// sweep options
	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "trajopt",
		Short: "direct-transcription lab for the brachistochrone with friction",
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "named preset configuration")
	rootCmd.PersistentFlags().IntVar(&intervals, "intervals", 0, "discretization intervals")
	rootCmd.PersistentFlags().Float64Var(&friction, "friction", -1, "friction coefficient")
	rootCmd.PersistentFlags().Float64Var(&t0, "t0", 0, "initial time")
	rootCmd.PersistentFlags().Float64Var(&tfGuess, "tf", 0, "final-time guess")
	rootCmd.PersistentFlags().Float64Var(&finishX, "fx", 0, "finish x")
	rootCmd.PersistentFlags().Float64Var(&finishY, "fy", 0, "finish y")

	evalCmd := &cobra.Command{
		Use:   "eval",
		Short: "evaluate residuals and Jacobian at the initial guess",
		RunE:  runEval,
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "verify the analytic Jacobian and the sparsity pattern",
		RunE:  runCheck,
	}

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "terminal plots of the guess trajectory and residuals",
		RunE:  runPlot,
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "export the guess trajectory",
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&format, "format", "svg", "output format (svg, csv)")
	exportCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter and report residual metrics",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "friction", "parameter to sweep (friction, tf)")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "sweep start")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 0.5, "sweep end")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 11, "sweep points")

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "interactive transcription inspector",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return tui.Run(cfg.Definition())
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				p := config.GetPreset(name)
				fmt.Printf("%-14s n=%-3d friction=%-5.2f finish=(%g, %g)\n",
					name, p.Intervals, p.Friction, p.Finish.X, p.Finish.Y)
			}
		},
	}

	rootCmd.AddCommand(evalCmd, checkCmd, plotCmd, exportCmd, sweepCmd, inspectCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveConfig layers flags over a preset or config file over defaults.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
		*cfg = *p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("intervals") {
		cfg.Intervals = intervals
	}
	if flags.Changed("friction") {
		cfg.Friction = friction
	}
	if flags.Changed("t0") {
		cfg.T0 = t0
	}
	if flags.Changed("tf") {
		cfg.TfGuess = tfGuess
	}
	if flags.Changed("fx") {
		cfg.Finish.X = finishX
	}
	if flags.Changed("fy") {
		cfg.Finish.Y = finishY
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	tr, setup, err := cfg.Definition().Build()
	if err != nil {
		return err
	}

	eval, err := tr.Evaluate(setup.Guess)
	if err != nil {
		return err
	}

	violation := metrics.NewViolation(setup.FLow, setup.FUpp)
	violation.Observe(eval)
	dynNorm := metrics.NewDynamicsNorm(tr.Layout())
	dynNorm.Observe(eval)
	jacNorm := metrics.NewJacobianNorm()
	jacNorm.Observe(eval)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "intervals\t%d\n", cfg.Intervals)
	fmt.Fprintf(w, "friction\t%g\n", cfg.Friction)
	fmt.Fprintf(w, "residuals\t%d\n", len(eval.F))
	fmt.Fprintf(w, "jacobian nnz\t%d\n", len(eval.G))
	fmt.Fprintf(w, "tf guess\t%g\n", eval.F[0])
	fmt.Fprintf(w, "max violation\t%.3e\n", violation.Value())
	fmt.Fprintf(w, "dynamics norm\t%.3e\n", dynNorm.Value())
	fmt.Fprintf(w, "jacobian norm\t%.3e\n", jacNorm.Value())
	return w.Flush()
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	tr, setup, err := cfg.Definition().Build()
	if err != nil {
		return err
	}

	if err := tr.CheckPattern(setup.Guess); err != nil {
		return fmt.Errorf("sparsity pattern: %w", err)
	}
	fmt.Println("sparsity pattern covers all analytic nonzeros")

	worst, err := transcribe.VerifyJacobian(tr, setup.Guess)
	if err != nil {
		return err
	}
	fmt.Printf("worst analytic-vs-fd mismatch: %.3e\n", worst)
	if worst > 1e-6 {
		return fmt.Errorf("jacobian check failed (mismatch %.3e)", worst)
	}
	fmt.Println("analytic jacobian verified")
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	tr, setup, err := cfg.Definition().Build()
	if err != nil {
		return err
	}

	vars, err := transcribe.SplitVars(setup.Guess, cfg.Intervals)
	if err != nil {
		return err
	}
	f, err := tr.Residuals(setup.Guess)
	if err != nil {
		return err
	}

	fmt.Println(viz.States(vars.X, vars.Y, vars.V, 70, 12))
	fmt.Println()
	fmt.Println(viz.Descent(vars.Y, 70, 10))
	fmt.Println()
	fmt.Println(viz.ResidualProfile(f, 70, 10))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	_, setup, err := cfg.Definition().Build()
	if err != nil {
		return err
	}
	vars, err := transcribe.SplitVars(setup.Guess, cfg.Intervals)
	if err != nil {
		return err
	}

	out := os.Stdout
	if outFile != "" {
		out, err = os.Create(outFile)
		if err != nil {
			return err
		}
		defer out.Close()
	}

	switch format {
	case "svg":
		_, err = fmt.Fprintln(out, export.TrajectorySVG(vars.X, vars.Y, 640, 480, "#00ff00"))
		return err
	case "csv":
		return export.WriteTrajectoryCSV(out, vars, cfg.T0)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if sweepSteps < 2 {
		return fmt.Errorf("sweep needs at least 2 steps, got %d", sweepSteps)
	}
	stride := (sweepTo - sweepFrom) / float64(sweepSteps-1)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tmax violation\tdynamics norm\n", sweepParam)

	switch sweepParam {
	case "friction":
		for i := 0; i < sweepSteps; i++ {
			val := sweepFrom + float64(i)*stride
			c := *cfg
			c.Friction = val
			tr, setup, err := c.Definition().Build()
			if err != nil {
				return err
			}
			eval, err := tr.Evaluate(setup.Guess)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%.4f\t%s\n", val, sweepRow(tr, setup, eval))
		}
	case "tf":
		// One shared transcriber, all final times probed concurrently.
		tr, setup, err := cfg.Definition().Build()
		if err != nil {
			return err
		}
		l := tr.Layout()
		points := make([][]float64, sweepSteps)
		for i := range points {
			z := make([]float64, len(setup.Guess))
			copy(z, setup.Guess)
			z[l.ColTf()] = sweepFrom + float64(i)*stride
			points[i] = z
		}
		evals, err := transcribe.NewBatch(tr).Evaluate(context.Background(), points)
		if err != nil {
			return err
		}
		for i, eval := range evals {
			fmt.Fprintf(w, "%.4f\t%s\n", points[i][l.ColTf()], sweepRow(tr, setup, eval))
		}
	default:
		return fmt.Errorf("unknown sweep parameter %q", sweepParam)
	}
	return w.Flush()
}

func sweepRow(tr *transcribe.Transcriber, setup *problem.Setup, eval *transcribe.Evaluation) string {
	violation := metrics.NewViolation(setup.FLow, setup.FUpp)
	violation.Observe(eval)
	dynNorm := metrics.NewDynamicsNorm(tr.Layout())
	dynNorm.Observe(eval)
	return fmt.Sprintf("%.3e\t%.3e", violation.Value(), dynNorm.Value())
}
