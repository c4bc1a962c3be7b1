package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/njchilds90/stepwise"
)

// batchCmd works a file of exercises concurrently
var batchCmd = &cobra.Command{
	Use:   "batch [exercises.yaml]",
	Short: "Work every exercise of a YAML file",
	Long: `Reads a YAML file of exercises and prints the worked solution of each,
in file order. Independent exercises are solved concurrently, bounded by
batch.concurrency.

Example file:
  exercises:
    - name: scenario-b
      equation:
        left: {type: sum, terms: [{type: monomial, coefficient: {type: item, value: 2}, variable: x, degree: 1}, {type: item, value: 3}]}
        right: {type: item, value: 8}
    - name: fraction
      expr: {type: fraction, numerator: {type: item, value: 26}, denominator: {type: item, value: 10}}`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

// Exercise is one entry of a batch file. Exactly one of Expr and Equation
// is set.
type Exercise struct {
	Name        string                 `yaml:"name"`
	Expr        map[string]interface{} `yaml:"expr"`
	Equation    map[string]interface{} `yaml:"equation"`
	Pythagorean bool                   `yaml:"pythagorean"`
}

type batchFile struct {
	Exercises []Exercise `yaml:"exercises"`
}

// Worked is the result of one exercise.
type Worked struct {
	Name    string
	Lines   []string
	Outcome string
	Err     error
}

func loadExercises(path string) ([]Exercise, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read exercises: %w", err)
	}
	var f batchFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse exercises: %w", err)
	}
	return f.Exercises, nil
}

// workAll solves exercises concurrently and returns results in input order.
// An exercise failing is reported in its Worked entry, not as an error.
func workAll(ctx context.Context, exercises []Exercise, limit int, opts stepwise.RenderOptions, so stepwise.SolveOptions) ([]Worked, error) {
	results := make([]Worked, len(exercises))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, ex := range exercises {
		i, ex := i, ex // per-iteration copies (go.mod targets go 1.21)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = work(ex, opts, so)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func work(ex Exercise, opts stepwise.RenderOptions, so stepwise.SolveOptions) Worked {
	w := Worked{Name: ex.Name}
	switch {
	case ex.Equation != nil:
		eq, err := stepwise.EquationFromJSON(ex.Equation)
		if err != nil {
			w.Err = err
			return w
		}
		so.Pythagorean = ex.Pythagorean
		res, err := eq.AutoResolution(so)
		if err != nil {
			w.Err = err
			return w
		}
		w.Lines = res.Render(opts)
		w.Outcome = res.Outcome.String()
	case ex.Expr != nil:
		e, err := stepwise.FromJSON(ex.Expr)
		if err != nil {
			w.Err = err
			return w
		}
		w.Lines, w.Err = stepwise.Steps(e, opts)
	default:
		w.Err = fmt.Errorf("exercise %q has neither expr nor equation", ex.Name)
	}
	return w
}

func printWorked(out io.Writer, results []Worked) (failed int) {
	for _, r := range results {
		fmt.Fprintf(out, "## %s\n", r.Name)
		if r.Err != nil {
			fmt.Fprintf(out, "error: %v\n", r.Err)
			failed++
			continue
		}
		for _, l := range r.Lines {
			fmt.Fprintln(out, l)
		}
		if r.Outcome != "" {
			fmt.Fprintln(out, r.Outcome)
		}
	}
	return failed
}

func runBatch(cmd *cobra.Command, args []string) error {
	exercises, err := loadExercises(args[0])
	if err != nil {
		return err
	}
	results, err := workAll(cmd.Context(), exercises, cfg.Batch.Concurrency, cfg.RenderOptions(), cfg.SolveOptions())
	if err != nil {
		return err
	}
	failed := printWorked(cmd.OutOrStdout(), results)
	logger.Info("batch done", zap.Int("exercises", len(exercises)), zap.Int("failed", failed))
	if failed > 0 {
		return fmt.Errorf("%d of %d exercises failed", failed, len(exercises))
	}
	return nil
}
