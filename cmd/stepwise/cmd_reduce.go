package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/njchilds90/stepwise"
)

var (
	decimalResult bool
	pythagorean   bool
	length        bool
	variable      string
)

// reduceCmd prints the worked reduction of an expression
var reduceCmd = &cobra.Command{
	Use:   "reduce [expr-json | file | -]",
	Short: "Reduce an expression, printing one line per step",
	Long: `Reduces an expression to its fixpoint and prints every intermediate line.

The argument is a JSON expression record, a path to a file holding one,
or "-" to read from stdin.

Example:
  stepwise reduce '{"type":"product","factors":[
    {"type":"fraction","numerator":{"type":"item","value":"5"},"denominator":{"type":"item","value":"4"}},
    {"type":"fraction","numerator":{"type":"item","value":"5"},"denominator":{"type":"item","value":"5"}}]}'`,
	Args: cobra.ExactArgs(1),
	RunE: runReduce,
}

// solveCmd prints the worked solution of an equation
var solveCmd = &cobra.Command{
	Use:   "solve [equation-json | file | -]",
	Short: "Auto-resolve an equation",
	Long: `Solves {"left": expr, "right": expr, "substitutions": {name: value}}
and prints each line of the worked solution followed by the outcome
(solved, no_solution or infinite_solutions).`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

// gcdCmd shows the pupil GCD and the reduction of a/b
var gcdCmd = &cobra.Command{
	Use:   "gcd [a] [b]",
	Short: "Show the pupil GCD of two integers and the reduction of a/b",
	Args:  cobra.ExactArgs(2),
	RunE:  runGCD,
}

func init() {
	for _, c := range []*cobra.Command{reduceCmd, solveCmd} {
		c.Flags().BoolVar(&decimalResult, "decimal", false, "Render results as decimals when possible")
	}
	solveCmd.Flags().BoolVar(&pythagorean, "pythagorean", false, "Accept x² = k and extract the roots")
	solveCmd.Flags().BoolVar(&length, "length", false, "The unknown is a length: discard the negative root")
	solveCmd.Flags().StringVar(&variable, "var", "", "Name of the unknown")
}

func readRecord(cmd *cobra.Command, arg string) (map[string]interface{}, error) {
	var data []byte
	switch {
	case arg == "-":
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		data = b
	case strings.HasPrefix(strings.TrimSpace(arg), "{"):
		data = []byte(arg)
	default:
		b, err := os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", arg, err)
		}
		data = b
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return m, nil
}

func renderOptions(cmd *cobra.Command) stepwise.RenderOptions {
	opts := cfg.RenderOptions()
	if cmd.Flags().Changed("decimal") {
		opts.DecimalResult = decimalResult
	}
	return opts
}

func runReduce(cmd *cobra.Command, args []string) error {
	m, err := readRecord(cmd, args[0])
	if err != nil {
		return err
	}
	e, err := stepwise.FromJSON(m)
	if err != nil {
		return err
	}
	lines, err := stepwise.Steps(e, renderOptions(cmd))
	if err != nil {
		return err
	}
	logger.Debug("reduced", zap.Int("lines", len(lines)))
	out := cmd.OutOrStdout()
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}
	return nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	m, err := readRecord(cmd, args[0])
	if err != nil {
		return err
	}
	eq, err := stepwise.EquationFromJSON(m)
	if err != nil {
		return err
	}
	opts := renderOptions(cmd)
	so := cfg.SolveOptions()
	so.DecimalResult = opts.DecimalResult
	so.Pythagorean = pythagorean
	if cmd.Flags().Changed("length") {
		so.Length = length
	}
	so.Variable = variable

	res, err := eq.AutoResolution(so)
	if err != nil {
		return err
	}
	printResolution(cmd.OutOrStdout(), res, opts)
	return nil
}

func printResolution(out io.Writer, res *stepwise.Resolution, opts stepwise.RenderOptions) {
	for _, l := range res.Render(opts) {
		fmt.Fprintln(out, l)
	}
	fmt.Fprintln(out, res.Outcome)
}

func runGCD(cmd *cobra.Command, args []string) error {
	var ops [2]int64
	for i, a := range args {
		n, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer %q: %w", a, err)
		}
		ops[i] = n
	}
	g, err := stepwise.PupilGCD(ops[0], ops[1])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "pupil gcd(%d, %d) = %d\n", ops[0], ops[1], g)
	lines, err := stepwise.Steps(stepwise.F(ops[0], ops[1]), cfg.RenderOptions())
	if err != nil {
		return err
	}
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}
	return nil
}
