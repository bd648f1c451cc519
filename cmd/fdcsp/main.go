// Package main is a smoke-test harness for the fdcsp library: it builds the
// x+y=10, maximize x*y scenario and solves it with a chosen backend. It
// carries no puzzle encodings.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gitrdm/fdcsp/internal/satbackend"
	"github.com/gitrdm/fdcsp/pkg/fdcsp"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	backendFlag string
	traceFlag   bool
	timeoutFlag time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "fdcsp",
	Short: "Solve the x+y=10, maximize x*y example problem",
	Long: `fdcsp builds a small finite-domain problem (x in 1..9, y in
{2,4,6,8}, require x+y=10, maximize x*y) and solves it with the chosen
backend, printing the resulting solution.`,
	RunE: run,
}

func init() {
	addFlags(rootCmd.Flags())
}

// addFlags registers this command's flags against fs, mirroring OLM's
// pkg/feature.AddFlag(fs *pflag.FlagSet) shape of taking the flag set as an
// explicit parameter rather than reaching for cobra's wrapper methods.
func addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&backendFlag, "backend", "native", `solving backend: "native" or "sat"`)
	fs.BoolVar(&traceFlag, "trace", false, "enable structured trace logging (native backend only)")
	fs.DurationVar(&timeoutFlag, "timeout", 5*time.Second, "search time budget")
}

func run(cmd *cobra.Command, args []string) error {
	backend, err := buildBackend()
	if err != nil {
		return err
	}

	x := fdcsp.NewVar("x").Interval(1, 9)
	y := fdcsp.NewVar("y").Set(2, 4, 6, 8)

	if err := backend.Require(x.Expr().Add(y.Expr()).Eq(fdcsp.Lit(10)), "x_plus_y_is_10"); err != nil {
		return err
	}
	if err := backend.Maximize(x.Expr().Mul(y.Expr())); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeoutFlag)
	defer cancel()

	sol, err := backend.SolveContext(ctx)
	if err != nil {
		var fe *fdcsp.Error
		if errors.As(err, &fe) && fe.Kind == fdcsp.NoFeasibleSolution {
			fmt.Fprintln(cmd.OutOrStdout(), "no feasible solution; why:", backend.WhyUnsat())
			return nil
		}
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), sol.Pretty())
	return nil
}

func buildBackend() (fdcsp.Backend, error) {
	switch backendFlag {
	case "native":
		s, err := fdcsp.NewSolver("lex", fdcsp.WithTrace(traceFlag))
		if err != nil {
			return nil, err
		}
		return fdcsp.AsBackend(s), nil
	case "sat":
		return satbackend.New("lex")
	default:
		return nil, fmt.Errorf("unknown backend %q, want \"native\" or \"sat\"", backendFlag)
	}
}

