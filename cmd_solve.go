package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
	"q.log/linprog/config"
	"q.log/linprog/graphical"
	"q.log/linprog/instance"
	"q.log/linprog/model"
	"q.log/linprog/simplex"
)

var (
	solveMethod string
	problemPath string
	mpsPath     string
	printTrace  bool

	solveCmd = &cobra.Command{
		Use:   "solve",
		Short: "Solve a problem read from a YAML/JSON or MPS file",
		Example: `  linprog solve --method graphical --problem examples/production.yaml
  linprog solve --method bigm --problem examples/equality.json --trace
  linprog solve --method bigm --problem examples/diet.yaml
  linprog solve --method simplex --mps model.mps`,
		RunE: runSolve,
	}
)

func init() {
	solveCmd.Flags().StringVarP(&solveMethod, "method", "m", "bigm", "simplex | bigm | minimize | graphical")
	solveCmd.Flags().StringVarP(&problemPath, "problem", "p", "", "problem file (YAML or JSON)")
	solveCmd.Flags().StringVar(&mpsPath, "mps", "", "problem file in MPS format")
	solveCmd.Flags().BoolVar(&printTrace, "trace", false, "print every simplex pivot")
	solveCmd.MarkFlagsMutuallyExclusive("problem", "mps")
	solveCmd.MarkFlagsOneRequired("problem", "mps")
}

func runSolve(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	lp, err := readProblem()
	if err != nil {
		return err
	}
	logger.Debug("Problem loaded", "rows", lp.NumRows, "cols", lp.NumCols, "sense", lp.Sense().String())

	out := cmd.OutOrStdout()
	printProblem(out, lp)

	method := strings.ToLower(solveMethod)
	if method == "graphical" {
		res, err := graphical.Solve(lp, cfg.GraphicalOptions()...)
		if err != nil {
			return errors.Wrap(err, method)
		}
		printVertices(out, res)
		printSolution(out, &res.Solution)
		return nil
	}

	sol, err := solveSimplex(out, cfg, method, lp)
	if err != nil {
		return errors.Wrap(err, method)
	}
	printSolution(out, sol)
	return nil
}

func readProblem() (*model.LinearProgram, error) {
	if mpsPath != "" {
		return instance.NewReader(mpsPath).LinearProgram()
	}
	return instance.LoadProblem(problemPath)
}

func solveSimplex(out io.Writer, cfg config.Config, method string, lp *model.LinearProgram) (*model.Solution, error) {
	solver, err := simplex.ByName(method)
	if err != nil {
		return nil, err
	}
	opts := cfg.SimplexOptions()
	trace := &simplex.Trace{}
	if printTrace {
		opts = append(opts, simplex.WithTrace(trace))
	}

	sol, err := solver.Solve(lp, opts...)
	if printTrace {
		if ferr := trace.Format(out); ferr != nil {
			return nil, ferr
		}
	}
	return sol, err
}

func printProblem(w io.Writer, lp *model.LinearProgram) {
	a := lp.A()
	c := mat.NewDense(1, lp.NumCols, lp.C())
	fmt.Fprintf(w, "%s c = %v\n", lp.Sense(), mat.Formatted(c, mat.Prefix("    "), mat.Squeeze()))
	fmt.Fprintf(w, "A = %v\n", mat.Formatted(a, mat.Prefix("    "), mat.Squeeze()))
	fmt.Fprintf(w, "types = %v\n", lp.Types())
	fmt.Fprintf(w, "b = %v\n", lp.B())
}

func printVertices(w io.Writer, res *graphical.Result) {
	fmt.Fprintf(w, "vertices (%d):\n", len(res.Vertices))
	for i, v := range res.Vertices {
		mark := ""
		if i == res.Chosen {
			mark = "  <- optimum"
		}
		fmt.Fprintf(w, "  V%d = (%.4f, %.4f) -> f = %.4f%s\n", i+1, v.X, v.Y, v.Objective, mark)
	}
	if res.MaybeUnbounded {
		fmt.Fprintln(w, "warning: the feasible region may be unbounded")
	}
}

func printSolution(w io.Writer, sol *model.Solution) {
	for i, v := range sol.Values {
		fmt.Fprintf(w, "x_%d = %.6f\n", i+1, v)
	}
	fmt.Fprintf(w, "Z = %v (%s, %d iterations)\n", sol.Objective, sol.Status, sol.Iterations)
}
