// SPDX-License-Identifier: MIT

// Command krylov solves a sample symmetric system with the iterative
// solvers, compares the result with a direct LU solve and optionally plots
// the residual history.
//
// Usage:
//
//	krylov -problem hilbert -n 8 -solver both -jacobi -plot residuals.png
package main

import (
	"flag"
	"fmt"
	"os"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("krylov")

func main() {
	var (
		problem  = flag.String("problem", "hilbert", "test matrix: hilbert or growing")
		n        = flag.Int("n", 8, "system size")
		column   = flag.Int("column", 0, "right-hand side is e_column; -1 uses A·1, whose solution is all ones")
		solver   = flag.String("solver", "both", "solver: cg, symmlq or both")
		delta    = flag.Float64("delta", 1e-10, "relative residual target")
		maxit    = flag.Int("maxit", 1000, "iteration budget")
		shift    = flag.Float64("shift", 0, "SymmLQ shift: solves (A - shift·I)·x = b")
		jacobi   = flag.Bool("jacobi", false, "use the Jacobi preconditioner")
		check    = flag.Bool("check", false, "enable positivity and symmetry checks")
		plotPath = flag.String("plot", "", "write the residual history to this PNG file")
		logLevel = flag.String("log-level", "info", "log level (debug, info, warn, error)")
	)
	flag.Parse()

	level, err := logging.LevelFromString(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q, using info\n", *logLevel)
		level = logging.LevelInfo
	}
	logging.SetAllLoggers(level)

	cfg := config{
		problem: *problem,
		n:       *n,
		column:  *column,
		solver:  *solver,
		delta:   *delta,
		maxit:   *maxit,
		shift:   *shift,
		jacobi:  *jacobi,
		check:   *check,
	}
	runs, err := run(cfg)
	if err != nil {
		log.Errorf("krylov: %v", err)
		os.Exit(1)
	}
	for _, r := range runs {
		fmt.Println(r)
	}

	if *plotPath != "" {
		if err = savePlot(*plotPath, runs); err != nil {
			log.Errorf("krylov: %v", err)
			os.Exit(1)
		}
		log.Infof("residual history written to %s", *plotPath)
	}
}
