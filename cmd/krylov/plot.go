// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

var errNothingToPlot = errors.New("krylov: no positive residuals to plot")

// historyPoints converts a residual history to plot points, dropping
// non-positive values that a log axis cannot show.
func historyPoints(history []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(history))
	for i, v := range history {
		if v > 0 {
			pts = append(pts, plotter.XY{X: float64(i), Y: v})
		}
	}

	return pts
}

// savePlot draws ‖r‖ per iteration for each run on a log scale.
func savePlot(path string, runs []result) error {
	p := plot.New()
	p.Title.Text = "Residual history"
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "‖r‖"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	var lines []interface{}
	for _, r := range runs {
		pts := historyPoints(r.history)
		if len(pts) == 0 {
			continue
		}
		lines = append(lines, r.solver, pts)
	}
	if len(lines) == 0 {
		return errNothingToPlot
	}
	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return fmt.Errorf("krylov: plot: %w", err)
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("krylov: save %s: %w", path, err)
	}

	return nil
}
