package pipeline

import (
	"spectral-workbench/internal/grid"

	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the samples of a grid for the status line.
type Stats struct {
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

func ComputeStats(g *grid.Grid) Stats {
	if g == nil || len(g.Data) == 0 {
		return Stats{}
	}

	lo, hi := g.MinMax()
	mean, std := stat.MeanStdDev(g.Data, nil)
	if len(g.Data) == 1 {
		std = 0
	}
	return Stats{Min: lo, Max: hi, Mean: mean, StdDev: std}
}
