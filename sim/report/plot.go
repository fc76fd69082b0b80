// report/plot.go
//
// Regret comparison plot: per-policy mean curves with ±1σ bands for the
// variance-aware policies. Line styles and the colorblind-friendly CUD
// palette follow the reference figures.

package report

import (
	"fmt"
	"image/color"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/varucb-sim/varucb-sim/sim"
)

// maxPlotPoints caps how many round samples each curve carries. Long
// horizons (T=1e6) are strided down; the curves are smooth enough that
// this is visually lossless.
const maxPlotPoints = 2000

type policyStyle struct {
	color  color.Color
	dashes []vg.Length
	band   bool // draw the ±1σ band (skipped for standard UCB, too wide)
}

var policyStyles = map[string]policyStyle{
	sim.PolicyKnownVariance: {
		color:  color.RGBA{R: 0x00, G: 0x72, B: 0xB2, A: 0xFF},
		dashes: []vg.Length{vg.Points(1), vg.Points(3)},
		band:   true,
	},
	sim.PolicyUnknownVariance: {
		color:  color.RGBA{R: 0x2C, G: 0xA0, B: 0x2C, A: 0xFF},
		dashes: []vg.Length{vg.Points(6), vg.Points(4)},
		band:   true,
	},
	sim.PolicyStandard: {
		color: color.RGBA{R: 0xD5, G: 0x5E, B: 0x00, A: 0xFF},
	},
}

var defaultStyle = policyStyle{color: color.Gray{Y: 0x60}}

// RegretPlot builds the cumulative-regret comparison figure for one batch.
func RegretPlot(results []sim.AggregatedRegret, title string) (*plot.Plot, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("no aggregated traces to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Rounds"
	p.Y.Label.Text = "Cumulative Regret"
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	p.Legend.Left = true

	for _, agg := range results {
		style, ok := policyStyles[agg.Policy]
		if !ok {
			style = defaultStyle
		}

		if style.band {
			band, err := plotter.NewPolygon(bandPoints(agg))
			if err != nil {
				return nil, fmt.Errorf("building band for %s: %w", agg.Policy, err)
			}
			r, g, b, _ := style.color.RGBA()
			band.Color = color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0x33}
			band.LineStyle.Width = 0
			p.Add(band)
		}

		line, err := plotter.NewLine(meanPoints(agg))
		if err != nil {
			return nil, fmt.Errorf("building line for %s: %w", agg.Policy, err)
		}
		line.Color = style.color
		line.Width = vg.Points(2)
		line.Dashes = style.dashes
		p.Add(line)
		p.Legend.Add(agg.Policy, line)
	}
	return p, nil
}

// SaveRegretPlot renders the comparison figure to path (format from the
// file extension, e.g. .png or .svg).
func SaveRegretPlot(path string, results []sim.AggregatedRegret, title string) error {
	p, err := RegretPlot(results, title)
	if err != nil {
		return err
	}
	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("saving regret plot %s: %w", path, err)
	}
	logrus.Debugf("Wrote regret plot to %s", path)
	return nil
}

// plotStride picks a sampling stride so a curve carries at most
// maxPlotPoints samples. The final round is always included.
func plotStride(rounds int) int {
	stride := rounds / maxPlotPoints
	if stride < 1 {
		stride = 1
	}
	return stride
}

func meanPoints(agg sim.AggregatedRegret) plotter.XYs {
	rounds := len(agg.Mean)
	stride := plotStride(rounds)

	var pts plotter.XYs
	for t := 0; t < rounds; t += stride {
		pts = append(pts, plotter.XY{X: float64(t), Y: agg.Mean[t]})
	}
	if last := rounds - 1; last%stride != 0 {
		pts = append(pts, plotter.XY{X: float64(last), Y: agg.Mean[last]})
	}
	return pts
}

// bandPoints traces the mean+std curve forward and the mean-std curve
// backward, closing the ±1σ polygon.
func bandPoints(agg sim.AggregatedRegret) plotter.XYs {
	rounds := len(agg.Mean)
	stride := plotStride(rounds)

	var upper, lower plotter.XYs
	for t := 0; t < rounds; t += stride {
		upper = append(upper, plotter.XY{X: float64(t), Y: agg.Mean[t] + agg.Std[t]})
		lower = append(lower, plotter.XY{X: float64(t), Y: agg.Mean[t] - agg.Std[t]})
	}
	if last := rounds - 1; last%stride != 0 {
		upper = append(upper, plotter.XY{X: float64(last), Y: agg.Mean[last] + agg.Std[last]})
		lower = append(lower, plotter.XY{X: float64(last), Y: agg.Mean[last] - agg.Std[last]})
	}

	pts := upper
	for i := len(lower) - 1; i >= 0; i-- {
		pts = append(pts, lower[i])
	}
	return pts
}
