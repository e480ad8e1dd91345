package export

import (
	"errors"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ConvergencePlot renders the best-cost history of a tuning run to an image
// file (format chosen from the extension, e.g. .png or .svg).
func ConvergencePlot(path string, history []float64) error {
	if len(history) == 0 {
		return errors.New("export: empty cost history")
	}

	p := plot.New()
	p.Title.Text = "Best cost per iteration"
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "robust cost"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(history))
	for i, c := range history {
		pts[i].X = float64(i)
		pts[i].Y = c
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
