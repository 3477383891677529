/*
Copyright © 2019 the glprofile authors.
This file is part of glprofile.

glprofile is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

glprofile is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with glprofile.  If not, see <http://www.gnu.org/licenses/>.
*/

package glprofileutil

import (
	"fmt"
	"image/color"
	"math"

	"github.com/spatialmodel/glprofile"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	black = color.RGBA{A: 255}
	red   = color.RGBA{R: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

const (
	figWidth  = 6 * vg.Inch
	figHeight = 4 * vg.Inch
)

// SavePlot draws the bed, the ice surfaces and the theoretical and modeled
// grounding lines of r and saves the figure to path. The file format
// follows the extension of path. Distances are divided by scale and
// labeled with units.
func SavePlot(path, title string, r *Result, scale float64, units string) error {
	s := r.Profile.Series(scale)
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "distance from the divide, " + units
	p.Y.Label.Text = "elevation, m"

	xmax := s.MaxX()
	yMin, yMax := 0.0, 0.0

	zero, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: xmax, Y: 0}})
	if err != nil {
		return fmt.Errorf("glprofile: plotting sea level: %v", err)
	}
	zero.LineStyle.Color = red
	zero.LineStyle.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}
	p.Add(zero)

	bedX, bedY := finite(s.X, s.Topg)
	if len(bedX) > 0 {
		bed, err := plotter.NewLine(xys(bedX, bedY))
		if err != nil {
			return fmt.Errorf("glprofile: plotting bed: %v", err)
		}
		bed.LineStyle.Color = black
		p.Add(bed)
		yMin, yMax = extend(yMin, yMax, bedY)
	}

	for _, m := range []glprofile.Masked{s.Usurf, s.Lsrf} {
		xs, ys := finite(m.Points(s.X))
		if len(xs) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(xys(xs, ys))
		if err != nil {
			return fmt.Errorf("glprofile: plotting ice surface: %v", err)
		}
		sc.GlyphStyle.Color = blue
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(2)
		p.Add(sc)
		yMin, yMax = extend(yMin, yMax, ys)
	}

	span := yMax - yMin
	if span == 0 {
		span = 1
	}
	xgModel, xgTheory := r.ModelPosition/scale, r.TheoryPosition/scale
	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs: plotter.XYs{
			{X: xgModel, Y: yMax + 0.2*span},
			{X: xgTheory, Y: yMax + 0.1*span},
		},
		Labels: []string{
			fmt.Sprintf("x_g (model) = %4.0f %s", xgModel, units),
			fmt.Sprintf("x_g (theory) = %4.0f %s", xgTheory, units),
		},
	})
	if err != nil {
		return fmt.Errorf("glprofile: plotting labels: %v", err)
	}
	labels.TextStyle[0].Color = red
	p.Add(labels)

	top := yMax + 0.25*span
	for _, v := range []struct {
		x float64
		c color.Color
	}{{xgTheory, black}, {xgModel, red}} {
		l, err := plotter.NewLine(plotter.XYs{{X: v.x, Y: yMin}, {X: v.x, Y: top}})
		if err != nil {
			return fmt.Errorf("glprofile: plotting grounding line: %v", err)
		}
		l.LineStyle.Color = v.c
		l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(l)
	}

	p.X.Min = 0
	p.X.Max = math.Max(xmax, math.Max(xgModel, xgTheory))

	if err := p.Save(figWidth, figHeight, path); err != nil {
		return fmt.Errorf("glprofile: saving figure %s: %v", path, err)
	}
	return nil
}

// finite returns the points of (x, y) where both are finite numbers.
func finite(x, y []float64) (xs, ys []float64) {
	for i := range y {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}

func xys(x, y []float64) plotter.XYs {
	o := make(plotter.XYs, len(x))
	for i := range x {
		o[i].X, o[i].Y = x[i], y[i]
	}
	return o
}

func extend(lo, hi float64, v []float64) (float64, float64) {
	for _, x := range v {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi
}
