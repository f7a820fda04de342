// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package simplot renders comparison ratio charts.
//
// A chart is a grouped bar plot: one bar group per profiled function,
// one bar per selected cell, bar height the baseline-relative ratio.
// A dashed reference line marks 1.0. Single-cell charts color each bar
// by its change class instead of by cell.
package simplot

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/energyplus-tools/simexplore/simstat"
)

// Options configure chart rendering. The zero value uses heuristic
// sizing and a title derived from the baseline.
type Options struct {
	Title string

	// Width and Height are the canvas size in centimeters. Zero
	// means size to the number of bar groups.
	Width, Height float64

	// LogScale plots ratios on a log axis.
	LogScale bool
}

func green(a uint8) color.Color { return color.RGBA{G: 0xb0, A: a} }
func red(a uint8) color.Color   { return color.RGBA{R: 0xd0, A: a} }
func gray(a uint8) color.Color  { return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: a} }

// cellPalette colors the per-cell series of a multi-cell chart.
var cellPalette = []color.Color{
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	color.RGBA{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
	color.RGBA{R: 0xe3, G: 0x77, B: 0xc2, A: 0xff},
}

// Render builds the chart for c as a plot ready to be drawn.
func Render(c *simstat.Comparison, opts Options) (*plot.Plot, error) {
	if len(c.Funcs) == 0 {
		return nil, fmt.Errorf("nothing to plot: no functions in comparison")
	}

	pl := plot.New()
	pl.Title.Text = opts.Title
	if pl.Title.Text == "" {
		pl.Title.Text = "vs " + c.Baseline.Describe()
	}
	pl.Y.Label.Text = "target time / baseline time"
	if opts.LogScale {
		pl.Y.Scale = plot.LogScale{}
		pl.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)

	if len(c.Cells) == 1 {
		if err := addChangeBars(pl, c); err != nil {
			return nil, err
		}
	} else {
		if err := addCellBars(pl, c); err != nil {
			return nil, err
		}
	}

	pl.NominalX(c.Funcs...)
	pl.X.Tick.Label.Rotation = -math.Pi / 8
	pl.X.Tick.Label.YAlign = draw.YTop
	pl.X.Tick.Label.XAlign = draw.XLeft

	// Dashed reference line at the unit ratio.
	ref := plotter.XYs{
		{X: -0.5, Y: 1},
		{X: float64(len(c.Funcs)) - 0.5, Y: 1},
	}
	line, err := plotter.NewLine(ref)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = gray(0xff)
	line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	pl.Add(line)

	// Force the unit ratio onto the graph to ensure there is a scale.
	if pl.Y.Min > 1 {
		pl.Y.Min = 1
	}
	if pl.Y.Max < 1 {
		pl.Y.Max = 1
	}
	return pl, nil
}

// addCellBars adds one bar series per selected cell, colored by cell.
func addCellBars(pl *plot.Plot, c *simstat.Comparison) error {
	n := len(c.Cells)
	w := vg.Points(30) / vg.Length(n)
	for i, cell := range c.Cells {
		values := make(plotter.Values, len(c.Funcs))
		for j, fn := range c.Funcs {
			if r, ok := c.Ratio(cell, fn); ok && r.Invalid == simstat.Valid {
				values[j] = r.Value
			}
			// Flagged or absent ratios stay 0 and draw no bar.
		}
		b, err := plotter.NewBarChart(values, w)
		if err != nil {
			return err
		}
		b.Offset = w * (vg.Length(i) - vg.Length(n-1)/2)
		clr := cellPalette[i%len(cellPalette)]
		b.Color = clr
		b.LineStyle.Width = 0
		pl.Add(b)
		label := cell.String()
		if ov, ok := c.Overall[cell]; ok && !math.IsNaN(ov) {
			label = fmt.Sprintf("%s (overall %s)", cell, simstat.FormatRatio(ov))
		}
		pl.Legend.Add(label, b)
	}
	pl.Legend.Top = true
	return nil
}

// addChangeBars adds the bars of a single-cell chart, one masked
// series per change class so improvements, regressions and unchanged
// functions get distinct colors.
func addChangeBars(pl *plot.Plot, c *simstat.Comparison) error {
	cell := c.Cells[0]
	classes := []struct {
		name   string
		change int
		clr    color.Color
	}{
		{"faster", -1, green(0xff)},
		{"slower", +1, red(0xff)},
		{"within threshold", 0, gray(0xff)},
	}
	w := vg.Points(18)
	for _, cl := range classes {
		values := make(plotter.Values, len(c.Funcs))
		any := false
		for j, fn := range c.Funcs {
			r, ok := c.Ratio(cell, fn)
			if !ok || r.Invalid != simstat.Valid {
				continue
			}
			if simstat.Change(r.Value) == cl.change {
				values[j] = r.Value
				any = true
			}
		}
		if !any {
			continue
		}
		b, err := plotter.NewBarChart(values, w)
		if err != nil {
			return err
		}
		b.Color = cl.clr
		b.LineStyle.Width = 0
		pl.Add(b)
		pl.Legend.Add(cl.name, b)
	}
	pl.Legend.Top = true
	return nil
}

// size returns the canvas size in centimeters, sizing to the bar
// count unless overridden.
func size(c *simstat.Comparison, opts Options) (width, height float64) {
	width, height = opts.Width, opts.Height
	if width == 0 {
		width = 1.5 * float64(2+len(c.Funcs))
		if width < 16 {
			width = 16
		}
	}
	if height == 0 {
		height = width / 2
		if height < 10 {
			height = 10
		}
	}
	return width, height
}

// PNG renders the chart for c and writes it to w as a PNG.
func PNG(w io.Writer, c *simstat.Comparison, opts Options) error {
	pl, err := Render(c, opts)
	if err != nil {
		return err
	}
	width, height := size(c, opts)

	// Scale down dpi to keep the raster a sane size.
	dpi := 300
	if px := float64(dpi) * width / 2.54; px > 8190 {
		dpi = int(math.Trunc(float64(dpi) * 8190 / px))
	}
	canvas := vgimg.PngCanvas{Canvas: vgimg.NewWith(
		vgimg.UseWH(vg.Length(width)*vg.Centimeter, vg.Length(height)*vg.Centimeter),
		vgimg.UseDPI(dpi),
		vgimg.UseBackgroundColor(color.White))}
	pl.Draw(draw.New(canvas))
	_, err = canvas.WriteTo(w)
	return err
}

// SVG renders the chart for c and writes it to w as an SVG.
func SVG(w io.Writer, c *simstat.Comparison, opts Options) error {
	pl, err := Render(c, opts)
	if err != nil {
		return err
	}
	width, height := size(c, opts)
	canvas := vgsvg.New(vg.Length(width)*vg.Centimeter, vg.Length(height)*vg.Centimeter)
	pl.Draw(draw.New(canvas))
	_, err = canvas.WriteTo(w)
	return err
}

// WritePNG renders the chart for c to path as a PNG.
func WritePNG(path string, c *simstat.Comparison, opts Options) error {
	return writeFile(path, c, opts, PNG)
}

// WriteSVG renders the chart for c to path as an SVG.
func WriteSVG(path string, c *simstat.Comparison, opts Options) error {
	return writeFile(path, c, opts, SVG)
}

func writeFile(path string, c *simstat.Comparison, opts Options, render func(io.Writer, *simstat.Comparison, Options) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f, c, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
