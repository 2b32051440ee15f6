package report

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
)

// Layout constants for the figure grid: the connectivity panel occupies a
// fixed-width left column; the five distance mini-plot pairs share the rest.
const (
	connPanelWidth = 350
	histPlotHeight = 60
	panelMargin    = 12
)

var (
	frameGray = color.RGBA{160, 160, 160, 255}
)

// RenderPNG rasterizes the figure deterministically. White background,
// dark foreground, no text: the CSV export carries the labeled numbers.
func (f *Figure) RenderPNG() ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	if len(f.Rows) > 0 {
		rowHeight := f.Height / len(f.Rows)
		for i, row := range f.Rows {
			f.renderRow(img, row, i*rowHeight, rowHeight)
		}
	}

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f *Figure) renderRow(img *image.RGBA, row SpeciesRow, top, height int) {
	connRect := image.Rect(panelMargin, top+panelMargin, connPanelWidth-panelMargin, top+height-panelMargin)
	renderConnectivityPanel(img, connRect, row.Connectivity)

	if len(row.Distance) == 0 {
		return
	}
	colWidth := (f.Width - connPanelWidth) / len(row.Distance)
	for i, panel := range row.Distance {
		left := connPanelWidth + i*colWidth
		histRect := image.Rect(left+panelMargin, top+panelMargin, left+colWidth-panelMargin, top+panelMargin+histPlotHeight)
		distRect := image.Rect(left+panelMargin, top+panelMargin+histPlotHeight+panelMargin, left+colWidth-panelMargin, top+height-panelMargin)
		renderHistogram(img, histRect, panel)
		renderDistanceCurve(img, distRect, panel)
	}
}

func renderConnectivityPanel(img *image.RGBA, rect image.Rectangle, panel ConnectivityPanel) {
	drawFrame(img, rect)
	if len(panel.Estimates) == 0 || panel.YMax <= 0 {
		return
	}
	area := plotArea{rect: rect, xMin: -0.5, xMax: float64(len(panel.Estimates)) - 0.5, yMin: 0, yMax: panel.YMax}
	for i, est := range panel.Estimates {
		c := color.RGBA{0, 0, 0, 255}
		if i < len(panel.Colors) {
			c = panel.Colors[i]
		}
		x := float64(i)
		area.vline(img, x, est.Lower, est.Upper, c)
		area.marker(img, x, est.Point, c)
	}
}

func renderHistogram(img *image.RGBA, rect image.Rectangle, panel DistancePanel) {
	drawFrame(img, rect)
	if len(panel.HistCounts) == 0 || len(panel.HistEdges) != len(panel.HistCounts)+1 {
		return
	}
	yMax := panel.HistYMax
	if yMax <= 0 {
		for _, c := range panel.HistCounts {
			if float64(c) > yMax {
				yMax = float64(c)
			}
		}
		if yMax == 0 {
			yMax = 1
		}
	}
	area := plotArea{rect: rect, xMin: 0, xMax: panel.XMax, yMin: 0, yMax: yMax}
	fill := panel.Color
	fill.A = 80
	for i, count := range panel.HistCounts {
		if count == 0 {
			continue
		}
		p0 := area.point(panel.HistEdges[i], float64(count))
		p1 := area.point(panel.HistEdges[i+1], 0)
		bar := image.Rect(p0.X, p0.Y, p1.X, p1.Y).Canon().Intersect(rect)
		draw.Draw(img, bar, &image.Uniform{fill}, image.Point{}, draw.Over)
	}
}

func renderDistanceCurve(img *image.RGBA, rect image.Rectangle, panel DistancePanel) {
	drawFrame(img, rect)
	if panel.Curve.Len() == 0 || panel.XMax <= 0 || panel.YMax <= 0 {
		return
	}
	area := plotArea{rect: rect, xMin: 0, xMax: panel.XMax, yMin: 0, yMax: panel.YMax}
	band := panel.Color
	band.A = 60
	area.band(img, panel.Curve.X, panel.Curve.Lower, panel.Curve.Upper, band)
	area.polyline(img, panel.Curve.X, panel.Curve.Prob, panel.Color)
}

// plotArea maps data coordinates onto a pixel rectangle with y increasing
// upward.
type plotArea struct {
	rect       image.Rectangle
	xMin, xMax float64
	yMin, yMax float64
}

func (a plotArea) point(x, y float64) image.Point {
	fx := (x - a.xMin) / (a.xMax - a.xMin)
	fy := (y - a.yMin) / (a.yMax - a.yMin)
	px := a.rect.Min.X + int(math.Round(fx*float64(a.rect.Dx()-1)))
	py := a.rect.Max.Y - 1 - int(math.Round(fy*float64(a.rect.Dy()-1)))
	return image.Point{X: px, Y: py}
}

func (a plotArea) setPixel(img *image.RGBA, p image.Point, c color.RGBA) {
	if p.In(a.rect) {
		img.SetRGBA(p.X, p.Y, c)
	}
}

// marker draws a small filled disc at the data point.
func (a plotArea) marker(img *image.RGBA, x, y float64, c color.RGBA) {
	center := a.point(x, y)
	const r = 3
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				a.setPixel(img, image.Point{center.X + dx, center.Y + dy}, c)
			}
		}
	}
}

// vline draws a vertical segment between two data y values at data x.
func (a plotArea) vline(img *image.RGBA, x, y0, y1 float64, c color.RGBA) {
	p0 := a.point(x, y0)
	p1 := a.point(x, y1)
	if p0.Y > p1.Y {
		p0, p1 = p1, p0
	}
	for y := p0.Y; y <= p1.Y; y++ {
		a.setPixel(img, image.Point{p0.X, y}, c)
	}
}

// polyline connects consecutive finite samples; NaN samples break the line.
func (a plotArea) polyline(img *image.RGBA, xs, ys []float64, c color.RGBA) {
	var prev image.Point
	havePrev := false
	for i := range xs {
		if math.IsNaN(ys[i]) {
			havePrev = false
			continue
		}
		p := a.point(xs[i], ys[i])
		if havePrev {
			drawSegment(a, img, prev, p, c)
		}
		prev = p
		havePrev = true
	}
}

// band fills the region between lower and upper, interpolating linearly per
// pixel column and skipping NaN spans.
func (a plotArea) band(img *image.RGBA, xs, lower, upper []float64, c color.RGBA) {
	for i := 0; i+1 < len(xs); i++ {
		if math.IsNaN(lower[i]) || math.IsNaN(upper[i]) || math.IsNaN(lower[i+1]) || math.IsNaN(upper[i+1]) {
			continue
		}
		x0 := a.point(xs[i], 0).X
		x1 := a.point(xs[i+1], 0).X
		if x1 <= x0 {
			continue
		}
		for px := x0; px <= x1; px++ {
			t := float64(px-x0) / float64(x1-x0)
			lo := lower[i] + t*(lower[i+1]-lower[i])
			hi := upper[i] + t*(upper[i+1]-upper[i])
			p0 := a.point(a.xMin, lo)
			p1 := a.point(a.xMin, hi)
			if p0.Y < p1.Y {
				p0, p1 = p1, p0
			}
			for py := p1.Y; py <= p0.Y; py++ {
				pt := image.Point{px, py}
				if pt.In(a.rect) {
					blend(img, pt, c)
				}
			}
		}
	}
}

// drawSegment rasterizes a line segment with a simple DDA walk.
func drawSegment(a plotArea, img *image.RGBA, p0, p1 image.Point, c color.RGBA) {
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		a.setPixel(img, p0, c)
		return
	}
	for s := 0; s <= steps; s++ {
		x := p0.X + dx*s/steps
		y := p0.Y + dy*s/steps
		a.setPixel(img, image.Point{x, y}, c)
	}
}

func drawFrame(img *image.RGBA, rect image.Rectangle) {
	for x := rect.Min.X; x < rect.Max.X; x++ {
		img.SetRGBA(x, rect.Min.Y, frameGray)
		img.SetRGBA(x, rect.Max.Y-1, frameGray)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		img.SetRGBA(rect.Min.X, y, frameGray)
		img.SetRGBA(rect.Max.X-1, y, frameGray)
	}
}

// blend composites c over the destination pixel using its alpha.
func blend(img *image.RGBA, p image.Point, c color.RGBA) {
	dst := img.RGBAAt(p.X, p.Y)
	a := int(c.A)
	mix := func(s, d uint8) uint8 {
		return uint8((int(s)*a + int(d)*(255-a)) / 255)
	}
	img.SetRGBA(p.X, p.Y, color.RGBA{mix(c.R, dst.R), mix(c.G, dst.G), mix(c.B, dst.B), 255})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
