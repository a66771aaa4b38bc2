package tracer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/fogleman/gg"
	"github.com/fogleman/pt/pt"
	lin "github.com/sgreben/piecewiselinear"
)

var (
	BackgroundColor = color.White
	WallColor       = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	ReflectableWall = color.RGBA{R: 120, G: 160, B: 230, A: 255}
)

// NewFade builds the curve that maps the age of a line (in ticks) to its opacity.
//
// points maps age to alpha in [0, 1]. An empty map draws every line fully opaque.
func NewFade(points map[float64]float64) lin.Function {
	ages := make([]float64, 0, len(points))
	for age := range points {
		ages = append(ages, age)
	}
	sort.Float64s(ages)
	alphas := make([]float64, len(ages))
	for i, age := range ages {
		alphas[i] = points[age]
	}
	return lin.Function{X: ages, Y: alphas}
}

// View renders a World and the rays drawn into it
type View struct {
	XSize int
	YSize int
	Fade  lin.Function
	// Pixels kept clear around the scene
	Margin float64
	// Walls carrying this tag are drawn in ReflectableWall. Defaults to ReflectableTag.
	ReflectableTag string
	// These cache the values needed to scale and translate from the scene to the requested image size
	scale      float64
	xTranslate float64
	yTranslate float64
}

func (view *View) alpha(age float64) float64 {
	f := view.Fade
	if len(f.X) == 0 {
		return 1
	}
	if len(f.X) == 1 {
		return math.Max(0, math.Min(1, f.Y[0]))
	}
	age = math.Max(f.X[0], math.Min(age, f.X[len(f.X)-1]))
	return math.Max(0, math.Min(1, f.At(age)))
}

func (view *View) computeScaleAndTranslation(world *World, lines []Line) {
	XMin, XMax, YMin, YMax, ok := world.BoundingBox()
	for _, l := range lines {
		for _, p := range []pt.Vector{l.Start, l.End} {
			if !ok {
				XMin, XMax, YMin, YMax = p.X, p.X, p.Y, p.Y
				ok = true
				continue
			}
			XMin, XMax = math.Min(XMin, p.X), math.Max(XMax, p.X)
			YMin, YMax = math.Min(YMin, p.Y), math.Max(YMax, p.Y)
		}
	}
	view.xTranslate = -XMin
	view.yTranslate = -YMin
	w := float64(view.XSize) - 2*view.Margin
	h := float64(view.YSize) - 2*view.Margin
	XScale := w / math.Max(XMax-XMin, 1e-9)
	YScale := h / math.Max(YMax-YMin, 1e-9)
	view.scale = math.Min(XScale, YScale)
}

// toPixel flips Y so that +Y points up in the image
func (view *View) toPixel(p pt.Vector) (float64, float64) {
	x := (p.X+view.xTranslate)*view.scale + view.Margin
	y := (p.Y+view.yTranslate)*view.scale + view.Margin
	return x, float64(view.YSize) - y
}

// Render draws the walls of world and every line. now is the current tick, used for fading.
func (view *View) Render(world *World, lines []Line, now int) image.Image {
	view.computeScaleAndTranslation(world, lines)
	c := gg.NewContext(view.XSize, view.YSize)
	c.SetColor(BackgroundColor)
	c.Clear()

	tag := view.ReflectableTag
	if tag == "" {
		tag = ReflectableTag
	}
	c.SetLineWidth(3)
	for _, col := range world.Colliders {
		if col.Tag == tag {
			c.SetColor(ReflectableWall)
		} else {
			c.SetColor(WallColor)
		}
		for _, e := range col.Edges() {
			x1, y1 := view.toPixel(e.A)
			x2, y2 := view.toPixel(e.B)
			c.DrawLine(x1, y1, x2, y2)
			c.Stroke()
		}
	}

	c.SetLineWidth(1)
	for _, l := range lines {
		a := view.alpha(float64(now - l.Tick))
		if a <= 0 {
			continue
		}
		r, g, b, _ := l.Color.RGBA()
		c.SetRGBA(float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff, a)
		x1, y1 := view.toPixel(l.Start)
		x2, y2 := view.toPixel(l.End)
		c.DrawLine(x1, y1, x2, y2)
		c.Stroke()
	}
	return c.Image()
}

// PlotPath plots the points the ray touched, in order
func PlotPath(points []pt.Vector, width, height int) (image.Image, error) {
	p := plot.New()
	p.Title.Text = "Ray path"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	xys := make(plotter.XYs, len(points))
	for i, v := range points {
		xys[i].X = v.X
		xys[i].Y = v.Y
	}
	line, scatter, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, err
	}
	line.Color = ReflectedColor
	p.Add(line, scatter)

	w, err := p.WriterTo(vg.Points(float64(width)), vg.Points(float64(height)), "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

func SavePNG(filename string, i image.Image) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}
	defer f.Close()
	return png.Encode(f, i)
}
