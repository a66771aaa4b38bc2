package config

import (
	"fmt"

	"github.com/fogleman/pt/pt"
	"github.com/sirupsen/logrus"

	gotracer "github.com/jdginn/go-reflection-tracer/tracer"
)

func toVector(v [2]float64) pt.Vector {
	return gotracer.V(v[0], v[1])
}

// Create converts the collider description into a tracer.Collider
func (c Collider) Create() gotracer.Collider {
	points := make([]pt.Vector, len(c.Points))
	for i, p := range c.Points {
		points[i] = toVector(p)
	}
	return gotracer.Collider{
		Name:   c.Name,
		Tag:    c.Tag,
		Points: points,
		Closed: c.Closed,
	}
}

// Create builds the world: the sliced mesh if one is configured, plus every collider
func (w World) Create() (*gotracer.World, error) {
	world := gotracer.NewWorld()
	if w.Mesh != nil {
		meshWorld, err := gotracer.NewWorldFrom3MF(w.Mesh.Path, gotracer.MeshOptions{
			SliceHeight: w.Mesh.SliceHeight,
			Scale:       w.Mesh.Scale,
			Tags:        w.Mesh.Tags,
		})
		if err != nil {
			return nil, fmt.Errorf("loading mesh: %w", err)
		}
		world = meshWorld
	}
	for _, c := range w.Colliders {
		world.Add(c.Create())
	}
	return world, nil
}

// Placement is where the tracer starts
func (t Tracer) Placement() gotracer.Placement {
	return gotracer.FixedPlacement(toVector(t.Origin))
}

// Options for a tracer that logs to log
func (t Tracer) Options(log *logrus.Logger) gotracer.Options {
	return gotracer.Options{
		Params: gotracer.Params{
			Epsilon:        t.Epsilon,
			ReflectableTag: t.ReflectableTag,
		},
		Direction: toVector(t.Direction),
		Logger:    log,
	}
}

// CreateView builds the renderer for this run
func (c *ExperimentConfig) CreateView() *gotracer.View {
	return &gotracer.View{
		XSize:          c.Output.Width,
		YSize:          c.Output.Height,
		Fade:           gotracer.NewFade(c.Output.Fade),
		Margin:         10,
		ReflectableTag: c.Tracer.ReflectableTag,
	}
}
