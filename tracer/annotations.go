package tracer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fogleman/pt/pt"
)

// JSON schema types
type PointJSON struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Name string  `json:"name,omitempty"`
}

type PathJSON struct {
	Points    []PointJSON `json:"points"`
	Name      string      `json:"name,omitempty"`
	Color     string      `json:"color,omitempty"`
	Thickness float64     `json:"thickness,omitempty"`
}

type StepJSON struct {
	Tick      int        `json:"tick"`
	Reflected bool       `json:"reflected"`
	Collider  string     `json:"collider,omitempty"`
	Tag       string     `json:"tag,omitempty"`
	Hit       *PointJSON `json:"hit,omitempty"`
	Origin    PointJSON  `json:"origin"`
	Direction PointJSON  `json:"direction"`
}

type Annotations struct {
	Points []PointJSON `json:"points,omitempty"`
	Paths  []PathJSON  `json:"paths,omitempty"`
	Steps  []StepJSON  `json:"steps,omitempty"`
}

func PointToJSON(v pt.Vector) PointJSON {
	return PointJSON{X: v.X, Y: v.Y}
}

// BuildAnnotations collects the walls of world, the bounce points and the per-tick history.
// Walls tagged reflectableTag (ReflectableTag if empty) are colored as mirrors.
func BuildAnnotations(world *World, reflectableTag string, start RayState, steps []Step) Annotations {
	if reflectableTag == "" {
		reflectableTag = ReflectableTag
	}
	a := Annotations{}
	for _, c := range world.Colliders {
		color := "#282828"
		if c.Tag == reflectableTag {
			color = "#78A0E6"
		}
		for _, e := range c.Edges() {
			a.Paths = append(a.Paths, PathJSON{
				Points:    []PointJSON{PointToJSON(e.A), PointToJSON(e.B)},
				Name:      c.Name,
				Color:     color,
				Thickness: 3,
			})
		}
	}

	path := Path(start, steps)
	ray := PathJSON{Name: "ray", Color: "#0000FF", Thickness: 1}
	for i, p := range path {
		point := PointToJSON(p)
		point.Name = fmt.Sprintf("bounce_%d", i)
		a.Points = append(a.Points, point)
		ray.Points = append(ray.Points, PointToJSON(p))
	}
	a.Paths = append(a.Paths, ray)

	for _, s := range steps {
		sj := StepJSON{
			Tick:      s.Tick,
			Reflected: s.Reflected,
			Origin:    PointToJSON(s.After.Origin),
			Direction: PointToJSON(s.After.Direction),
		}
		if s.HasHit {
			hit := PointToJSON(s.Hit.Point)
			sj.Hit = &hit
			sj.Collider = s.Hit.Collider
			sj.Tag = s.Hit.Tag
		}
		a.Steps = append(a.Steps, sj)
	}
	return a
}

// SaveAnnotations writes the annotations for a run to a JSON file
func SaveAnnotations(filename string, world *World, reflectableTag string, start RayState, steps []Step) error {
	data, err := json.MarshalIndent(BuildAnnotations(world, reflectableTag, start, steps), "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling annotations: %w", err)
	}
	return os.WriteFile(filename, data, 0644)
}
