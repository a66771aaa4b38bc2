package tracer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fogleman/pt/pt"
	"github.com/stretchr/testify/assert"
)

func TestPath(t *testing.T) {
	start := RayState{Origin: V(0, 0), Direction: V(1, 0)}
	steps := []Step{
		{Tick: 1, HasHit: true, Reflected: true, Hit: Hit{Point: V(5, 0)}},
		{Tick: 2},
		{Tick: 3, HasHit: true, Reflected: true, Hit: Hit{Point: V(0, 3)}},
		{Tick: 4, HasHit: true, Hit: Hit{Point: V(-4, 3), Tag: "Wall"}},
		{Tick: 5, HasHit: true, Hit: Hit{Point: V(-4, 3), Tag: "Wall"}},
	}
	assert.Equal(t, []pt.Vector{V(0, 0), V(5, 0), V(0, 3), V(-4, 3)}, Path(start, steps))
}

func TestRecorderMaxLines(t *testing.T) {
	assert := assert.New(t)
	rec := &Recorder{MaxLines: 2}
	for i := 1; i <= 3; i++ {
		rec.BeginTick(i)
		rec.DrawRay(V(0, 0), V(float64(i), 0), IncidentColor)
	}
	if assert.Len(rec.Lines, 2) {
		assert.Equal(2, rec.Lines[0].Tick)
		assert.Equal(V(3, 0), rec.Lines[1].End)
	}
	rec.Reset()
	assert.Empty(rec.Lines)
}

func TestSaveAnnotations(t *testing.T) {
	assert := assert.New(t)
	world := NewWorld(
		Box("room", ReflectableTag, V(-10, -10), V(10, 10)),
		Collider{Name: "door", Tag: "Wall", Points: []pt.Vector{V(-2, 9), V(2, 9)}},
	)
	tr := NewTracer(world, nil, Options{})
	start, steps := Run(tr, FixedPlacement(V(1, 0)), 3)

	out := filepath.Join(t.TempDir(), "annotations.json")
	assert.NoError(SaveAnnotations(out, world, "", start, steps))

	data, err := os.ReadFile(out)
	assert.NoError(err)
	var a Annotations
	assert.NoError(json.Unmarshal(data, &a))

	// four box walls, the door and the ray
	assert.Len(a.Paths, 6)
	assert.Equal("ray", a.Paths[5].Name)
	assert.Len(a.Steps, 3)
	assert.Equal(len(Path(start, steps)), len(a.Points))
	assert.Equal("bounce_0", a.Points[0].Name)
	if assert.NotNil(a.Steps[0].Hit) {
		assert.Equal("room", a.Steps[0].Collider)
		assert.True(a.Steps[0].Reflected)
	}
}

func TestBuildAnnotationsTag(t *testing.T) {
	assert := assert.New(t)
	world := NewWorld(
		Collider{Name: "mirror", Tag: "Mirror", Points: []pt.Vector{V(5, -5), V(5, 5)}},
		Collider{Name: "wall", Tag: ReflectableTag, Points: []pt.Vector{V(-5, -5), V(-5, 5)}},
	)
	colors := func(a Annotations) map[string]string {
		out := map[string]string{}
		for _, p := range a.Paths {
			out[p.Name] = p.Color
		}
		return out
	}

	got := colors(BuildAnnotations(world, "Mirror", RayState{}, nil))
	assert.Equal("#78A0E6", got["mirror"])
	assert.Equal("#282828", got["wall"])

	got = colors(BuildAnnotations(world, "", RayState{}, nil))
	assert.Equal("#282828", got["mirror"])
	assert.Equal("#78A0E6", got["wall"])
}
