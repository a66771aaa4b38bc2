package tracer

import (
	"image/color"

	"github.com/fogleman/pt/pt"
	"github.com/sirupsen/logrus"
)

const (
	// ReflectableTag marks colliders that bounce the ray. Anything else stops it.
	ReflectableTag = "Reflectable"
	// Epsilon is the distance, in world units, that a new origin is pushed off the
	// surface it just left, along the outgoing direction.
	Epsilon = 0.01
)

// DefaultDirection is the direction a tracer starts with: a 45 degree diagonal scaled by 10.
//
// Its magnitude only affects how long the debug rays are drawn.
var DefaultDirection = V(10, -10)

var (
	IncidentColor  = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	NormalColor    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	ReflectedColor = color.RGBA{R: 0, G: 0, B: 255, A: 255}
)

// RayState is the ray the tracer currently casts
type RayState struct {
	Origin    pt.Vector
	Direction pt.Vector
}

// NewRayState anchors a ray at origin, pointing in DefaultDirection
func NewRayState(origin pt.Vector) RayState {
	return RayState{Origin: Flatten(origin), Direction: DefaultDirection}
}

// Hit describes the nearest obstruction along a ray
type Hit struct {
	Point pt.Vector
	// Unit normal of the surface at Point
	Normal pt.Vector
	Tag    string
	// Name of the collider that was hit, if known
	Collider string
	// Distance from the ray origin to Point
	Distance float64
}

// Environment answers ray queries against the scene
type Environment interface {
	// Raycast returns the nearest obstruction along the ray from origin in direction.
	Raycast(origin, direction pt.Vector) (Hit, bool)
}

// Drawer receives diagnostic rays. It never feeds back into tracing.
type Drawer interface {
	DrawRay(start, offset pt.Vector, c color.Color)
}

// Placement supplies the starting position of a tracer
type Placement interface {
	Position() pt.Vector
}

// FixedPlacement is a Placement at a constant position
type FixedPlacement pt.Vector

func (p FixedPlacement) Position() pt.Vector {
	return pt.Vector(p)
}

// Step records what happened during a single tick
type Step struct {
	Tick      int
	Before    RayState
	After     RayState
	Hit       Hit
	HasHit    bool
	Reflected bool
}

// Params tune a single Advance
type Params struct {
	Epsilon        float64
	ReflectableTag string
}

// DefaultParams are the values used when a tracer is not told otherwise
var DefaultParams = Params{Epsilon: Epsilon, ReflectableTag: ReflectableTag}

type tickBeginner interface {
	BeginTick(tick int)
}

type noDraw struct{}

func (noDraw) DrawRay(pt.Vector, pt.Vector, color.Color) {}

// Advance casts state's ray into env once and returns the resulting state.
//
// If nothing reflectable is hit the returned state is identical to state. draw may be nil.
func Advance(state RayState, env Environment, draw Drawer, params Params) (RayState, Step) {
	step := Step{Before: state, After: state}
	if env == nil {
		return state, step
	}
	if draw == nil {
		draw = noDraw{}
	}

	hit, ok := env.Raycast(state.Origin, state.Direction)
	draw.DrawRay(state.Origin, state.Direction, IncidentColor)
	if !ok {
		return state, step
	}
	step.Hit = hit
	step.HasHit = true
	if hit.Tag != params.ReflectableTag || hit.Normal.Length() == 0 {
		return state, step
	}

	draw.DrawRay(hit.Point, hit.Normal, NormalColor)
	direction := Flatten(Reflect(state.Direction, hit.Normal))
	verifyReflectionLaw(state.Direction, hit.Normal, direction)
	draw.DrawRay(hit.Point, direction, ReflectedColor)

	next := RayState{
		Origin:    Flatten(hit.Point.Add(direction.Normalize().MulScalar(params.Epsilon))),
		Direction: direction,
	}
	step.After = next
	step.Reflected = true
	return next, step
}

// Options configure a Tracer
type Options struct {
	Params
	// Initial direction. Defaults to DefaultDirection.
	Direction pt.Vector
	Logger    *logrus.Logger
}

// Tracer drives Advance from an external tick: Start once, then Update every frame.
type Tracer struct {
	env     Environment
	draw    Drawer
	opts    Options
	log     *logrus.Logger
	state   RayState
	started bool
	tick    int
}

// NewTracer builds a tracer casting into env. draw may be nil.
// A non-positive Epsilon is replaced by the default.
func NewTracer(env Environment, draw Drawer, opts Options) *Tracer {
	if opts.Epsilon <= 0 {
		opts.Epsilon = Epsilon
	}
	if opts.ReflectableTag == "" {
		opts.ReflectableTag = ReflectableTag
	}
	if opts.Direction == (pt.Vector{}) {
		opts.Direction = DefaultDirection
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Tracer{env: env, draw: draw, opts: opts, log: log}
}

// Start anchors the ray at the placement's position. It resets any previous run.
func (t *Tracer) Start(p Placement) {
	t.state = RayState{Origin: Flatten(p.Position()), Direction: Flatten(t.opts.Direction)}
	t.started = true
	t.tick = 0
	t.log.WithFields(logrus.Fields{
		"origin":    t.state.Origin,
		"direction": t.state.Direction,
	}).Debug("tracer started")
}

// Update advances the ray by one tick. It does nothing before Start.
func (t *Tracer) Update() Step {
	if !t.started {
		return Step{}
	}
	t.tick++
	if b, ok := t.draw.(tickBeginner); ok {
		b.BeginTick(t.tick)
	}
	next, step := Advance(t.state, t.env, t.draw, t.opts.Params)
	step.Tick = t.tick
	if step.Reflected {
		t.log.WithFields(logrus.Fields{
			"tick":     t.tick,
			"collider": step.Hit.Collider,
			"point":    step.Hit.Point,
		}).Debug("reflected")
	}
	t.state = next
	return step
}

// State returns the current ray
func (t *Tracer) State() RayState {
	return t.state
}

// Tick returns the number of updates since Start
func (t *Tracer) Tick() int {
	return t.tick
}

// Run starts t at p and updates it ticks times, returning the starting ray and every step
func Run(t *Tracer, p Placement, ticks int) (RayState, []Step) {
	t.Start(p)
	start := t.State()
	steps := make([]Step, 0, ticks)
	for i := 0; i < ticks; i++ {
		steps = append(steps, t.Update())
	}
	return start, steps
}
