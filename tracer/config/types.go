package config

// ExperimentConfig represents the complete configuration for a reflection tracing run
type ExperimentConfig struct {
	Metadata Metadata `yaml:"metadata"`
	Tracer   Tracer   `yaml:"tracer"`
	World    World    `yaml:"world"`
	Output   Output   `yaml:"output"`
}

type Metadata struct {
	Timestamp string `yaml:"timestamp"` // YYYY-MM-DD HH:MM:SS in UTC
	GitCommit string `yaml:"git_commit"`
}

type Tracer struct {
	Origin         [2]float64 `yaml:"origin"`
	Direction      [2]float64 `yaml:"direction,omitempty"`
	Epsilon        float64    `yaml:"epsilon,omitempty"`
	ReflectableTag string     `yaml:"reflectable_tag,omitempty"`
	Ticks          int        `yaml:"ticks"`
}

type World struct {
	Colliders []Collider `yaml:"colliders,omitempty"`
	FromFile  string     `yaml:"from_file,omitempty"`
	Mesh      *Mesh      `yaml:"mesh,omitempty"`
}

type Collider struct {
	Name   string       `yaml:"name" json:"name"`
	Tag    string       `yaml:"tag" json:"tag"`
	Points [][2]float64 `yaml:"points" json:"points"`
	Closed bool         `yaml:"closed,omitempty" json:"closed,omitempty"`
}

type Mesh struct {
	Path        string            `yaml:"path"`
	SliceHeight float64           `yaml:"slice_height"`
	Scale       float64           `yaml:"scale,omitempty"` // model units per world unit
	Tags        map[string]string `yaml:"tags,omitempty"`  // object name -> tag
}

type Output struct {
	Width  int                 `yaml:"width,omitempty"`
	Height int                 `yaml:"height,omitempty"`
	Fade   map[float64]float64 `yaml:"fade,omitempty"` // line age in ticks -> alpha
}

const DefaultOutputSize = 800

// ApplyDefaults fills in every optional field left empty
func (c *ExperimentConfig) ApplyDefaults() {
	if c.Tracer.Direction == [2]float64{} {
		c.Tracer.Direction = [2]float64{10, -10}
	}
	if c.Tracer.Epsilon == 0 {
		c.Tracer.Epsilon = 0.01
	}
	if c.Tracer.ReflectableTag == "" {
		c.Tracer.ReflectableTag = "Reflectable"
	}
	if c.Output.Width == 0 {
		c.Output.Width = DefaultOutputSize
	}
	if c.Output.Height == 0 {
		c.Output.Height = DefaultOutputSize
	}
	if c.World.Mesh != nil && c.World.Mesh.Scale == 0 {
		c.World.Mesh.Scale = 1
	}
}
