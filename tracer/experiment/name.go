package experiment

import (
	"math/rand"
	"time"
)

var (
	adjectives = []string{
		"bright", "dim", "glancing", "grazing", "oblique", "steep", "shallow",
		"polished", "mirrored", "silver", "copper", "glassy", "frosted", "clear",
		"narrow", "wide", "quiet", "restless", "wandering", "patient", "bold",
		"crimson", "blue", "green", "amber", "violet", "pale", "dark", "twilight",
	}

	nouns = []string{
		"beam", "ray", "mirror", "prism", "lens", "wall", "corner", "echo",
		"ricochet", "bounce", "glint", "flare", "spark", "shadow", "lantern",
		"lighthouse", "laser", "photon", "angle", "vector", "path", "trail",
		"signal", "pane", "facet", "surface", "horizon", "arc", "chord",
	}

	rng = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// GenerateExperimentName creates a memorable experiment identifier
// in the format "adjective-noun"
func GenerateExperimentName() string {
	return adjectives[rng.Intn(len(adjectives))] + "-" + nouns[rng.Intn(len(nouns))]
}

// GenerateExperimentID creates a unique experiment identifier by combining
// the memorable name with a timestamp
func GenerateExperimentID() string {
	timestamp := time.Now().UTC().Format("20060102-150405")
	return GenerateExperimentName() + "-" + timestamp
}
