//go:build !verify_reflections
// +build !verify_reflections

package tracer

import "github.com/fogleman/pt/pt"

// Compiled out unless built with -tags verify_reflections
func verifyReflectionLaw(incident, normal, reflected pt.Vector) {}
