//go:build verify_reflections
// +build verify_reflections

package tracer

import (
	"fmt"

	"github.com/fogleman/pt/pt"
	"gonum.org/v1/gonum/floats/scalar"
)

const (
	lengthEpsilon = 1e-9
	dotEpsilon    = 1e-9
)

func init() {
	fmt.Println("Reflection verification enabled.")
}

func verifyReflectionLaw(incident, normal, reflected pt.Vector) {
	// Reflection must not change the length of the ray
	if !scalar.EqualWithinAbsOrRel(incident.Length(), reflected.Length(), lengthEpsilon, lengthEpsilon) {
		panic(fmt.Sprintf("reflection changed length: |%v| != |%v|", incident, reflected))
	}
	// Angle of incidence equals angle of reflection
	if !scalar.EqualWithinAbsOrRel(reflected.Dot(normal), -incident.Dot(normal), dotEpsilon, dotEpsilon) {
		panic(fmt.Sprintf("angle of incidence != angle of reflection for normal %v", normal))
	}
}
