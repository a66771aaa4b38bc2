package config

import (
	"fmt"
	"sort"
	"strings"
)

// Validation helper functions
func validatePositive(field string, value float64) []ValidationError {
	if value <= 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must be positive",
		}}
	}
	return nil
}

func validateNonNegative(field string, value float64) []ValidationError {
	if value < 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must be non-negative",
		}}
	}
	return nil
}

func validateInRange(field string, value, min, max float64) []ValidationError {
	if value < min || value > max {
		return []ValidationError{{
			Field:   field,
			Message: fmt.Sprintf("must be between %v and %v", min, max),
		}}
	}
	return nil
}

func validateNonZeroVector(field string, vec [2]float64) []ValidationError {
	if vec[0] == 0 && vec[1] == 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must not be the zero vector",
		}}
	}
	return nil
}

// ValidationError represents a structured validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FormatValidationErrors groups errors by their top level section
func FormatValidationErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Validation Errors:\n")

	categories := map[string][]ValidationError{}
	for _, err := range errs {
		category := strings.Split(err.Field, ".")[0]
		categories[category] = append(categories[category], err)
	}
	names := make([]string, 0, len(categories))
	for category := range categories {
		names = append(names, category)
	}
	sort.Strings(names)

	for _, category := range names {
		b.WriteString(fmt.Sprintf("\n%s:\n", strings.ToUpper(category)))
		for _, err := range categories[category] {
			// Remove category prefix from field for cleaner display
			field := strings.TrimPrefix(err.Field, category+".")
			if field == category {
				field = "general"
			}
			b.WriteString(fmt.Sprintf("  - %s: %s\n", field, err.Message))
		}
	}

	return b.String()
}

// Validate performs validation on the entire configuration
func (c *ExperimentConfig) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, c.Tracer.Validate()...)
	errors = append(errors, c.World.Validate()...)
	errors = append(errors, c.Output.Validate()...)
	return errors
}

func (t *Tracer) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, validateNonZeroVector("tracer.direction", t.Direction)...)
	errors = append(errors, validatePositive("tracer.epsilon", t.Epsilon)...)
	errors = append(errors, validateNonNegative("tracer.ticks", float64(t.Ticks))...)
	if t.ReflectableTag == "" {
		errors = append(errors, ValidationError{
			Field:   "tracer.reflectable_tag",
			Message: "tag is required",
		})
	}
	return errors
}

// Validate checks the world. Relative file paths are checked against the working directory.
func (w *World) Validate() []ValidationError {
	var errors []ValidationError
	resolver := NewPathResolver(".")

	if len(w.Colliders) == 0 && w.FromFile == "" && w.Mesh == nil {
		errors = append(errors, ValidationError{
			Field:   "world",
			Message: "one of colliders, from_file or mesh must be specified",
		})
		return errors
	}

	if w.FromFile != "" && !resolver.FileExists(w.FromFile) {
		errors = append(errors, ValidationError{
			Field:   "world.from_file",
			Message: fmt.Sprintf("file not found: %s", w.FromFile),
		})
	}

	for i, c := range w.Colliders {
		field := fmt.Sprintf("world.colliders.%d", i)
		if c.Name != "" {
			field = fmt.Sprintf("world.colliders.%s", c.Name)
		}
		if c.Tag == "" {
			errors = append(errors, ValidationError{
				Field:   field + ".tag",
				Message: "tag is required",
			})
		}
		if len(c.Points) < 2 {
			errors = append(errors, ValidationError{
				Field:   field + ".points",
				Message: "at least two points are required",
			})
		} else if c.Closed && len(c.Points) < 3 {
			errors = append(errors, ValidationError{
				Field:   field + ".points",
				Message: "a closed collider needs at least three points",
			})
		}
	}

	if w.Mesh != nil {
		if w.Mesh.Path == "" {
			errors = append(errors, ValidationError{
				Field:   "world.mesh.path",
				Message: "mesh path is required",
			})
		} else if !resolver.FileExists(w.Mesh.Path) {
			errors = append(errors, ValidationError{
				Field:   "world.mesh.path",
				Message: fmt.Sprintf("file not found: %s", w.Mesh.Path),
			})
		}
		errors = append(errors, validatePositive("world.mesh.scale", w.Mesh.Scale)...)
	}

	return errors
}

func (o *Output) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, validatePositive("output.width", float64(o.Width))...)
	errors = append(errors, validatePositive("output.height", float64(o.Height))...)
	for age, alpha := range o.Fade {
		errors = append(errors, validateNonNegative("output.fade", age)...)
		errors = append(errors, validateInRange("output.fade", alpha, 0, 1)...)
	}
	return errors
}
