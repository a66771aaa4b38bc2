package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/jdginn/go-reflection-tracer/interact"
	gotracer "github.com/jdginn/go-reflection-tracer/tracer"
	tracerConfig "github.com/jdginn/go-reflection-tracer/tracer/config"
	tracerExperiment "github.com/jdginn/go-reflection-tracer/tracer/experiment"
)

var CLI struct {
	Verbose  bool        `short:"v" help:"log every reflection"`
	Trace    TraceCmd    `cmd:"" help:"Trace a ray through a scene and save the results"`
	Validate ValidateCmd `cmd:"" help:"Check a scene config"`
	Interact InteractCmd `cmd:"" help:"Step through a scene one tick at a time"`
}

func load(path string, log *logrus.Logger) (*tracerConfig.ExperimentConfig, *gotracer.World, error) {
	config, err := tracerConfig.LoadFromFile(path, tracerConfig.LoadOptions{
		ValidateImmediately: true,
		ResolvePaths:        true,
		MergeFiles:          true,
	})
	if err != nil {
		return nil, nil, err
	}
	world, err := config.World.Create()
	if err != nil {
		return nil, nil, err
	}
	if err := checkOrigin(config, world); err != nil {
		return nil, nil, err
	}
	log.WithFields(logrus.Fields{
		"colliders": len(world.Colliders),
		"walls":     len(world.Walls()),
	}).Info("loaded scene")
	return config, world, nil
}

// checkOrigin rejects scenes whose ray starts inside a closed collider
func checkOrigin(config *tracerConfig.ExperimentConfig, world *gotracer.World) error {
	origin := config.Tracer.Placement().Position()
	if name, inside := world.Contains(origin); inside {
		return fmt.Errorf("origin (%g, %g) starts inside collider %q", origin.X, origin.Y, name)
	}
	return nil
}

type TraceCmd struct {
	Config string `arg:"" name:"config" help:"scene config to trace"`
	Ticks  int    `help:"number of ticks to run, overriding tracer.ticks"`
}

func (c TraceCmd) Run(log *logrus.Logger) error {
	config, world, err := load(c.Config, log)
	if err != nil {
		return err
	}
	ticks := config.Tracer.Ticks
	if c.Ticks > 0 {
		ticks = c.Ticks
	}

	expDir, err := tracerExperiment.CreateExperimentDirectory()
	if err != nil {
		return fmt.Errorf("creating experiment directory: %w", err)
	}
	if err := expDir.CopyConfigFile(c.Config); err != nil {
		return fmt.Errorf("copying config file: %w", err)
	}
	if err := tracerConfig.SaveToFile(config, expDir.GetFilePath("resolved.yaml")); err != nil {
		return err
	}

	recorder := &gotracer.Recorder{}
	t := gotracer.NewTracer(world, recorder, config.Tracer.Options(log))
	start, steps := gotracer.Run(t, config.Tracer.Placement(), ticks)

	reflections := 0
	for _, s := range steps {
		if s.Reflected {
			reflections++
		}
	}
	end := t.State()
	log.WithFields(logrus.Fields{
		"ticks":       ticks,
		"reflections": reflections,
		"origin":      end.Origin,
		"direction":   end.Direction,
	}).Info("trace finished")

	img := config.CreateView().Render(world, recorder.Lines, t.Tick())
	if err := gotracer.SavePNG(expDir.GetFilePath("trace.png"), img); err != nil {
		return err
	}
	plotImg, err := gotracer.PlotPath(gotracer.Path(start, steps), config.Output.Width, config.Output.Height)
	if err != nil {
		return fmt.Errorf("plotting path: %w", err)
	}
	if err := gotracer.SavePNG(expDir.GetFilePath("path.png"), plotImg); err != nil {
		return err
	}
	if err := gotracer.SaveAnnotations(expDir.GetFilePath("annotations.json"), world, config.Tracer.ReflectableTag, start, steps); err != nil {
		return err
	}
	log.WithField("dir", expDir.Path).Info("results saved")
	return nil
}

type ValidateCmd struct {
	Config string `arg:"" name:"config" help:"scene config to check"`
}

func (c ValidateCmd) Run(log *logrus.Logger) error {
	config, err := tracerConfig.LoadFromFile(c.Config, tracerConfig.LoadOptions{
		ResolvePaths: true,
	})
	if err != nil {
		return err
	}
	if errs := config.Validate(); len(errs) > 0 {
		fmt.Print(tracerConfig.FormatValidationErrors(errs))
		return fmt.Errorf("%d validation errors", len(errs))
	}
	if err := config.LoadAndMerge(); err != nil {
		return err
	}
	world, err := config.World.Create()
	if err != nil {
		return err
	}
	if err := checkOrigin(config, world); err != nil {
		return err
	}
	log.Info("config is valid")
	return nil
}

type InteractCmd struct {
	Config string `arg:"" name:"config" help:"scene config to step through"`
	Out    string `default:"out.png" help:"image rewritten after every step"`
}

func (c InteractCmd) Run(log *logrus.Logger) error {
	config, world, err := load(c.Config, log)
	if err != nil {
		return err
	}
	// The terminal belongs to the stepper now
	log.SetLevel(logrus.WarnLevel)
	recorder := &gotracer.Recorder{}
	return interact.Interact(interact.Session{
		World:     world,
		Tracer:    gotracer.NewTracer(world, recorder, config.Tracer.Options(log)),
		Recorder:  recorder,
		View:      config.CreateView(),
		Placement: config.Tracer.Placement(),
		Out:       c.Out,
	})
}

func main() {
	ctx := kong.Parse(&CLI)

	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true}
	log.Level = logrus.InfoLevel
	if CLI.Verbose {
		log.Level = logrus.DebugLevel
	}

	if err := ctx.Run(log); err != nil {
		log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
