package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ob6160/dropbydrop/config"
	"github.com/ob6160/dropbydrop/core"
	"github.com/ob6160/dropbydrop/erosion"
	"github.com/ob6160/dropbydrop/generators"
	"github.com/ob6160/dropbydrop/heightio"
	"github.com/ob6160/dropbydrop/terrain"
	"github.com/xlab/closer"
)

func main() {
	cfg := config.DefaultConfig()

	flag.StringVar(&cfg.Generator, "generator", cfg.Generator, "heightmap generator: noise or midpoint")
	flag.IntVar(&cfg.Heightmap.Size, "size", cfg.Heightmap.Size, "heightmap side length in cells")
	flag.Int64Var(&cfg.Heightmap.Seed, "seed", cfg.Heightmap.Seed, "generator seed")
	flag.BoolVar(&cfg.Heightmap.RandomizeSeed, "random-seed", cfg.Heightmap.RandomizeSeed, "draw a fresh noise seed")
	flag.UintVar(&cfg.Heightmap.NumOctaves, "octaves", cfg.Heightmap.NumOctaves, "noise octaves")
	flag.Float64Var(&cfg.Heightmap.Persistence, "persistence", cfg.Heightmap.Persistence, "amplitude multiplier per octave")
	flag.Float64Var(&cfg.Heightmap.Lacunarity, "lacunarity", cfg.Heightmap.Lacunarity, "frequency multiplier per octave")
	flag.Float64Var(&cfg.Heightmap.InitialScale, "scale", cfg.Heightmap.InitialScale, "initial noise frequency")
	flag.Float64Var(&cfg.Heightmap.MaxHeightDifference, "max-height", cfg.Heightmap.MaxHeightDifference, "height of the highest cell, at most 1")
	flag.Func("basis", "noise basis: perlin or opensimplex", func(s string) (err error) {
		cfg.Heightmap.Basis, err = generators.ParseBasis(s)
		return err
	})
	flag.Float64Var(&cfg.Midpoint.Spread, "spread", cfg.Midpoint.Spread, "midpoint displacement initial spread")
	flag.Float64Var(&cfg.Midpoint.Reduce, "reduce", cfg.Midpoint.Reduce, "midpoint displacement spread reduction per level")

	var preset string
	flag.StringVar(&preset, "preset", cfg.Preset, "erosion preset: "+strings.Join(erosion.PresetNames(), ", "))
	flag.Int64Var(&cfg.Erosion.ErosionCycles, "cycles", cfg.Erosion.ErosionCycles, "number of droplets")
	flag.Float64Var(&cfg.Erosion.Inertia, "inertia", cfg.Erosion.Inertia, "droplet inertia [0, 1]")
	flag.Float64Var(&cfg.Erosion.Capacity, "capacity", cfg.Erosion.Capacity, "sediment capacity factor")
	flag.Float64Var(&cfg.Erosion.MinimalSlope, "min-slope", cfg.Erosion.MinimalSlope, "minimal slope used for capacity")
	flag.Float64Var(&cfg.Erosion.DepositionSpeed, "deposition", cfg.Erosion.DepositionSpeed, "deposition speed [0, 1]")
	flag.Float64Var(&cfg.Erosion.ErosionSpeed, "erosion", cfg.Erosion.ErosionSpeed, "erosion speed [0, 1]")
	flag.Float64Var(&cfg.Erosion.Gravity, "gravity", cfg.Erosion.Gravity, "gravity")
	flag.Float64Var(&cfg.Erosion.Evaporation, "evaporation", cfg.Erosion.Evaporation, "water evaporation per step [0, 1]")
	flag.IntVar(&cfg.Erosion.MaxPath, "max-path", cfg.Erosion.MaxPath, "maximum droplet steps")
	flag.IntVar(&cfg.Erosion.ErosionRadius, "radius", cfg.Erosion.ErosionRadius, "erosion brush radius in cells")
	flag.Int64Var(&cfg.Erosion.Seed, "erosion-seed", cfg.Erosion.Seed, "droplet spawn seed")
	flag.BoolVar(&cfg.Erosion.WindBias, "bias", cfg.Erosion.WindBias, "bias droplet direction around the wind direction")
	flag.Func("wind", "wind direction: random, east, north-east, ...", func(s string) (err error) {
		cfg.Erosion.WindDirection, err = erosion.ParseWindDirection(s)
		return err
	})

	flag.StringVar(&cfg.Input, "input", cfg.Input, "PNG heightmap to erode instead of generating (any go-getter source)")
	flag.StringVar(&cfg.FetchDir, "fetch-dir", cfg.FetchDir, "download directory for -input (default: a temporary directory)")
	flag.StringVar(&cfg.Output, "out", cfg.Output, "output heightmap (.png, .tif, .r16)")
	flag.StringVar(&cfg.Preview, "preview", cfg.Preview, "optional 8-bit PNG preview")
	flag.StringVar(&cfg.Mesh, "mesh", cfg.Mesh, "optional Wavefront OBJ mesh")
	flag.Float64Var(&cfg.MeshScale, "mesh-scale", cfg.MeshScale, "mesh distance between cells")
	flag.Float64Var(&cfg.MeshHeight, "mesh-height", cfg.MeshHeight, "mesh height multiplier")
	flag.IntVar(&cfg.Downsample, "downsample", cfg.Downsample, "average cells in blocks of this size before export")
	flag.TextVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	// One -size/-seed pair drives whichever generator is selected.
	cfg.Midpoint.Size = cfg.Heightmap.Size
	cfg.Midpoint.Seed = cfg.Heightmap.Seed
	cfg.Midpoint.MaxHeightDifference = cfg.Heightmap.MaxHeightDifference
	if err := config.ApplyPreset(cfg, preset, explicit); err != nil {
		log.Error("apply preset", "error", err)
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithCancel(context.Background())
	doneC := make(chan struct{})
	closer.Bind(func() {
		cancel()
		<-doneC
	})

	err := run(ctx, cfg, log)
	close(doneC)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("run failed", "error", err)
		closer.Exit(1)
	}
	closer.Close()
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	grid, err := source(ctx, cfg, log)
	if err != nil {
		return err
	}

	var start = time.Now()
	var lastReport time.Time
	sim := erosion.NewSimulator(cfg.Erosion,
		erosion.WithLogger(log),
		erosion.WithProgress(func(done, total int64) {
			if time.Since(lastReport) < time.Second && done != total {
				return
			}
			lastReport = time.Now()
			log.Info("eroding", "drops", done, "total", total,
				"percent", fmt.Sprintf("%.0f", float64(done)/float64(total)*100))
		}))
	stats, simErr := sim.Simulate(ctx, grid)
	log.Info("erosion done", "drops", stats.Drops, "steps", stats.Steps,
		"eroded", stats.Eroded, "deposited", stats.Deposited, "discarded", stats.Discarded,
		"elapsed", time.Since(start).Round(time.Millisecond))
	if simErr != nil {
		// Keep what was eroded before the interrupt.
		log.Warn("erosion interrupted, saving partial result", "error", simErr)
	}

	if err := export(cfg, grid, log); err != nil {
		return err
	}
	return simErr
}

func source(ctx context.Context, cfg *config.Config, log *slog.Logger) (*terrain.Grid, error) {
	if cfg.Input != "" {
		dir := cfg.FetchDir
		if dir == "" {
			tmp, err := os.MkdirTemp("", "dropbydrop")
			if err != nil {
				return nil, err
			}
			defer os.RemoveAll(tmp)
			dir = tmp
		}
		path, err := heightio.Fetch(ctx, cfg.Input, dir)
		if err != nil {
			return nil, err
		}
		grid, err := heightio.Load(path)
		if err != nil {
			return nil, err
		}
		log.Info("heightmap loaded", "source", cfg.Input, "size", grid.Size)
		return grid, nil
	}

	var gen generators.Generator
	switch cfg.Generator {
	case config.GeneratorMidpoint:
		gen = generators.NewMidPointDisplacement(cfg.Midpoint)
	default:
		noise := generators.NewNoiseGenerator(cfg.Heightmap)
		defer func() { log.Info("noise seed", "seed", noise.LastSeed) }()
		gen = noise
	}
	start := time.Now()
	grid := gen.Generate()
	log.Info("heightmap generated", "generator", cfg.Generator, "size", grid.Size,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return grid, nil
}

func export(cfg *config.Config, grid *terrain.Grid, log *slog.Logger) error {
	out, err := grid.Downsample(cfg.Downsample)
	if err != nil {
		return fmt.Errorf("downsample by %d: %w", cfg.Downsample, err)
	}

	if err := heightio.Save(cfg.Output, out); err != nil {
		return err
	}
	log.Info("heightmap written", "path", cfg.Output, "size", out.Size)

	if cfg.Preview != "" {
		if err := heightio.SavePreview(cfg.Preview, out); err != nil {
			return err
		}
		log.Info("preview written", "path", cfg.Preview)
	}

	if cfg.Mesh != "" {
		mesh := core.NewPlane(out, float32(cfg.MeshScale), float32(cfg.MeshHeight)).Construct()
		f, err := os.Create(cfg.Mesh)
		if err != nil {
			return err
		}
		if err := mesh.WriteOBJ(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.Info("mesh written", "path", cfg.Mesh, "vertices", mesh.VertexCount())
	}
	return nil
}
