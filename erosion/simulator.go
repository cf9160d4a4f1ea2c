package erosion

import (
	"context"
	"log/slog"
	"math"
	"math/rand"

	"github.com/ob6160/dropbydrop/terrain"
)

// Simulator runs droplet erosion over a grid. Drops are simulated one after
// another; each observes the grid exactly as the previous one left it.
type Simulator struct {
	settings Settings
	rng      *rand.Rand
	wind     *WindSampler
	log      *slog.Logger
	progress func(done, total int64)
	ws       *WorkingSet
}

type Option func(*Simulator)

// WithRand replaces the random stream seeded from Settings.Seed.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulator) {
		s.rng = rng
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Simulator) {
		s.log = log
	}
}

// WithProgress is called roughly every percent of the run and once at the end.
func WithProgress(fn func(done, total int64)) Option {
	return func(s *Simulator) {
		s.progress = fn
	}
}

// Stats totals a run. Discarded is sediment lost with terminated drops.
type Stats struct {
	Drops     int64
	Steps     int64
	Eroded    float64
	Deposited float64
	Discarded float64
}

func NewSimulator(settings Settings, opts ...Option) *Simulator {
	var s = &Simulator{
		settings: settings,
		log:      slog.New(slog.DiscardHandler),
		ws:       NewWorkingSet(settings.ErosionRadius),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(settings.Seed))
	}
	s.wind = NewWindSampler(s.rng)
	return s
}

// RunErosion erodes grid in place with a fresh simulator.
func RunErosion(grid *terrain.Grid, settings Settings) {
	_, _ = NewSimulator(settings).Simulate(context.Background(), grid)
}

// Simulate runs ErosionCycles drops over grid. The context is checked before
// every drop; on cancellation the drops finished so far stay applied and the
// context error is returned.
func (s *Simulator) Simulate(ctx context.Context, grid *terrain.Grid) (Stats, error) {
	var stats Stats
	var total = s.settings.ErosionCycles
	var every = total / 100
	if every < 1 {
		every = 1
	}

	s.log.Debug("erosion started", "cycles", total, "size", grid.Size,
		"radius", s.settings.ErosionRadius, "wind", s.settings.WindDirection)

	for i := int64(0); i < total; i++ {
		if err := ctx.Err(); err != nil {
			s.log.Debug("erosion cancelled", "drops", stats.Drops)
			return stats, err
		}

		var drop = s.SpawnDrop(grid.Size)
		result := s.RunDrop(grid, &drop)

		stats.Drops++
		stats.Steps += int64(result.Steps)
		stats.Eroded += result.Eroded
		stats.Deposited += result.Deposited
		stats.Discarded += result.Discarded

		if s.progress != nil && (i+1)%every == 0 {
			s.progress(i+1, total)
		}
	}
	if s.progress != nil && total%every != 0 {
		s.progress(total, total)
	}

	s.log.Debug("erosion finished", "drops", stats.Drops, "steps", stats.Steps,
		"eroded", stats.Eroded, "deposited", stats.Deposited, "discarded", stats.Discarded)
	return stats, nil
}

// RunDrop moves drop across grid for at most MaxPath steps, eroding and
// depositing as it goes.
func (s *Simulator) RunDrop(grid *terrain.Grid, drop *Drop) DropResult {
	var cfg = &s.settings
	var size = grid.Size
	var heights = grid.Heights
	var sediment float64
	var result = DropResult{Termination: PathExhausted}

	for step := 0; step < cfg.MaxPath; step++ {
		if !WithinBounds(drop.Position, size) {
			result.Termination = OutOfBounds
			break
		}

		cellOld, offsetOld := split(drop.Position)
		cornersOld := CornerIndices(cellOld.X, cellOld.Y, size)
		heightsOld := cornersOld.Heights(heights)

		// Blend the previous heading with the downhill direction.
		gradient := heightsOld.Gradient(offsetOld)
		drop.Direction = drop.Direction.Mul(cfg.Inertia).Sub(gradient.Mul(1 - cfg.Inertia))
		if drop.Direction.Dot(drop.Direction) <= 0 {
			result.Termination = Stalled
			break
		}
		drop.Direction = drop.Direction.Normalize()

		drop.Position = drop.Position.Add(drop.Direction)
		result.Steps++
		if !WithinBounds(drop.Position, size) {
			result.Termination = OutOfBounds
			break
		}

		s.ws.Compute(drop.Position, cfg.ErosionRadius, size)

		cellNew, offsetNew := split(drop.Position)
		heightOld := heightsOld.Bilinear(offsetOld)
		heightNew := CornerIndices(cellNew.X, cellNew.Y, size).Heights(heights).Bilinear(offsetNew)
		delta := heightNew - heightOld

		capacity := math.Max(-delta, cfg.MinimalSlope) * drop.Velocity * drop.Water * cfg.Capacity

		if delta > 0 || sediment > capacity {
			var deposit float64
			if delta > 0 {
				// Fill the pit we climbed out of, as far as the load allows.
				deposit = math.Min(delta, sediment)
			} else {
				deposit = (sediment - capacity) * cfg.DepositionSpeed
			}
			sediment -= deposit
			result.Deposited += deposit
			cornersOld.Deposit(heights, offsetOld, deposit)
		} else {
			amount := math.Min((capacity-sediment)*cfg.ErosionSpeed, -delta)
			for i, p := range s.ws.Points {
				index := p.ToIndex(size)
				// Never dig below zero.
				eroded := math.Min(heights[index], s.ws.Weights[i]*amount)
				heights[index] -= eroded
				sediment += eroded
				result.Eroded += eroded
			}
		}

		drop.Velocity = math.Sqrt(math.Max(0, drop.Velocity*drop.Velocity-delta*cfg.Gravity))
		drop.Water *= 1 - cfg.Evaporation
	}

	result.Discarded = sediment
	return result
}
