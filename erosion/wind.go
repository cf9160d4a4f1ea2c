package erosion

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

type WindDirection uint8

const (
	WindRandom WindDirection = iota
	WindEast
	WindNorthEast
	WindNorth
	WindNorthWest
	WindWest
	WindSouthWest
	WindSouth
	WindSouthEast
)

// Standard deviation, in degrees, of the biased wind angle.
const windSigma = 35.0

// Angles grow clockwise with the origin in the top-left corner, so south
// points down the +y axis.
var windMeanAngles = map[WindDirection]float64{
	WindEast:      0,
	WindSouthEast: 45,
	WindSouth:     90,
	WindSouthWest: 135,
	WindWest:      180,
	WindNorthWest: 225,
	WindNorth:     270,
	WindNorthEast: 315,
}

var windNames = [...]string{
	WindRandom:    "random",
	WindEast:      "east",
	WindNorthEast: "north-east",
	WindNorth:     "north",
	WindNorthWest: "north-west",
	WindWest:      "west",
	WindSouthWest: "south-west",
	WindSouth:     "south",
	WindSouthEast: "south-east",
}

func (d WindDirection) String() string {
	if int(d) < len(windNames) {
		return windNames[d]
	}
	return fmt.Sprintf("WindDirection(%d)", uint8(d))
}

func ParseWindDirection(s string) (WindDirection, error) {
	var name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for d, n := range windNames {
		if n == name {
			return WindDirection(d), nil
		}
	}
	return WindRandom, fmt.Errorf("%w: %q", ErrUnknownWindDirection, s)
}

// TryGetMeanAngleDegrees reports the deterministic mean angle of the wind in
// [0, 360). Random wind has none.
func TryGetMeanAngleDegrees(settings Settings) (float64, bool) {
	mu, ok := windMeanAngles[settings.WindDirection]
	if !ok {
		return 0, false
	}
	return wrapDegrees(mu), true
}

func UnitVectorFromAngle(degrees float64) mgl64.Vec2 {
	rad := mgl64.DegToRad(degrees)
	return mgl64.Vec2{math.Cos(rad), math.Sin(rad)}
}

// WindSampler draws the initial direction of each drop.
type WindSampler struct {
	rng *rand.Rand
}

func NewWindSampler(rng *rand.Rand) *WindSampler {
	return &WindSampler{rng: rng}
}

// Sample returns a direction whose length is a uniform random strength in
// [0, 1).
func (w *WindSampler) Sample(settings Settings) mgl64.Vec2 {
	mu, ok := windMeanAngles[settings.WindDirection]
	if !ok {
		mu = w.rng.Float64() * 360
	}

	var angle = mu
	if settings.WindBias {
		angle = wrapDegrees(mu + windSigma*w.gaussian())
	}

	strength := w.rng.Float64()
	return UnitVectorFromAngle(angle).Mul(strength)
}

// gaussian is a standard normal sample from the Box-Muller transform.
func (w *WindSampler) gaussian() float64 {
	// 1 - [0, 1) keeps both uniforms in (0, 1] so the log stays finite.
	u1 := 1 - w.rng.Float64()
	u2 := 1 - w.rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

func wrapDegrees(angle float64) float64 {
	angle = math.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	// -tiny + 360 rounds to 360.
	if angle >= 360 {
		angle -= 360
	}
	return angle
}
