package transfer

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gonum/floats"
)

const (
	eccentricityε = 5e-5 // 0.00005
	velocityε     = 1e-6 // in km/s
	distanceε     = 2e1  // 20 km
)

// ErrInvalidInput is returned when a solver or sampler input is out of its
// domain (non-positive μ or radius, fewer than two sample points).
var ErrInvalidInput = errors.New("invalid input")

// Method defines the type of orbital transfer.
type Method uint8

const (
	// MethodHohmann is the two-impulse transfer between coplanar circular orbits.
	MethodHohmann Method = iota + 1
)

func (m Method) String() string {
	switch m {
	case MethodHohmann:
		return "hohmann"
	default:
		panic("unknown transfer method")
	}
}

// RequiresInclinationChange returns whether this method includes a plane change.
func (m Method) RequiresInclinationChange() bool {
	switch m {
	case MethodHohmann:
		return false
	default:
		panic("unknown transfer method")
	}
}

// MethodFromString returns the method from its name.
func MethodFromString(name string) (Method, error) {
	switch name {
	case "hohmann":
		return MethodHohmann, nil
	default:
		return 0, fmt.Errorf("%w: unsupported transfer method '%s'", ErrInvalidInput, name)
	}
}

// Solve computes the transfer between two circular coplanar orbits of radii
// r1 and r2 (in km, center to center) about a body of gravitational parameter
// μ (in km^3/s^2).
func (m Method) Solve(μ, r1, r2 float64) (Result, error) {
	switch m {
	case MethodHohmann:
		return Hohmann(μ, r1, r2)
	default:
		return Result{}, fmt.Errorf("%w: unsupported transfer method %d", ErrInvalidInput, m)
	}
}

// Geometry defines the shape of the transfer ellipse.
type Geometry struct {
	SemiMajorAxis float64 // a, in km
	Eccentricity  float64 // e, in [0,1)
}

// Result holds the parameters of a solved two-impulse transfer.
// Both Δv are signed: transferring outward yields positive impulses, inward
// yields negative ones (retrograde burns). Use TotalCost for the mission cost.
type Result struct {
	ΔV1      float64 // departure impulse, km/s
	ΔV2      float64 // arrival impulse, km/s
	TOF      float64 // time of flight, seconds
	Geometry Geometry
	Method   Method
}

// TotalCost returns the summed magnitude of both impulses in km/s.
func (r Result) TotalCost() float64 {
	return math.Abs(r.ΔV1) + math.Abs(r.ΔV2)
}

// Degenerate returns whether this is a zero-cost transfer between two orbits
// of the same radius. This is a valid result, not a fault.
func (r Result) Degenerate() bool {
	return floats.EqualWithinAbs(r.Geometry.Eccentricity, 0, eccentricityε)
}

// TimeOfFlight returns the time of flight as a duration.
func (r Result) TimeOfFlight() time.Duration {
	// The time package does not trivially handle fractions of a second, so let's
	// compute this in a convoluted way...
	duration, _ := time.ParseDuration(fmt.Sprintf("%.6fs", r.TOF))
	return duration
}

// Hohmann computes a Hohmann transfer between two circular coplanar orbits.
// The departure impulse is vPeriapsis - v1 and the arrival impulse v2 -
// vApoapsis, so swapping r1 and r2 negates both. The time of flight is half
// the transfer ellipse period.
func Hohmann(μ, r1, r2 float64) (Result, error) {
	if μ <= 0 {
		return Result{}, fmt.Errorf("%w: μ=%f must be strictly positive", ErrInvalidInput, μ)
	}
	if r1 <= 0 || r2 <= 0 {
		return Result{}, fmt.Errorf("%w: radii (%f, %f) must be strictly positive", ErrInvalidInput, r1, r2)
	}
	aTransfer := 0.5 * (r1 + r2)
	vDeparture := math.Sqrt(μ * (2/r1 - 1/aTransfer))
	vArrival := math.Sqrt(μ * (2/r2 - 1/aTransfer))
	v1 := math.Sqrt(μ / r1)
	v2 := math.Sqrt(μ / r2)
	return Result{
		ΔV1: vDeparture - v1,
		ΔV2: v2 - vArrival,
		TOF: math.Pi * math.Sqrt(math.Pow(aTransfer, 3)/μ),
		Geometry: Geometry{
			SemiMajorAxis: aTransfer,
			Eccentricity:  math.Abs(r2-r1) / (r2 + r1),
		},
		Method: MethodHohmann,
	}, nil
}
