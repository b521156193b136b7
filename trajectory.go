package transfer

import (
	"fmt"
	"math"
	"time"
)

// Point is a planar sample of the transfer arc, expressed in km in the
// perifocal frame: focus at the origin, periapsis along +X.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SampleArc discretizes the transfer arc into n points at equally spaced true
// anomalies over [0, π], periapsis and apoapsis included. It is a pure
// function of its inputs and always returns exactly n points on success.
func SampleArc(geom Geometry, n int) ([]Point, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points to describe an arc, got %d", ErrInvalidInput, n)
	}
	if geom.Eccentricity < 0 || geom.Eccentricity >= 1 {
		return nil, fmt.Errorf("%w: eccentricity %f not in [0,1)", ErrInvalidInput, geom.Eccentricity)
	}
	p := geom.SemiMajorAxis * (1 - geom.Eccentricity*geom.Eccentricity)
	points := make([]Point, n)
	Δν := math.Pi / float64(n-1)
	for k := 0; k < n; k++ {
		sν, cν := math.Sincos(float64(k) * Δν)
		r := p / (1 + geom.Eccentricity*cν)
		points[k] = Point{X: r * cν, Y: r * sν}
	}
	return points, nil
}

// TimeSincePeriapsis returns the elapsed seconds from periapsis passage to
// the given true anomaly ν (in radians), via the eccentric anomaly and
// Kepler's equation. Closed form, no iteration needed in this direction.
func TimeSincePeriapsis(geom Geometry, μ, ν float64) float64 {
	sν, cν := math.Sincos(ν)
	E := math.Atan2(math.Sqrt(1-geom.Eccentricity*geom.Eccentricity)*sν, geom.Eccentricity+cν)
	if E < 0 {
		E += 2 * math.Pi
	}
	M := E - geom.Eccentricity*math.Sin(E)
	return M * math.Sqrt(math.Pow(geom.SemiMajorAxis, 3)/μ)
}

// State is a timestamped Cartesian state on the transfer arc. Position is in
// km and velocity in km/s, both in the frame of the central body.
type State struct {
	Epoch    time.Time `json:"time" xml:"time"`
	Position []float64 `json:"position" xml:"position>c"`
	Velocity []float64 `json:"velocity" xml:"velocity>c"`
}

// SampleStates discretizes the transfer arc into n timestamped 3D states.
// The plane of the arc is set by the inclination i, RAAN Ω and argument of
// periapsis ω (all in radians), rotating each perifocal sample into the
// body-centered frame. Timestamps start at epoch, taken as the periapsis
// passage of the transfer ellipse.
func SampleStates(geom Geometry, μ, i, Ω, ω float64, epoch time.Time, n int) ([]State, error) {
	if μ <= 0 {
		return nil, fmt.Errorf("%w: μ=%f must be strictly positive", ErrInvalidInput, μ)
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points to describe an arc, got %d", ErrInvalidInput, n)
	}
	if geom.Eccentricity < 0 || geom.Eccentricity >= 1 {
		return nil, fmt.Errorf("%w: eccentricity %f not in [0,1)", ErrInvalidInput, geom.Eccentricity)
	}
	p := geom.SemiMajorAxis * (1 - geom.Eccentricity*geom.Eccentricity)
	vFact := math.Sqrt(μ / p)
	states := make([]State, n)
	Δν := math.Pi / float64(n-1)
	for k := 0; k < n; k++ {
		ν := float64(k) * Δν
		sν, cν := math.Sincos(ν)
		r := p / (1 + geom.Eccentricity*cν)
		R := PQW2ECI(i, ω, Ω, []float64{r * cν, r * sν, 0})
		V := PQW2ECI(i, ω, Ω, []float64{-vFact * sν, vFact * (geom.Eccentricity + cν), 0})
		dt, _ := time.ParseDuration(fmt.Sprintf("%.6fs", TimeSincePeriapsis(geom, μ, ν)))
		states[k] = State{Epoch: epoch.Add(dt), Position: R, Velocity: V}
	}
	return states, nil
}

// Trajectory is the persisted record of a solved transfer: both impulses, the
// time of flight and the discretized arc. It is created once per solve and
// never mutated afterwards.
type Trajectory struct {
	ID             string  `json:"id" xml:"id"`
	Name           string  `json:"name,omitempty" xml:"name,omitempty"`
	InitialOrbitID string  `json:"initial_orbit_id" xml:"initial_orbit_id"`
	TargetOrbitID  string  `json:"target_orbit_id" xml:"target_orbit_id"`
	ΔV1            float64 `json:"delta_v1" xml:"delta_v1"`
	ΔV2            float64 `json:"delta_v2" xml:"delta_v2"`
	TimeOfFlight   float64 `json:"time_of_flight" xml:"time_of_flight"`
	Method         Method  `json:"transfer_type_id" xml:"transfer_type_id"`
	Points         []State `json:"points" xml:"points>point"`
}

// NewTrajectory wraps a solver result and its sampled states into a record
// ready for persistence.
func NewTrajectory(res Result, points []State, initialOrbitID, targetOrbitID string) *Trajectory {
	return &Trajectory{
		ID:             newID(),
		Name:           fmt.Sprintf("%s transfer", res.Method),
		InitialOrbitID: initialOrbitID,
		TargetOrbitID:  targetOrbitID,
		ΔV1:            res.ΔV1,
		ΔV2:            res.ΔV2,
		TimeOfFlight:   res.TOF,
		Method:         res.Method,
		Points:         points,
	}
}

// TotalCost returns the summed magnitude of both impulses in km/s.
func (t *Trajectory) TotalCost() float64 {
	return math.Abs(t.ΔV1) + math.Abs(t.ΔV2)
}
