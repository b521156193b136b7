package transfer

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math"
)

// sunSyncPrecession is the nodal precession rate matching one revolution per
// tropical year, in rad/s.
const sunSyncPrecession = 1.99096871e-7

// Orbit is the persisted orbital configuration: altitudes above the central
// body surface in km, angles in degrees. The transfer pipeline only consumes
// the derived radii and the plane angles.
type Orbit struct {
	ID              string  `json:"id" xml:"id"`
	Name            string  `json:"name,omitempty" xml:"name,omitempty"`
	AltitudePerigee float64 `json:"altitude_perigee" xml:"altitude_perigee"`
	AltitudeApogee  float64 `json:"altitude_apogee" xml:"altitude_apogee"`
	Inclination     float64 `json:"inclination" xml:"inclination"`
	RAAN            float64 `json:"raan" xml:"raan"`
	ArgPerigee      float64 `json:"argp" xml:"argp"`
	TrueAnomaly     float64 `json:"nu" xml:"nu"`
	Body            string  `json:"central_body" xml:"central_body"`
}

// NewOrbit validates and creates an orbit around the given body.
func NewOrbit(altPerigee, altApogee, inclination, raan, argp, ν float64, body CelestialObject) (*Orbit, error) {
	o := &Orbit{
		ID:              newID(),
		AltitudePerigee: altPerigee,
		AltitudeApogee:  altApogee,
		Inclination:     inclination,
		RAAN:            raan,
		ArgPerigee:      argp,
		TrueAnomaly:     ν,
		Body:            body.Name,
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// NewGeostationaryOrbit returns the circular equatorial orbit whose period
// matches the Earth rotation.
func NewGeostationaryOrbit() *Orbit {
	o, _ := NewOrbit(35786, 35786, 0, 0, 0, 0, Earth)
	o.Name = "Geostationary Orbit"
	return o
}

// NewSunSynchronousOrbit returns an Earth orbit whose J2 nodal precession
// tracks the mean Sun, deriving the inclination from the provided altitudes.
func NewSunSynchronousOrbit(altPerigee, altApogee, raan, argp, ν float64) (*Orbit, error) {
	a, e := Radii2ae(altApogee+Earth.Radius, altPerigee+Earth.Radius)
	cosi := -2 * sunSyncPrecession * math.Pow(a, 3.5) * math.Pow(1-e*e, 2) /
		(3 * Earth.J2 * math.Pow(Earth.Radius, 2) * math.Sqrt(Earth.GM()))
	if math.Abs(cosi) > 1 {
		return nil, fmt.Errorf("%w: no sun synchronous inclination for altitudes (%f, %f)", ErrInvalidInput, altPerigee, altApogee)
	}
	o, err := NewOrbit(altPerigee, altApogee, Rad2deg(math.Acos(cosi)), raan, argp, ν, Earth)
	if err != nil {
		return nil, err
	}
	o.Name = "Sun Synchronous Orbit"
	return o, nil
}

// Validate checks the altitude invariants.
func (o *Orbit) Validate() error {
	if o.AltitudePerigee < 0 || o.AltitudeApogee < 0 {
		return fmt.Errorf("%w: altitudes (%f, %f) must be positive", ErrInvalidInput, o.AltitudePerigee, o.AltitudeApogee)
	}
	if o.AltitudePerigee > o.AltitudeApogee {
		return fmt.Errorf("%w: perigee altitude %f above apogee altitude %f", ErrInvalidInput, o.AltitudePerigee, o.AltitudeApogee)
	}
	if _, err := o.CentralBody(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	return nil
}

// CentralBody returns the celestial object this orbit is defined around.
// An empty body name defaults to Earth.
func (o *Orbit) CentralBody() (CelestialObject, error) {
	if o.Body == "" {
		return Earth, nil
	}
	return CelestialObjectFromString(o.Body)
}

// RadiusPerigee returns the distance from the body center to perigee in km.
func (o *Orbit) RadiusPerigee() float64 {
	body, _ := o.CentralBody()
	return o.AltitudePerigee + body.Radius
}

// RadiusApogee returns the distance from the body center to apogee in km.
func (o *Orbit) RadiusApogee() float64 {
	body, _ := o.CentralBody()
	return o.AltitudeApogee + body.Radius
}

// SemiMajorAxis returns a in km.
func (o *Orbit) SemiMajorAxis() float64 {
	a, _ := Radii2ae(o.RadiusApogee(), o.RadiusPerigee())
	return a
}

// Eccentricity returns e.
func (o *Orbit) Eccentricity() float64 {
	_, e := Radii2ae(o.RadiusApogee(), o.RadiusPerigee())
	return e
}

// Radii2ae returns the semi major axis and the eccentricity from the radii.
func Radii2ae(rA, rP float64) (a, e float64) {
	if rA < rP {
		panic("periapsis cannot be greater than apoapsis")
	}
	a = (rP + rA) / 2
	e = (rA - rP) / (rA + rP)
	return
}

// newID returns a fresh random record identifier.
func newID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
