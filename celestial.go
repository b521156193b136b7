package transfer

import (
	"fmt"
	"strings"
)

// CelestialObject defines a celestial body used as the center of a transfer.
// Only the static constants needed by two-body work are kept: no ephemerides.
type CelestialObject struct {
	Name   string
	Radius float64 // equatorial radius, km
	μ      float64 // gravitational parameter, km^3/s^2
	J2     float64 // second zonal harmonic
}

// GM returns μ (which is unexported because it's a lowercase letter)
func (c CelestialObject) GM() float64 {
	return c.μ
}

// String implements the Stringer interface.
func (c CelestialObject) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided celestial object is the same.
func (c *CelestialObject) Equals(b CelestialObject) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.μ == b.μ && c.J2 == b.J2
}

// CelestialObjectFromString returns the object from its name.
func CelestialObjectFromString(name string) (CelestialObject, error) {
	switch strings.ToLower(name) {
	case "sun":
		return Sun, nil
	case "venus":
		return Venus, nil
	case "earth":
		return Earth, nil
	case "mars":
		return Mars, nil
	case "jupiter":
		return Jupiter, nil
	case "saturn":
		return Saturn, nil
	case "uranus":
		return Uranus, nil
	case "pluto":
		return Pluto, nil
	default:
		return CelestialObject{}, fmt.Errorf("undefined body '%s'", name)
	}
}

/* Definitions */

// Sun is our closest star.
var Sun = CelestialObject{"Sun", 695700, 1.32712440017987e11, 0}

// Venus is poisonous.
var Venus = CelestialObject{"Venus", 6051.8, 3.24858599e5, 0.000027}

// Earth is home.
var Earth = CelestialObject{"Earth", 6378.1363, 3.98600433e5, 1082.6269e-6}

// Mars is the vacation place.
var Mars = CelestialObject{"Mars", 3396.19, 4.28283100e4, 1964e-6}

// Jupiter is big.
var Jupiter = CelestialObject{"Jupiter", 71492.0, 1.266865361e8, 0.01475}

// Saturn floats and that's really cool.
var Saturn = CelestialObject{"Saturn", 60268.0, 3.7931208e7, 0.01645}

// Uranus is no joke.
var Uranus = CelestialObject{"Uranus", 25559.0, 5.7939513e6, 0.012}

// Pluto is not a planet and had that down ranking coming.
var Pluto = CelestialObject{"Pluto", 1151.0, 9e2, 0}
