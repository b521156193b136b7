package transfer

import (
	"strings"
	"testing"
)

func TestCelestialObject(t *testing.T) {
	for _, object := range []CelestialObject{Sun, Venus, Earth, Mars, Jupiter, Saturn, Uranus, Pluto} {
		fromString, err := CelestialObjectFromString(object.Name)
		if err != nil {
			t.Fatalf("empty object for %s: %s", object.Name, err)
		}
		if !object.Equals(fromString) {
			t.Fatalf("%s does not match its original object", object.Name)
		}
		fromString, err = CelestialObjectFromString(strings.ToUpper(object.Name))
		if err != nil {
			t.Fatalf("lookup is case sensitive for %s: %s", object.Name, err)
		}
		if !object.Equals(fromString) {
			t.Fatalf("%s does not match its original object", strings.ToUpper(object.Name))
		}
		if object.GM() <= 0 {
			t.Fatalf("%s has a non positive μ", object.Name)
		}
		if !strings.Contains(object.String(), object.Name) {
			t.Fatalf("unexpected string %s", object)
		}
	}
	if _, err := CelestialObjectFromString("krypton"); err == nil {
		t.Fatal("krypton did not return an error")
	}
	if Earth.GM() != 3.98600433e5 {
		t.Fatalf("unexpected Earth μ %f", Earth.GM())
	}
	if !Earth.Equals(Earth) {
		t.Fatal("Earth is not Earth")
	}
	if Earth.Equals(Mars) {
		t.Fatal("Earth is Mars")
	}
}
