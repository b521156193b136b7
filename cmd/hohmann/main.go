package main

import (
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	transfer "github.com/Rouxelp/Orbital-Transfer-Backend"
)

// This tool solves a single transfer, either from a scenario TOML file or
// from the command line flags, and optionally persists the result.

const defaultScenario = "~~unset~~"

var (
	scenario  string
	bodyName  string
	altInit   float64
	altTarget float64
	points    int
	exportFmt string
	dataDir   string
	xyzvFile  string
	verbose   bool
)

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "transfer scenario TOML file")
	flag.StringVar(&bodyName, "body", "Earth", "central body")
	flag.Float64Var(&altInit, "from", 0, "initial circular orbit altitude (km)")
	flag.Float64Var(&altTarget, "to", 0, "target circular orbit altitude (km)")
	flag.IntVar(&points, "points", 100, "number of sampled trajectory points")
	flag.StringVar(&exportFmt, "export", "", "persist the orbits and trajectory (json, csv or xml)")
	flag.StringVar(&dataDir, "data", "./data", "data directory for exports")
	flag.StringVar(&xyzvFile, "xyzv", "", "write the sampled states to this interpolated states file")
	flag.BoolVar(&verbose, "verbose", false, "really verbose (esp. for configuration)")
}

func main() {
	flag.Parse()
	inclination, raan, argPeri := 0.0, 0.0, 0.0
	if scenario != defaultScenario {
		scenario = strings.Replace(scenario, ".toml", "", 1)
		viper.AddConfigPath(".")
		viper.SetConfigName(scenario)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatalf("./%s.toml: Error %s", scenario, err)
		}
		bodyName = viper.GetString("transfer.body")
		altInit = viper.GetFloat64("initial.altitude")
		altTarget = viper.GetFloat64("target.altitude")
		inclination = viper.GetFloat64("initial.inclination")
		raan = viper.GetFloat64("initial.RAAN")
		argPeri = viper.GetFloat64("initial.argPeri")
		if pts := viper.GetInt("transfer.points"); pts > 0 {
			points = pts
		}
		if verbose {
			log.Printf("[conf] %s: %f km -> %f km about %s\n", scenario, altInit, altTarget, bodyName)
		}
	}
	if altInit == altTarget {
		log.Println("WARNING: initial and target altitudes are equal, this transfer is free")
	}

	body, err := transfer.CelestialObjectFromString(bodyName)
	if err != nil {
		log.Fatalf("could not understand body `%s`: %s", bodyName, err)
	}
	initOrbit, err := transfer.NewOrbit(altInit, altInit, inclination, raan, argPeri, 0, body)
	if err != nil {
		log.Fatalf("initial orbit: %s", err)
	}
	tgtOrbit, err := transfer.NewOrbit(altTarget, altTarget, inclination, raan, argPeri, 0, body)
	if err != nil {
		log.Fatalf("target orbit: %s", err)
	}

	res, err := transfer.MethodHohmann.Solve(body.GM(), initOrbit.SemiMajorAxis(), tgtOrbit.SemiMajorAxis())
	if err != nil {
		log.Fatalf("solve: %s", err)
	}
	log.Printf("Δv1=%+f km/s\tΔv2=%+f km/s\ttotal=%f km/s\n", res.ΔV1, res.ΔV2, res.TotalCost())
	log.Printf("transfer time: %s (~ %f hours)\n", res.TimeOfFlight(), res.TimeOfFlight().Hours())
	log.Printf("transfer ellipse: a=%f km e=%f\n", res.Geometry.SemiMajorAxis, res.Geometry.Eccentricity)

	if exportFmt == "" && xyzvFile == "" {
		return
	}
	states, err := transfer.SampleStates(res.Geometry, body.GM(),
		transfer.Deg2rad(inclination), transfer.Deg2rad(raan), transfer.Deg2rad(argPeri),
		time.Now().UTC(), points)
	if err != nil {
		log.Fatalf("sample: %s", err)
	}
	traj := transfer.NewTrajectory(res, states, initOrbit.ID, tgtOrbit.ID)

	if exportFmt != "" {
		format, err := transfer.FormatFromString(exportFmt)
		if err != nil {
			log.Fatalf("export: %s", err)
		}
		store, err := transfer.NewStore(dataDir)
		if err != nil {
			log.Fatalf("store: %s", err)
		}
		for _, orbit := range []*transfer.Orbit{initOrbit, tgtOrbit} {
			if _, err = store.SaveOrbit(orbit, format); err != nil {
				log.Fatalf("save orbit: %s", err)
			}
		}
		name, err := store.SaveTrajectory(traj, format)
		if err != nil {
			log.Fatalf("save trajectory: %s", err)
		}
		log.Printf("saved trajectory to %s\n", name)
	}

	if xyzvFile != "" {
		fh, err := os.Create(xyzvFile)
		if err != nil {
			log.Fatalf("xyzv: %s", err)
		}
		defer fh.Close()
		if err = transfer.WriteXYZV(fh, traj); err != nil {
			log.Fatalf("xyzv: %s", err)
		}
		log.Printf("saved interpolated states to %s\n", xyzvFile)
	}
}
