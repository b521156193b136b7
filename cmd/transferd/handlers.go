package main

import (
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"

	transfer "github.com/Rouxelp/Orbital-Transfer-Backend"
)

// Dependencies holds what the handlers need to do their job.
type Dependencies struct {
	Store        *transfer.Store
	SamplePoints int
}

// APIError is a structured error response.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newError(c *fiber.Ctx, status int, code string, message string) error {
	return c.Status(status).JSON(APIError{Status: status, Code: code, Message: message})
}

func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, 400, "bad_request", msg)
}

func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, 404, "not_found", msg)
}

func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, 500, "internal_error", msg)
}

// setupRoutes registers the REST routes.
func setupRoutes(app *fiber.App, deps *Dependencies) {
	app.Use(metricsMiddleware())
	app.Get("/metrics", metricsHandler())
	app.Get("/health", healthHandler())

	app.Post("/orbit", createOrbitHandler(deps))
	app.Get("/orbit/:id", getOrbitHandler(deps))
	app.Get("/orbits", listOrbitsHandler(deps))
	app.Post("/transfers", createTransferHandler(deps))
	app.Get("/trajectory/:id", getTrajectoryHandler(deps))
	app.Get("/trajectories", listTrajectoriesHandler(deps))
}

func healthHandler() fiber.Handler {
	startedAt := time.Now()
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"uptime": time.Since(startedAt).String(),
		})
	}
}

// OrbitRequest is the POST /orbit payload.
type OrbitRequest struct {
	Name            string  `json:"name"`
	AltitudePerigee float64 `json:"altitude_perigee"`
	AltitudeApogee  float64 `json:"altitude_apogee"`
	Inclination     float64 `json:"inclination"`
	RAAN            float64 `json:"raan"`
	ArgPerigee      float64 `json:"argp"`
	TrueAnomaly     float64 `json:"nu"`
	Body            string  `json:"central_body"`
	FileType        string  `json:"file_type"`
}

func createOrbitHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req OrbitRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "malformed request body: "+err.Error())
		}
		format, err := transfer.FormatFromString(req.FileType)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		body := transfer.Earth
		if req.Body != "" {
			if body, err = transfer.CelestialObjectFromString(req.Body); err != nil {
				return errBadRequest(c, err.Error())
			}
		}
		orbit, err := transfer.NewOrbit(req.AltitudePerigee, req.AltitudeApogee,
			req.Inclination, req.RAAN, req.ArgPerigee, req.TrueAnomaly, body)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		orbit.Name = req.Name
		if _, err = deps.Store.SaveOrbit(orbit, format); err != nil {
			return errInternal(c, err.Error())
		}
		orbitsCreated.Inc()
		slog.Info("orbit created", "id", orbit.ID, "format", format)
		return c.Status(201).JSON(orbit)
	}
}

func getOrbitHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Without an explicit file_type every format directory is probed.
		var format transfer.Format
		if ft := c.Query("file_type"); ft != "" {
			var err error
			if format, err = transfer.FormatFromString(ft); err != nil {
				return errBadRequest(c, err.Error())
			}
		}
		orbit, err := deps.Store.LoadOrbit(c.Params("id"), format)
		if err != nil {
			if errors.Is(err, transfer.ErrNotFound) {
				return errNotFound(c, err.Error())
			}
			return errInternal(c, err.Error())
		}
		return c.JSON(orbit)
	}
}

func listOrbitsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		format, err := transfer.FormatFromString(c.Query("file_type"))
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		orbits, err := deps.Store.ListOrbits(format)
		if err != nil {
			return errInternal(c, err.Error())
		}
		return paginate(c, asAnySlice(orbits))
	}
}

// TransferRequest is the POST /transfers payload.
type TransferRequest struct {
	InitialOrbitID string `json:"initial_orbit_id"`
	TargetOrbitID  string `json:"target_orbit_id"`
	Points         int    `json:"points"`
	FileType       string `json:"file_type"`
}

func createTransferHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req TransferRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "malformed request body: "+err.Error())
		}
		if req.InitialOrbitID == "" || req.TargetOrbitID == "" {
			return errBadRequest(c, "initial_orbit_id and target_orbit_id are required")
		}
		format, err := transfer.FormatFromString(req.FileType)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		initial, err := deps.Store.LoadOrbit(req.InitialOrbitID, "")
		if err != nil {
			if errors.Is(err, transfer.ErrNotFound) {
				return errNotFound(c, err.Error())
			}
			return errInternal(c, err.Error())
		}
		target, err := deps.Store.LoadOrbit(req.TargetOrbitID, "")
		if err != nil {
			if errors.Is(err, transfer.ErrNotFound) {
				return errNotFound(c, err.Error())
			}
			return errInternal(c, err.Error())
		}
		if math.Abs(initial.Inclination-target.Inclination) > 1e-9 {
			return errBadRequest(c, "orbits are not coplanar, a plane change is not supported")
		}
		body, err := initial.CentralBody()
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		targetBody, err := target.CentralBody()
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		if !body.Equals(targetBody) {
			return errBadRequest(c, "orbits are not around the same body")
		}

		res, err := transfer.MethodHohmann.Solve(body.GM(), initial.SemiMajorAxis(), target.SemiMajorAxis())
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		points := req.Points
		if points == 0 {
			points = deps.SamplePoints
		}
		states, err := transfer.SampleStates(res.Geometry, body.GM(),
			transfer.Deg2rad(initial.Inclination), transfer.Deg2rad(initial.RAAN),
			transfer.Deg2rad(initial.ArgPerigee), time.Now().UTC(), points)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		traj := transfer.NewTrajectory(res, states, initial.ID, target.ID)
		if _, err = deps.Store.SaveTrajectory(traj, format); err != nil {
			return errInternal(c, err.Error())
		}
		transfersSolved.WithLabelValues(res.Method.String()).Inc()
		slog.Info("transfer solved", "id", traj.ID,
			"delta_v1", res.ΔV1, "delta_v2", res.ΔV2, "tof", res.TimeOfFlight().String())
		return c.Status(201).JSON(traj)
	}
}

func getTrajectoryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var format transfer.Format
		if ft := c.Query("file_type"); ft != "" {
			var err error
			if format, err = transfer.FormatFromString(ft); err != nil {
				return errBadRequest(c, err.Error())
			}
		}
		traj, err := deps.Store.LoadTrajectory(c.Params("id"), format)
		if err != nil {
			if errors.Is(err, transfer.ErrNotFound) {
				return errNotFound(c, err.Error())
			}
			return errInternal(c, err.Error())
		}
		return c.JSON(traj)
	}
}

func listTrajectoriesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		format, err := transfer.FormatFromString(c.Query("file_type"))
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		trajectories, err := deps.Store.ListTrajectories(format)
		if err != nil {
			return errInternal(c, err.Error())
		}
		return paginate(c, asAnySlice(trajectories))
	}
}

func asAnySlice[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
