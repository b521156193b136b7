package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	transfer "github.com/Rouxelp/Orbital-Transfer-Backend"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	store, err := transfer.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	setupRoutes(app, &Dependencies{Store: store, SamplePoints: 50})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target string, payload any) (int, []byte) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, raw
}

func createOrbit(t *testing.T, app *fiber.App, altPerigee, altApogee, inclination float64) *transfer.Orbit {
	t.Helper()
	status, body := doJSON(t, app, "POST", "/orbit", OrbitRequest{
		AltitudePerigee: altPerigee,
		AltitudeApogee:  altApogee,
		Inclination:     inclination,
	})
	if status != 201 {
		t.Fatalf("expected 201, got %d: %s", status, body)
	}
	var orbit transfer.Orbit
	if err := json.Unmarshal(body, &orbit); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return &orbit
}

func TestCreateAndGetOrbit(t *testing.T) {
	app := setupApp(t)
	orbit := createOrbit(t, app, 400, 800, 51.6)
	if orbit.ID == "" {
		t.Fatal("created orbit has no ID")
	}

	status, body := doJSON(t, app, "GET", "/orbit/"+orbit.ID, nil)
	if status != 200 {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	var loaded transfer.Orbit
	if err := json.Unmarshal(body, &loaded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if loaded != *orbit {
		t.Fatalf("loaded orbit differs:\n%+v\n%+v", loaded, orbit)
	}
}

func TestCreateOrbitInvalid(t *testing.T) {
	app := setupApp(t)
	status, body := doJSON(t, app, "POST", "/orbit", OrbitRequest{
		AltitudePerigee: 800,
		AltitudeApogee:  400,
	})
	if status != 400 {
		t.Fatalf("expected 400, got %d: %s", status, body)
	}
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if apiErr.Code != "bad_request" {
		t.Fatalf("unexpected error code %s", apiErr.Code)
	}

	status, _ = doJSON(t, app, "POST", "/orbit", OrbitRequest{
		AltitudePerigee: 400,
		AltitudeApogee:  800,
		FileType:        "yaml",
	})
	if status != 400 {
		t.Fatalf("expected 400 for yaml, got %d", status)
	}
}

func TestGetOrbitNotFound(t *testing.T) {
	app := setupApp(t)
	status, body := doJSON(t, app, "GET", "/orbit/does-not-exist", nil)
	if status != 404 {
		t.Fatalf("expected 404, got %d: %s", status, body)
	}
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if apiErr.Code != "not_found" {
		t.Fatalf("unexpected error code %s", apiErr.Code)
	}
}

func TestListOrbitsPagination(t *testing.T) {
	app := setupApp(t)
	for k := 0; k < 5; k++ {
		createOrbit(t, app, float64(400+k), float64(800+k), 0)
	}
	status, body := doJSON(t, app, "GET", "/orbits?page=2&page_size=2", nil)
	if status != 200 {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	var resp PaginatedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Page != 2 || resp.PageSize != 2 {
		t.Fatalf("unexpected page %d size %d", resp.Page, resp.PageSize)
	}
	if resp.TotalItems != 5 || resp.TotalPages != 3 {
		t.Fatalf("unexpected totals: %d items, %d pages", resp.TotalItems, resp.TotalPages)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("got %d items instead of 2", len(resp.Data))
	}
	if !strings.Contains(resp.Next, "page=3") {
		t.Fatalf("unexpected next link %s", resp.Next)
	}

	status, body = doJSON(t, app, "GET", "/orbits?page=3&page_size=2", nil)
	if status != 200 {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	resp = PaginatedResponse{} // Next is omitempty; clear page-2 leftovers before decoding
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Data) != 1 || resp.Next != "" {
		t.Fatalf("unexpected last page: %d items, next '%s'", len(resp.Data), resp.Next)
	}
}

func TestCreateTransfer(t *testing.T) {
	app := setupApp(t)
	initial := createOrbit(t, app, 400, 400, 0)
	target := createOrbit(t, app, 35786, 35786, 0)

	status, body := doJSON(t, app, "POST", "/transfers", TransferRequest{
		InitialOrbitID: initial.ID,
		TargetOrbitID:  target.ID,
	})
	if status != 201 {
		t.Fatalf("expected 201, got %d: %s", status, body)
	}
	var traj transfer.Trajectory
	if err := json.Unmarshal(body, &traj); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if traj.InitialOrbitID != initial.ID || traj.TargetOrbitID != target.ID {
		t.Fatal("orbit IDs not carried over")
	}
	if traj.ΔV1 <= 0 || traj.ΔV2 <= 0 || traj.TimeOfFlight <= 0 {
		t.Fatalf("implausible transfer: %+v", traj)
	}
	if len(traj.Points) != 50 {
		t.Fatalf("got %d points instead of 50", len(traj.Points))
	}

	status, _ = doJSON(t, app, "GET", "/trajectory/"+traj.ID, nil)
	if status != 200 {
		t.Fatalf("expected 200, got %d", status)
	}

	status, body = doJSON(t, app, "GET", "/trajectories", nil)
	if status != 200 {
		t.Fatalf("expected 200, got %d", status)
	}
	var resp PaginatedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.TotalItems != 1 {
		t.Fatalf("listed %d trajectories instead of 1", resp.TotalItems)
	}
}

func TestCreateTransferErrors(t *testing.T) {
	app := setupApp(t)
	initial := createOrbit(t, app, 400, 400, 0)
	inclined := createOrbit(t, app, 35786, 35786, 28.5)

	status, body := doJSON(t, app, "POST", "/transfers", TransferRequest{
		InitialOrbitID: initial.ID,
		TargetOrbitID:  inclined.ID,
	})
	if status != 400 {
		t.Fatalf("non coplanar transfer: expected 400, got %d: %s", status, body)
	}

	status, _ = doJSON(t, app, "POST", "/transfers", TransferRequest{
		InitialOrbitID: initial.ID,
		TargetOrbitID:  "does-not-exist",
	})
	if status != 404 {
		t.Fatalf("missing target: expected 404, got %d", status)
	}

	status, _ = doJSON(t, app, "POST", "/transfers", TransferRequest{})
	if status != 400 {
		t.Fatalf("empty request: expected 400, got %d", status)
	}
}

func TestCreateTransferSamplePoints(t *testing.T) {
	app := setupApp(t)
	initial := createOrbit(t, app, 400, 400, 0)
	target := createOrbit(t, app, 800, 800, 0)

	status, body := doJSON(t, app, "POST", "/transfers", TransferRequest{
		InitialOrbitID: initial.ID,
		TargetOrbitID:  target.ID,
		Points:         7,
	})
	if status != 201 {
		t.Fatalf("expected 201, got %d: %s", status, body)
	}
	var traj transfer.Trajectory
	if err := json.Unmarshal(body, &traj); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(traj.Points) != 7 {
		t.Fatalf("got %d points instead of 7", len(traj.Points))
	}
}

func TestHealth(t *testing.T) {
	app := setupApp(t)
	status, body := doJSON(t, app, "GET", "/health", nil)
	if status != 200 {
		t.Fatalf("expected 200, got %d", status)
	}
	var health map[string]string
	if err := json.Unmarshal(body, &health); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if health["status"] != "healthy" {
		t.Fatalf("unexpected health payload %s", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	app := setupApp(t)
	// Generate at least one measured request first.
	if status, _ := doJSON(t, app, "GET", "/health", nil); status != 200 {
		t.Fatalf("expected 200, got %d", status)
	}
	status, body := doJSON(t, app, "GET", "/metrics", nil)
	if status != 200 {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(string(body), "transferd_http_requests_total") {
		t.Fatal("request counter missing from the scrape output")
	}
}
