package transfer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrNotFound is returned when no stored record matches the requested ID.
var ErrNotFound = errors.New("record not found")

// Store persists orbit and trajectory records on disk, one file per record:
// <root>/orbits/<format>/<id>.<format> and
// <root>/trajectories/<format>/<id>.<format>.
type Store struct {
	root string
}

// NewStore creates the store directory layout under root if needed.
func NewStore(root string) (*Store, error) {
	for _, kind := range []string{"orbits", "trajectories"} {
		for _, f := range []Format{FormatJSON, FormatCSV, FormatXML} {
			if err := os.MkdirAll(filepath.Join(root, kind, f.String()), 0755); err != nil {
				return nil, fmt.Errorf("store init: %w", err)
			}
		}
	}
	return &Store{root: root}, nil
}

func (s *Store) path(kind string, f Format, id string) string {
	return filepath.Join(s.root, kind, f.String(), id+"."+f.String())
}

// SaveOrbit writes the orbit in the given format and returns its file path.
func (s *Store) SaveOrbit(o *Orbit, f Format) (string, error) {
	name := s.path("orbits", f, o.ID)
	fh, err := os.Create(name)
	if err != nil {
		return "", err
	}
	defer fh.Close()
	if err := EncodeOrbit(fh, o, f); err != nil {
		return "", err
	}
	return name, nil
}

// LoadOrbit reads an orbit back by ID. With an empty format, every supported
// format directory is probed.
func (s *Store) LoadOrbit(id string, f Format) (*Orbit, error) {
	formats := []Format{FormatJSON, FormatCSV, FormatXML}
	if f != "" {
		formats = []Format{f}
	}
	for _, format := range formats {
		fh, err := os.Open(s.path("orbits", format, id))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		defer fh.Close()
		return DecodeOrbit(fh, format)
	}
	return nil, fmt.Errorf("%w: orbit '%s'", ErrNotFound, id)
}

// ListOrbits reads all orbits stored in the given format, sorted by ID for a
// stable pagination order.
func (s *Store) ListOrbits(f Format) ([]*Orbit, error) {
	matches, err := filepath.Glob(filepath.Join(s.root, "orbits", f.String(), "*."+f.String()))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	orbits := make([]*Orbit, 0, len(matches))
	for _, name := range matches {
		fh, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		o, err := DecodeOrbit(fh, f)
		fh.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		orbits = append(orbits, o)
	}
	return orbits, nil
}

// SaveTrajectory writes the trajectory in the given format and returns its
// file path.
func (s *Store) SaveTrajectory(t *Trajectory, f Format) (string, error) {
	name := s.path("trajectories", f, t.ID)
	fh, err := os.Create(name)
	if err != nil {
		return "", err
	}
	defer fh.Close()
	if err := EncodeTrajectory(fh, t, f); err != nil {
		return "", err
	}
	return name, nil
}

// LoadTrajectory reads a trajectory back by ID. With an empty format, every
// supported format directory is probed.
func (s *Store) LoadTrajectory(id string, f Format) (*Trajectory, error) {
	formats := []Format{FormatJSON, FormatCSV, FormatXML}
	if f != "" {
		formats = []Format{f}
	}
	for _, format := range formats {
		fh, err := os.Open(s.path("trajectories", format, id))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		defer fh.Close()
		return DecodeTrajectory(fh, format)
	}
	return nil, fmt.Errorf("%w: trajectory '%s'", ErrNotFound, id)
}

// ListTrajectories reads all trajectories stored in the given format, sorted
// by ID for a stable pagination order.
func (s *Store) ListTrajectories(f Format) ([]*Trajectory, error) {
	matches, err := filepath.Glob(filepath.Join(s.root, "trajectories", f.String(), "*."+f.String()))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	trajectories := make([]*Trajectory, 0, len(matches))
	for _, name := range matches {
		fh, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		t, err := DecodeTrajectory(fh, f)
		fh.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		trajectories = append(trajectories, t)
	}
	return trajectories, nil
}
