package transfer

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/soniakeys/meeus/julian"
)

// ErrUnsupportedFormat is returned for file formats other than json, csv, xml.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Format is an on-disk serialization format for orbit and trajectory records.
type Format string

// The supported formats.
const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXML  Format = "xml"
)

// FormatFromString returns the format from its name. An empty name defaults
// to JSON, matching the API default.
func FormatFromString(name string) (Format, error) {
	switch Format(name) {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatCSV, FormatXML:
		return Format(name), nil
	default:
		return "", fmt.Errorf("%w: '%s'", ErrUnsupportedFormat, name)
	}
}

func (f Format) String() string {
	return string(f)
}

// EncodeOrbit writes the orbit record in the given format.
func EncodeOrbit(w io.Writer, o *Orbit, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(o)
	case FormatXML:
		enc := xml.NewEncoder(w)
		enc.Indent("", "  ")
		return enc.Encode(o)
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(orbitCSVHeader); err != nil {
			return err
		}
		if err := cw.Write([]string{o.ID, o.Name,
			fmtFloat(o.AltitudePerigee), fmtFloat(o.AltitudeApogee),
			fmtFloat(o.Inclination), fmtFloat(o.RAAN),
			fmtFloat(o.ArgPerigee), fmtFloat(o.TrueAnomaly), o.Body}); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	default:
		return fmt.Errorf("%w: '%s'", ErrUnsupportedFormat, f)
	}
}

// DecodeOrbit reads an orbit record in the given format.
func DecodeOrbit(r io.Reader, f Format) (*Orbit, error) {
	switch f {
	case FormatJSON:
		o := Orbit{}
		if err := json.NewDecoder(r).Decode(&o); err != nil {
			return nil, err
		}
		return &o, nil
	case FormatXML:
		o := Orbit{}
		if err := xml.NewDecoder(r).Decode(&o); err != nil {
			return nil, err
		}
		return &o, nil
	case FormatCSV:
		cr := csv.NewReader(r)
		records, err := cr.ReadAll()
		if err != nil {
			return nil, err
		}
		if len(records) != 2 || len(records[1]) != len(orbitCSVHeader) {
			return nil, errors.New("malformed orbit csv record")
		}
		rec := records[1]
		o := Orbit{ID: rec[0], Name: rec[1], Body: rec[8]}
		for i, dst := range []*float64{&o.AltitudePerigee, &o.AltitudeApogee,
			&o.Inclination, &o.RAAN, &o.ArgPerigee, &o.TrueAnomaly} {
			if *dst, err = strconv.ParseFloat(rec[i+2], 64); err != nil {
				return nil, err
			}
		}
		return &o, nil
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedFormat, f)
	}
}

// EncodeTrajectory writes the trajectory record in the given format.
func EncodeTrajectory(w io.Writer, t *Trajectory, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	case FormatXML:
		enc := xml.NewEncoder(w)
		enc.Indent("", "  ")
		return enc.Encode(t)
	case FormatCSV:
		cw := csv.NewWriter(w)
		rows := [][]string{
			trajectoryCSVHeader,
			{t.ID, t.Name, t.InitialOrbitID, t.TargetOrbitID,
				fmtFloat(t.ΔV1), fmtFloat(t.ΔV2), fmtFloat(t.TimeOfFlight),
				strconv.Itoa(int(t.Method))},
			stateCSVHeader,
		}
		for _, pt := range t.Points {
			rows = append(rows, []string{pt.Epoch.UTC().Format(time.RFC3339Nano),
				fmtFloat(pt.Position[0]), fmtFloat(pt.Position[1]), fmtFloat(pt.Position[2]),
				fmtFloat(pt.Velocity[0]), fmtFloat(pt.Velocity[1]), fmtFloat(pt.Velocity[2])})
		}
		if err := cw.WriteAll(rows); err != nil {
			return err
		}
		return cw.Error()
	default:
		return fmt.Errorf("%w: '%s'", ErrUnsupportedFormat, f)
	}
}

// DecodeTrajectory reads a trajectory record in the given format.
func DecodeTrajectory(r io.Reader, f Format) (*Trajectory, error) {
	switch f {
	case FormatJSON:
		t := Trajectory{}
		if err := json.NewDecoder(r).Decode(&t); err != nil {
			return nil, err
		}
		return &t, nil
	case FormatXML:
		t := Trajectory{}
		if err := xml.NewDecoder(r).Decode(&t); err != nil {
			return nil, err
		}
		return &t, nil
	case FormatCSV:
		cr := csv.NewReader(r)
		cr.FieldsPerRecord = -1
		records, err := cr.ReadAll()
		if err != nil {
			return nil, err
		}
		if len(records) < 3 || len(records[1]) != len(trajectoryCSVHeader) {
			return nil, errors.New("malformed trajectory csv record")
		}
		meta := records[1]
		t := Trajectory{ID: meta[0], Name: meta[1], InitialOrbitID: meta[2], TargetOrbitID: meta[3]}
		for i, dst := range []*float64{&t.ΔV1, &t.ΔV2, &t.TimeOfFlight} {
			if *dst, err = strconv.ParseFloat(meta[i+4], 64); err != nil {
				return nil, err
			}
		}
		method, err := strconv.Atoi(meta[7])
		if err != nil {
			return nil, err
		}
		t.Method = Method(method)
		for _, rec := range records[3:] {
			if len(rec) != len(stateCSVHeader) {
				return nil, errors.New("malformed trajectory csv point")
			}
			epoch, err := time.Parse(time.RFC3339Nano, rec[0])
			if err != nil {
				return nil, err
			}
			vals := make([]float64, 6)
			for i := range vals {
				if vals[i], err = strconv.ParseFloat(rec[i+1], 64); err != nil {
					return nil, err
				}
			}
			t.Points = append(t.Points, State{Epoch: epoch, Position: vals[0:3], Velocity: vals[3:6]})
		}
		return &t, nil
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedFormat, f)
	}
}

var (
	orbitCSVHeader = []string{"id", "name", "altitude_perigee", "altitude_apogee",
		"inclination", "raan", "argp", "nu", "central_body"}
	trajectoryCSVHeader = []string{"id", "name", "initial_orbit_id", "target_orbit_id",
		"delta_v1", "delta_v2", "time_of_flight", "transfer_type_id"}
	stateCSVHeader = []string{"time", "x", "y", "z", "vx", "vy", "vz"}
)

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteXYZV writes the sampled states in the interpolated states format used
// by Cosmographia and friends.
func WriteXYZV(w io.Writer, t *Trajectory) error {
	if len(t.Points) == 0 {
		return errors.New("cannot export an empty trajectory")
	}
	// Header
	if _, err := fmt.Fprintf(w, `# Creation date (UTC): %s
# Records are <jd> <x> <y> <z> <vel x> <vel y> <vel z>
#   Time is a TDB Julian date
#   Position in km
#   Velocity in km/sec
#   Transfer start (UTC): %s`, time.Now().UTC(), t.Points[0].Epoch.UTC()); err != nil {
		return err
	}
	for _, pt := range t.Points {
		if _, err := fmt.Fprintf(w, "\n%f %f %f %f %f %f %f", julian.TimeToJD(pt.Epoch),
			pt.Position[0], pt.Position[1], pt.Position[2],
			pt.Velocity[0], pt.Velocity[1], pt.Velocity[2]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n# Transfer end (UTC): %s\n", t.Points[len(t.Points)-1].Epoch.UTC())
	return err
}

// ReadXYZV parses an interpolated states stream back into timestamped states.
func ReadXYZV(r io.Reader) ([]State, error) {
	cr := csv.NewReader(r)
	cr.Comma = ' '
	cr.Comment = '#'
	var states []State
	for {
		record, err := cr.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		if len(record) != 7 {
			return nil, errors.New("malformed interpolated state record")
		}
		vals := make([]float64, 7)
		for i := range vals {
			if vals[i], err = strconv.ParseFloat(record[i], 64); err != nil {
				return nil, err
			}
		}
		states = append(states, State{Epoch: julian.JDToTime(vals[0]), Position: vals[1:4], Velocity: vals[4:7]})
	}
	return states, nil
}
