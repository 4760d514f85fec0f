package campus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/paulmach/orb"
)

var ErrMalformedRecord = errors.New("campus: malformed record")

var (
	buildingsHeader = []string{"shortName", "longName", "x", "y"}
	pathsHeader     = []string{"x1", "y1", "x2", "y2", "distance"}
)

// ReadBuildings parses records of the form shortName,longName,x,y. The first row is
// a header and is skipped.
func ReadBuildings(r io.Reader) ([]Building, error) {
	buildings := make([]Building, 0)
	err := readRecords(r, len(buildingsHeader), func(line int, record []string) error {
		location, err := parsePoint(record[2], record[3])
		if err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, line, err)
		}
		buildings = append(buildings, Building{ShortName: record[0], LongName: record[1], Location: location})
		return nil
	})
	return buildings, err
}

// ReadSegments parses records of the form x1,y1,x2,y2,distance. The first row is a
// header and is skipped.
func ReadSegments(r io.Reader) ([]Segment, error) {
	segments := make([]Segment, 0)
	err := readRecords(r, len(pathsHeader), func(line int, record []string) error {
		from, err := parsePoint(record[0], record[1])
		if err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, line, err)
		}
		to, err := parsePoint(record[2], record[3])
		if err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, line, err)
		}
		distance, err := parseFinite(record[4])
		if err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, line, err)
		}
		segments = append(segments, Segment{From: from, To: to, Distance: distance})
		return nil
	})
	return segments, err
}

func LoadBuildings(filename string) ([]Building, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	buildings, err := ReadBuildings(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return buildings, nil
}

func LoadSegments(filename string) ([]Segment, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	segments, err := ReadSegments(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return segments, nil
}

func WriteBuildings(w io.Writer, buildings []Building) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(buildingsHeader); err != nil {
		return err
	}
	for _, b := range buildings {
		record := []string{b.ShortName, b.LongName, formatFloat(b.Location.X()), formatFloat(b.Location.Y())}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func WriteSegments(w io.Writer, segments []Segment) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(pathsHeader); err != nil {
		return err
	}
	for _, s := range segments {
		record := []string{
			formatFloat(s.From.X()), formatFloat(s.From.Y()),
			formatFloat(s.To.X()), formatFloat(s.To.Y()),
			formatFloat(s.Distance),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func readRecords(r io.Reader, fields int, handle func(line int, record []string) error) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = fields
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return fmt.Errorf("%w: missing header row", ErrMalformedRecord)
		}
		return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
		}
		line, _ := reader.FieldPos(0)
		if err := handle(line, record); err != nil {
			return err
		}
	}
}

func parsePoint(x, y string) (orb.Point, error) {
	px, err := parseFinite(x)
	if err != nil {
		return orb.Point{}, err
	}
	py, err := parseFinite(y)
	if err != nil {
		return orb.Point{}, err
	}
	return orb.Point{px, py}, nil
}

// parseFinite rejects NaN and infinities, which ParseFloat accepts.
func parseFinite(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite number %q", s)
	}
	return f, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
