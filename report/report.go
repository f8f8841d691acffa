// Package report renders benchmark results.
//
// A single run is reported as its duration in seconds on one line. Suite
// reports can additionally be rendered as an aligned table, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-bench/bench"
	"github.com/cwbudde/algo-bench/suite"
)

// Format selects a suite report rendering.
type Format int

const (
	FormatText Format = iota
	FormatTable
	FormatJSON
	FormatYAML

	formatCount
)

var formatNames = [formatCount]string{"text", "table", "json", "yaml"}

func (f Format) String() string {
	if f >= 0 && f < formatCount {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat parses a format name. The empty string selects FormatTable.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FormatTable, nil
	}
	for i, name := range formatNames {
		if s == name {
			return Format(i), nil
		}
	}
	if s == "yml" {
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("report: unknown format %q", s)
}

// FormatSeconds renders a duration in seconds with the shortest
// representation that round-trips.
func FormatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'g', -1, 64)
}

// WriteSeconds writes the duration of res followed by a newline.
func WriteSeconds(w io.Writer, res bench.Result) error {
	_, err := io.WriteString(w, FormatSeconds(res.Seconds())+"\n")
	return err
}

// SecondsSink returns a bench.Sink writing each result with WriteSeconds.
func SecondsSink(w io.Writer) bench.Sink {
	return bench.SinkFunc(func(res bench.Result) error {
		return WriteSeconds(w, res)
	})
}

// Write renders rep in format f.
func Write(w io.Writer, rep suite.Report, f Format) error {
	switch f {
	case FormatText:
		return writeText(w, rep)
	case FormatTable:
		return writeTable(w, rep)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("report: encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("report: encode yaml: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("report: unknown format %v", f)
}

// writeText prints one "name seconds" line per case, using the median.
func writeText(w io.Writer, rep suite.Report) error {
	for _, cr := range rep.Cases {
		if _, err := fmt.Fprintf(w, "%s %s\n", cr.Case.Name, FormatSeconds(cr.Summary.Median)); err != nil {
			return err
		}
	}
	return nil
}
