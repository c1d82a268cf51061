// Package report renders analyzer reports as JSON or YAML documents and as
// a short console summary.
package report

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/simd-detect/analyzer"
	"github.com/wippyai/simd-detect/errors"
)

// Format is a report serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml and yml, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.InvalidInput(errors.PhaseReport, "unknown report format "+s+" (want json or yaml)")
}

// Write serializes r to w.
func Write(w io.Writer, r *analyzer.Report, format Format) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return errors.Wrap(errors.PhaseReport, errors.KindIO, err, "encode json")
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return errors.Wrap(errors.PhaseReport, errors.KindIO, err, "encode yaml")
		}
		if err := enc.Close(); err != nil {
			return errors.Wrap(errors.PhaseReport, errors.KindIO, err, "encode yaml")
		}
		return nil
	}
	return errors.InvalidInput(errors.PhaseReport, "unknown report format "+string(format))
}

// WriteFile writes r to path, replacing any existing file.
func WriteFile(path string, r *analyzer.Report, format Format) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.New(errors.PhaseReport, errors.KindIO).Cause(err).Detail("create %s", path).Build()
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.New(errors.PhaseReport, errors.KindIO).Cause(cerr).Detail("close %s", path).Build()
		}
	}()
	return Write(f, r, format)
}
