package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/hardsphere-sim/hardsphere-sim/mc"
)

// RunParams is the tunable parameter set of the run subcommand, read as a
// single JSON object. An empty object {} accepts every default.
type RunParams struct {
	NBlock   int     // blocks per run
	NStep    int     // steps per block
	DrMax    float64 // maximum displacement, sphere diameters
	DbMax    float64 // maximum log box length change
	Pressure float64 // specified reduced pressure
	Fast     bool    // bind the link-cell oracle instead of the direct scan
}

// validKeys lists the accepted parameter names, in echo order.
var validKeys = []string{"nblock", "nstep", "dr_max", "db_max", "pressure", "fast"}

// DefaultRunParams returns the documented defaults.
func DefaultRunParams() RunParams {
	return RunParams{
		NBlock:   10,
		NStep:    1000,
		DrMax:    0.15,
		DbMax:    0.005,
		Pressure: 4.0,
		Fast:     true,
	}
}

// ParseRunParams reads one JSON object from in and overlays it on the
// defaults. Unknown keys warn and are ignored; a key bound to the wrong
// literal type is an error. Integer parameters require integer literals
// and float parameters require non-integer numeric literals, so a mixed
// up 1 vs 1.0 surfaces immediately instead of silently coercing.
func ParseRunParams(in io.Reader) (RunParams, error) {
	p := DefaultRunParams()

	dec := json.NewDecoder(in)
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return p, fmt.Errorf("invalid JSON parameter input: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return p, fmt.Errorf("invalid JSON parameter input: trailing data after object")
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var err error
	for _, key := range keys {
		val := raw[key]
		switch key {
		case "nblock":
			p.NBlock, err = intParam(key, val)
		case "nstep":
			p.NStep, err = intParam(key, val)
		case "dr_max":
			p.DrMax, err = floatParam(key, val)
		case "db_max":
			p.DbMax, err = floatParam(key, val)
		case "pressure":
			p.Pressure, err = floatParam(key, val)
		case "fast":
			p.Fast, err = boolParam(key, val)
		default:
			logrus.Warnf("parameter %q is not one of %v", key, validKeys)
		}
		if err != nil {
			return p, err
		}
	}
	return p, nil
}

// Validate rejects parameter combinations no run can honor.
func (p RunParams) Validate() error {
	if p.NBlock < 1 {
		return fmt.Errorf("nblock must be at least 1, got %d", p.NBlock)
	}
	if p.NStep < 1 {
		return fmt.Errorf("nstep must be at least 1, got %d", p.NStep)
	}
	if p.DrMax < 0 {
		return fmt.Errorf("dr_max must not be negative, got %g", p.DrMax)
	}
	if p.DbMax < 0 {
		return fmt.Errorf("db_max must not be negative, got %g", p.DbMax)
	}
	return nil
}

// Params projects the physical and schedule parameters for the driver.
func (p RunParams) Params() mc.Params {
	return mc.Params{
		NBlock:   p.NBlock,
		NStep:    p.NStep,
		DrMax:    p.DrMax,
		DbMax:    p.DbMax,
		Pressure: p.Pressure,
	}
}

// intParam accepts only integer literals: 5, never 5.0 or "5".
func intParam(key string, val any) (int, error) {
	num, ok := val.(json.Number)
	if !ok {
		return 0, fmt.Errorf("parameter %q has the wrong type: integer required", key)
	}
	i, err := num.Int64()
	if err != nil {
		return 0, fmt.Errorf("parameter %q has the wrong type: integer required, got %s", key, num)
	}
	return int(i), nil
}

// floatParam accepts only non-integer numeric literals: 0.15 or 1e-2,
// never 1 and never "0.15".
func floatParam(key string, val any) (float64, error) {
	num, ok := val.(json.Number)
	if !ok {
		return 0, fmt.Errorf("parameter %q has the wrong type: float required", key)
	}
	if _, err := num.Int64(); err == nil {
		return 0, fmt.Errorf("parameter %q has the wrong type: float required, got integer literal %s", key, num)
	}
	f, err := num.Float64()
	if err != nil {
		return 0, fmt.Errorf("parameter %q has the wrong type: float required, got %s", key, num)
	}
	return f, nil
}

func boolParam(key string, val any) (bool, error) {
	b, ok := val.(bool)
	if !ok {
		return false, fmt.Errorf("parameter %q has the wrong type: true or false required", key)
	}
	return b, nil
}
