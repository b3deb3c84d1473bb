package cmd

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRunParams_EmptyObjectKeepsDefaults(t *testing.T) {
	p, err := ParseRunParams(strings.NewReader("{}"))
	require.NoError(t, err)
	assert.Equal(t, DefaultRunParams(), p)
}

func TestParseRunParams_FullOverride(t *testing.T) {
	in := `{
		"nblock": 4,
		"nstep": 50,
		"dr_max": 0.2,
		"db_max": 0.01,
		"pressure": 6.5,
		"fast": false
	}`

	p, err := ParseRunParams(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, RunParams{NBlock: 4, NStep: 50, DrMax: 0.2, DbMax: 0.01, Pressure: 6.5, Fast: false}, p)
}

func TestParseRunParams_PartialOverrideKeepsRest(t *testing.T) {
	p, err := ParseRunParams(strings.NewReader(`{"pressure": 8.0}`))
	require.NoError(t, err)

	want := DefaultRunParams()
	want.Pressure = 8.0
	assert.Equal(t, want, p)
}

func TestParseRunParams_ScientificNotationIsFloat(t *testing.T) {
	// BDD: 1.5e-1 is a float literal even without a decimal point
	p, err := ParseRunParams(strings.NewReader(`{"dr_max": 1.5e-1}`))
	require.NoError(t, err)
	assert.InDelta(t, 0.15, p.DrMax, 1e-12)
}

func TestParseRunParams_UnknownKeyWarnsAndProceeds(t *testing.T) {
	hook := logrustest.NewGlobal()
	defer hook.Reset()

	p, err := ParseRunParams(strings.NewReader(`{"cutoff": 1.25, "nblock": 3}`))
	require.NoError(t, err)
	assert.Equal(t, 3, p.NBlock, "known keys still apply")

	require.NotEmpty(t, hook.Entries, "unknown key must warn")
	entry := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Contains(t, entry.Message, "cutoff")
	assert.Contains(t, entry.Message, "nblock", "warning should list the valid keys")
}

func TestParseRunParams_TypeMismatches(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		errPart string
	}{
		{"int key float literal", `{"nblock": 5.0}`, `"nblock"`},
		{"int key fraction", `{"nblock": 5.5}`, `"nblock"`},
		{"int key string", `{"nblock": "5"}`, `"nblock"`},
		{"int key bool", `{"nstep": true}`, `"nstep"`},
		{"float key integer literal", `{"dr_max": 1}`, `"dr_max"`},
		{"float key string", `{"dr_max": "0.1"}`, `"dr_max"`},
		{"pressure integer literal", `{"pressure": 4}`, `"pressure"`},
		{"bool key number", `{"fast": 1}`, `"fast"`},
		{"bool key string", `{"fast": "true"}`, `"fast"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRunParams(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart, "the failing key must be named")
			assert.Contains(t, err.Error(), "wrong type")
		})
	}
}

func TestParseRunParams_MalformedInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty input", ""},
		{"unquoted key", `{nblock: 5}`},
		{"not JSON at all", "nblock=5"},
		{"unterminated object", `{"nblock": 5`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRunParams(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid JSON parameter input")
		})
	}
}

func TestParseRunParams_TrailingDataRejected(t *testing.T) {
	_, err := ParseRunParams(strings.NewReader(`{"nblock": 5} {"nstep": 2}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trailing data")
}

func TestRunParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RunParams)
		errPart string
	}{
		{"defaults are valid", func(p *RunParams) {}, ""},
		{"zero displacement is valid", func(p *RunParams) { p.DrMax = 0 }, ""},
		{"zero box displacement is valid", func(p *RunParams) { p.DbMax = 0 }, ""},
		{"zero blocks", func(p *RunParams) { p.NBlock = 0 }, "nblock"},
		{"negative steps", func(p *RunParams) { p.NStep = -1 }, "nstep"},
		{"negative displacement", func(p *RunParams) { p.DrMax = -0.1 }, "dr_max"},
		{"negative box displacement", func(p *RunParams) { p.DbMax = -0.1 }, "db_max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultRunParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.errPart == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errPart)
			}
		})
	}
}

func TestRunParams_Params(t *testing.T) {
	p := RunParams{NBlock: 3, NStep: 7, DrMax: 0.1, DbMax: 0.02, Pressure: 1.5, Fast: true}
	got := p.Params()

	assert.Equal(t, 3, got.NBlock)
	assert.Equal(t, 7, got.NStep)
	assert.Equal(t, 0.1, got.DrMax)
	assert.Equal(t, 0.02, got.DbMax)
	assert.Equal(t, 1.5, got.Pressure)
}
