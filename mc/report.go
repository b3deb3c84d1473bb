package mc

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Manifest is the machine-readable record of one completed run. It
// complements the console report: everything needed to reproduce or
// post-process the run in one YAML document.
type Manifest struct {
	Created   time.Time `yaml:"created"`
	Seed      int64     `yaml:"seed"`
	Oracle    string    `yaml:"oracle"`
	Params    Params    `yaml:"params"`
	Particles int       `yaml:"particles"`
	Box       float64   `yaml:"box"`
	Density   float64   `yaml:"density"`
	Averages  []Summary `yaml:"averages"`
	Duration  string    `yaml:"duration"`
}

// WriteManifest saves m under dir as run.<id>.yaml and returns the path
// written. The id is fresh per call, so repeated runs in one directory
// never clobber each other's manifests.
func WriteManifest(dir string, m *Manifest) (string, error) {
	out, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encoding run manifest: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("run.%s.yaml", runID()))
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", fmt.Errorf("writing run manifest: %w", err)
	}
	return path, nil
}

func runID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		// Entropy exhaustion is effectively unreachable; a clock-derived
		// id keeps the manifest write going regardless.
		return fmt.Sprintf("%08x", uint32(time.Now().UnixNano()))
	}
	return id.String()[:8]
}
