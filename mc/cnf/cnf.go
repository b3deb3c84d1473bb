// Package cnf reads and writes configuration snapshot files. A snapshot
// is plain text: the atom count, the box length, then one line of three
// coordinates per atom, everything in units of the sphere diameter. Files
// are named cnf.<tag> inside the store's directory, e.g. cnf.inp, cnf.out
// and the per-block checkpoints cnf.001, cnf.002, ...
package cnf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hardsphere-sim/hardsphere-sim/mc"
)

// Prefix starts every snapshot file name; the tag supplies the rest.
const Prefix = "cnf."

// Store persists snapshots under one directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory must exist.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the file name a tag maps to.
func (s *Store) Path(tag string) string {
	return filepath.Join(s.dir, Prefix+tag)
}

// Read loads the snapshot carrying the given tag. Atom rows may carry
// trailing columns (velocities from other programs); only the leading
// three coordinates are taken.
func (s *Store) Read(tag string) (int, float64, []mc.Vec3, error) {
	path := s.Path(tag)
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("opening configuration: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	line, err := scanLine(sc)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("%s: atom count: %w", path, err)
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("%s: atom count: %w", path, err)
	}
	if n <= 0 {
		return 0, 0, nil, fmt.Errorf("%s: atom count %d out of range", path, n)
	}
	line, err = scanLine(sc)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("%s: box length: %w", path, err)
	}
	box, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("%s: box length: %w", path, err)
	}
	if box <= 0 {
		return 0, 0, nil, fmt.Errorf("%s: box length %g out of range", path, box)
	}

	r := make([]mc.Vec3, n)
	for i := range r {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, 0, nil, fmt.Errorf("reading %s: %w", path, err)
			}
			return 0, 0, nil, fmt.Errorf("%s: expected %d atom rows, found %d", path, n, i)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			return 0, 0, nil, fmt.Errorf("%s: atom row %d has %d columns, need at least 3", path, i+1, len(fields))
		}
		for k := 0; k < 3; k++ {
			v, err := strconv.ParseFloat(fields[k], 64)
			if err != nil {
				return 0, 0, nil, fmt.Errorf("%s: atom row %d: %w", path, i+1, err)
			}
			r[i][k] = v
		}
	}
	return n, box, r, nil
}

// Write saves a snapshot under the given tag, replacing any file already
// carrying it.
func (s *Store) Write(tag string, box float64, r []mc.Vec3) error {
	path := s.Path(tag)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating configuration: %w", err)
	}
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%15d\n", len(r))
	fmt.Fprintf(w, "%15.10f\n", box)
	for _, ri := range r {
		fmt.Fprintf(w, "%15.10f%15.10f%15.10f\n", ri[0], ri[1], ri[2])
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing configuration %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing configuration %s: %w", path, err)
	}
	return nil
}

func scanLine(sc *bufio.Scanner) (string, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(sc.Text()), nil
}
