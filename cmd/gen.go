package cmd

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hardsphere-sim/hardsphere-sim/mc"
	"github.com/hardsphere-sim/hardsphere-sim/mc/cnf"
	"github.com/hardsphere-sim/hardsphere-sim/mc/overlap"
)

var (
	// CLI flags for the configuration generator
	genCells   int     // fcc unit cells per side; the atom count is 4*nc^3 in both modes
	genDensity float64 // target number density n/V
	genMode    string  // lattice or random
	genTag     string  // snapshot tag to write
	genSeed    int64   // seed for random placement (-1 derives one from the clock)
)

// insertAttempts bounds the retries per atom in random placement mode.
const insertAttempts = 10000

// genCmd builds a non-overlapping starting configuration for `run`
var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate an initial configuration snapshot",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if err := executeGen(os.Stdout, outDir, genCells, genDensity, genMode, genTag, genSeed); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// executeGen builds the requested configuration, verifies it is
// overlap-free, and writes it as cnf.<tag> under dir.
func executeGen(out io.Writer, dir string, nc int, density float64, mode, tag string, seed int64) error {
	if nc < 1 {
		return fmt.Errorf("nc must be at least 1, got %d", nc)
	}
	if density <= 0 {
		return fmt.Errorf("density must be positive, got %g", density)
	}
	n := 4 * nc * nc * nc
	box := math.Cbrt(float64(n) / density)

	rng := mc.NewPartitionedRNG(mc.NewRunKey(seed))
	var r []mc.Vec3
	var err error
	switch mode {
	case "lattice":
		r, err = fccLattice(nc, box)
	case "random":
		r, err = randomFill(n, box, rng.Lattice())
	default:
		return fmt.Errorf("mode must be lattice or random, got %q", mode)
	}
	if err != nil {
		return err
	}

	if overlap.NewSlow().Overlap(box, r) {
		return errors.New("generated configuration contains overlaps")
	}

	fmt.Fprintf(out, "%-40s%15d\n", "Number of particles", n)
	fmt.Fprintf(out, "%-40s%15.6f\n", "Box length", box)
	fmt.Fprintf(out, "%-40s%15.6f\n", "Density", density)

	phys := make([]mc.Vec3, len(r))
	for i, ri := range r {
		phys[i] = ri.Scale(box)
	}
	store := cnf.NewStore(dir)
	if err := store.Write(tag, box, phys); err != nil {
		return err
	}
	logrus.Infof("configuration written to %s", store.Path(tag))
	return nil
}

// fccLattice places 4*nc^3 atoms on a face-centered cubic lattice in
// fractional coordinates. Nearest neighbors sit box/(nc*sqrt(2)) apart,
// which must be at least one sphere diameter.
func fccLattice(nc int, box float64) ([]mc.Vec3, error) {
	spacing := box / (float64(nc) * math.Sqrt2)
	if spacing < 1.0 {
		return nil, fmt.Errorf("lattice spacing %.6f is below one sphere diameter; lower the density or raise nc", spacing)
	}
	basis := [4]mc.Vec3{
		{0.0, 0.0, 0.0},
		{0.0, 0.5, 0.5},
		{0.5, 0.0, 0.5},
		{0.5, 0.5, 0.0},
	}
	cells := float64(nc)
	r := make([]mc.Vec3, 0, 4*nc*nc*nc)
	for ix := 0; ix < nc; ix++ {
		for iy := 0; iy < nc; iy++ {
			for iz := 0; iz < nc; iz++ {
				for _, b := range basis {
					r = append(r, mc.Vec3{
						(float64(ix)+b[0])/cells - 0.5,
						(float64(iy)+b[1])/cells - 0.5,
						(float64(iz)+b[2])/cells - 0.5,
					})
				}
			}
		}
	}
	return r, nil
}

// randomFill inserts atoms sequentially at uniform positions, retrying
// each until it lands clear of everything placed so far. Practical only
// at low density; beyond that the attempt budget runs out.
func randomFill(n int, box float64, rng *rand.Rand) ([]mc.Vec3, error) {
	oracle := overlap.NewSlow()
	r := make([]mc.Vec3, 0, n)
	for len(r) < n {
		placed := false
		for attempt := 0; attempt < insertAttempts; attempt++ {
			trial := mc.Vec3{rng.Float64() - 0.5, rng.Float64() - 0.5, rng.Float64() - 0.5}
			if !oracle.OverlapOne(trial, box, r) {
				r = append(r, trial)
				placed = true
				break
			}
		}
		if !placed {
			return nil, fmt.Errorf("random insertion stuck at atom %d of %d after %d attempts; density %g is too high for sequential filling",
				len(r)+1, n, insertAttempts, float64(n)/(box*box*box))
		}
	}
	return r, nil
}

// init sets up CLI flags and attaches `gen` to the root command
func init() {
	genCmd.Flags().IntVar(&genCells, "nc", 3, "fcc unit cells per side (4*nc^3 atoms)")
	genCmd.Flags().Float64Var(&genDensity, "density", 0.3, "Number density n/V in sphere diameters")
	genCmd.Flags().StringVar(&genMode, "mode", "lattice", "Placement mode (lattice, random)")
	genCmd.Flags().StringVar(&genTag, "tag", mc.TagInput, "Snapshot tag to write (file cnf.<tag>)")
	genCmd.Flags().Int64Var(&genSeed, "seed", -1, "Seed for random placement (-1 picks one from the clock)")
	genCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	genCmd.Flags().StringVar(&outDir, "out-dir", ".", "Directory for the cnf.* snapshot")

	rootCmd.AddCommand(genCmd)
}
