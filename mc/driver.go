package mc

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Configuration snapshot tags. The driver reads "inp", checkpoints each
// block under its zero-padded index, and writes "out" at run end.
const (
	TagInput    = "inp"
	TagOutput   = "out"
	TagOverflow = "sav"
)

// SaveTag returns the checkpoint tag for a completed block. Blocks beyond
// 999 share the overflow tag and overwrite one another.
func SaveTag(blk int) string {
	if blk < 1000 {
		return fmt.Sprintf("%03d", blk)
	}
	return TagOverflow
}

// Params are the physical and schedule parameters of one run.
type Params struct {
	NBlock   int     `yaml:"nblock"`   // blocks per run
	NStep    int     `yaml:"nstep"`    // steps per block
	DrMax    float64 `yaml:"dr_max"`   // maximum displacement, sphere diameters
	DbMax    float64 `yaml:"db_max"`   // maximum log box length change
	Pressure float64 `yaml:"pressure"` // specified reduced pressure
}

// Driver owns one constant-NPT Monte Carlo run: it loads the initial
// configuration, advances it block by block, feeds the statistics
// accumulator, and checkpoints snapshots through the store.
//
// Each step is one sweep of single-particle trial moves over all atoms
// followed by one trial volume rescale. Accepted particle moves mutate the
// configuration immediately, so later atoms in the sweep see the earlier
// outcomes.
type Driver struct {
	params Params
	oracle Oracle
	stats  Statistics
	store  Store
	rng    *rand.Rand
	out    io.Writer

	cfg     *Configuration
	scratch []Vec3
}

// NewDriver assembles a run from its capabilities. The report of record
// goes to out; rng must be the run's dedicated chain stream.
func NewDriver(params Params, oracle Oracle, stats Statistics, store Store, rng *rand.Rand, out io.Writer) *Driver {
	return &Driver{
		params: params,
		oracle: oracle,
		stats:  stats,
		store:  store,
		rng:    rng,
		out:    out,
	}
}

// Config returns the driver's current configuration. It is nil until Run
// has loaded the initial snapshot.
func (d *Driver) Config() *Configuration {
	return d.cfg
}

// Run executes the full simulation. It returns an error if the initial
// snapshot cannot be loaded, if a configuration at rest contains
// overlapping spheres, or if a checkpoint cannot be written.
func (d *Driver) Run() error {
	n, box, r, err := d.store.Read(TagInput)
	if err != nil {
		return fmt.Errorf("reading initial configuration: %w", err)
	}
	d.cfg = NewConfiguration(box, r)
	fmt.Fprintf(d.out, "%-40s%15d\n", "Number of particles", n)
	fmt.Fprintf(d.out, "%-40s%15.6f\n", "Box length", box)

	if d.oracle.Overlap(d.cfg.Box, d.cfg.R) {
		return errors.New("overlap in initial configuration")
	}
	WriteDiagnostic(d.out, "Initial values", DiagnosticObservables(d.cfg.N, d.cfg.Box))
	d.stats.RunBegin(DiagnosticObservables(d.cfg.N, d.cfg.Box))
	d.scratch = make([]Vec3, d.cfg.N-1)

	for blk := 1; blk <= d.params.NBlock; blk++ {
		d.stats.BlkBegin()
		for stp := 0; stp < d.params.NStep; stp++ {
			mRatio, vRatio := d.step()
			d.stats.BlkAdd(StepObservables(d.cfg.N, d.cfg.Box, mRatio, vRatio))
		}
		d.stats.BlkEnd(blk)
		tag := SaveTag(blk)
		if err := d.store.Write(tag, d.cfg.Box, d.cfg.Physical()); err != nil {
			return fmt.Errorf("writing block %d checkpoint: %w", blk, err)
		}
		logrus.Debugf("block %d done, checkpoint tag %s, box %.6f", blk, tag, d.cfg.Box)
	}

	d.stats.RunEnd()
	WriteDiagnostic(d.out, "Final values", DiagnosticObservables(d.cfg.N, d.cfg.Box))
	if d.oracle.Overlap(d.cfg.Box, d.cfg.R) {
		return errors.New("overlap in final configuration")
	}
	if err := d.store.Write(TagOutput, d.cfg.Box, d.cfg.Physical()); err != nil {
		return fmt.Errorf("writing final configuration: %w", err)
	}
	return nil
}

// step advances the configuration by one sweep of particle moves plus one
// volume move, and returns the two acceptance ratios.
func (d *Driver) step() (mRatio, vRatio float64) {
	cfg := d.cfg
	drBox := d.params.DrMax / cfg.Box

	moves := 0
	for i := 0; i < cfg.N; i++ {
		ri := RandomTranslate(drBox, cfg.R[i], d.rng)
		if !d.oracle.OverlapOne(ri, cfg.Box, d.others(i)) {
			cfg.R[i] = ri
			moves++
		}
	}
	mRatio = float64(moves) / float64(cfg.N)

	vRatio = 0.0
	boxNew, denScale := ProposeRescale(cfg.Box, d.params.DbMax, d.rng)
	if !d.oracle.Overlap(boxNew, cfg.R) {
		delta := RescaleDelta(cfg.N, d.params.Pressure, cfg.Box, boxNew, denScale)
		if Metropolis(delta, d.rng) {
			cfg.Box = boxNew
			vRatio = 1.0
		}
	}
	return mRatio, vRatio
}

// others gathers every position except atom i's into the scratch buffer,
// reflecting all moves accepted earlier in the current sweep.
func (d *Driver) others(i int) []Vec3 {
	copy(d.scratch, d.cfg.R[:i])
	copy(d.scratch[i:], d.cfg.R[i+1:])
	return d.scratch
}
