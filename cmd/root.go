package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hardsphere-sim/hardsphere-sim/mc"
	"github.com/hardsphere-sim/hardsphere-sim/mc/averages"
	"github.com/hardsphere-sim/hardsphere-sim/mc/cnf"
	"github.com/hardsphere-sim/hardsphere-sim/mc/overlap"
)

var (
	// CLI flags shared by the simulation subcommands
	seed       int64  // Master seed for the run (-1 derives one from the clock)
	logLevel   string // Log verbosity level
	paramsPath string // JSON parameter file; empty reads standard input
	outDir     string // Directory for configuration snapshots and the run manifest
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "hardsphere-sim",
	Short: "Monte Carlo simulator for hard-sphere fluids at constant pressure",
}

// runCmd executes the simulation using JSON parameters from stdin or --params
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the constant-NPT hard-sphere simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		in := io.Reader(os.Stdin)
		if paramsPath != "" {
			f, err := os.Open(paramsPath)
			if err != nil {
				logrus.Fatalf("Cannot open parameter file: %v", err)
			}
			defer f.Close()
			in = f
		}

		if err := executeRun(in, os.Stdout, seed, outDir); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// executeRun performs one complete simulation: parameter parsing, oracle
// binding, the driver run, and the run manifest. All console output of
// record goes to out.
func executeRun(in io.Reader, out io.Writer, seed int64, dir string) error {
	fmt.Fprintln(out, "hardsphere-sim")
	fmt.Fprintln(out, "Monte Carlo, constant-NPT ensemble, hard spheres")

	params, err := ParseRunParams(in)
	if err != nil {
		return err
	}
	if err := params.Validate(); err != nil {
		return err
	}

	oracle, desc := bindOracle(params.Fast)
	fmt.Fprintln(out, desc)

	key := mc.NewRunKey(seed)
	rng := mc.NewPartitionedRNG(key)
	logrus.Infof("starting run, key=%d, snapshots in %s", key, dir)

	echoRunParams(out, params)

	start := time.Now()
	acc := averages.NewAccumulator(out)
	driver := mc.NewDriver(params.Params(), oracle, acc, cnf.NewStore(dir), rng.Chain(), out)
	if err := driver.Run(); err != nil {
		return err
	}

	cfg := driver.Config()
	manifest := &mc.Manifest{
		Created:   start,
		Seed:      int64(key),
		Oracle:    desc,
		Params:    params.Params(),
		Particles: cfg.N,
		Box:       cfg.Box,
		Density:   cfg.Density(),
		Averages:  acc.RunAverages(),
		Duration:  time.Since(start).Round(time.Millisecond).String(),
	}
	if path, err := mc.WriteManifest(dir, manifest); err != nil {
		logrus.Warnf("run manifest not written: %v", err)
	} else {
		logrus.Infof("run manifest written to %s", path)
	}
	return nil
}

// bindOracle picks the overlap implementation for the run.
func bindOracle(fast bool) (mc.Oracle, string) {
	if fast {
		o := overlap.NewFast()
		return o, o.Describe()
	}
	o := overlap.NewSlow()
	return o, o.Describe()
}

// echoRunParams writes the parameter block of the console report.
func echoRunParams(w io.Writer, p RunParams) {
	fmt.Fprintf(w, "%-40s%15d\n", "Number of blocks", p.NBlock)
	fmt.Fprintf(w, "%-40s%15d\n", "Number of steps per block", p.NStep)
	fmt.Fprintf(w, "%-40s%15.6f\n", "Pressure", p.Pressure)
	fmt.Fprintf(w, "%-40s%15.6f\n", "Maximum displacement", p.DrMax)
	fmt.Fprintf(w, "%-40s%15.6f\n", "Maximum box displacement", p.DbMax)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", -1, "Master seed for the run (-1 picks one from the clock)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&paramsPath, "params", "", "JSON parameter file (default: read standard input)")
	runCmd.Flags().StringVar(&outDir, "out-dir", ".", "Directory for cnf.* snapshots and the run manifest")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
