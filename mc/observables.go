package mc

import (
	"fmt"
	"io"
)

// Method selects how an Observable participates in averaging and in
// diagnostic reports.
type Method int

const (
	// MethodAverage accumulates a simple block/run average.
	MethodAverage Method = iota
	// MethodSuppressed keeps the observable's table column but withholds
	// its value from diagnostic output; used for the acceptance ratios
	// when evaluated outside the step loop, where they are meaningless.
	MethodSuppressed
)

// Observable is one named scalar emitted per step for averaging.
type Observable struct {
	Nam    string
	Val    float64
	Method Method
}

// Observable names. The ordering {move ratio, volume ratio, density} is
// fixed across step and diagnostic evaluation so table columns line up.
const (
	NamMoveRatio   = "Move ratio"
	NamVolumeRatio = "Volume ratio"
	NamDensity     = "Density"
)

// StepObservables computes the per-step variables of interest from the
// current state and the step's acceptance counters.
func StepObservables(n int, box, moveRatio, volRatio float64) []Observable {
	return []Observable{
		{Nam: NamMoveRatio, Val: moveRatio, Method: MethodAverage},
		{Nam: NamVolumeRatio, Val: volRatio, Method: MethodAverage},
		{Nam: NamDensity, Val: float64(n) / (box * box * box), Method: MethodAverage},
	}
}

// DiagnosticObservables computes the same ordered variable set outside the
// step loop (initial and final checks). The acceptance ratios carry a 0.0
// placeholder and are suppressed from diagnostic output.
func DiagnosticObservables(n int, box float64) []Observable {
	return []Observable{
		{Nam: NamMoveRatio, Val: 0.0, Method: MethodSuppressed},
		{Nam: NamVolumeRatio, Val: 0.0, Method: MethodSuppressed},
		{Nam: NamDensity, Val: float64(n) / (box * box * box), Method: MethodAverage},
	}
}

// WriteDiagnostic prints a captioned report of the non-suppressed
// observables in the fixed-width echo format.
func WriteDiagnostic(w io.Writer, caption string, vars []Observable) {
	fmt.Fprintln(w, caption)
	for _, v := range vars {
		if v.Method == MethodSuppressed {
			continue
		}
		fmt.Fprintf(w, "%-40s%15.6f\n", v.Nam, v.Val)
	}
}
