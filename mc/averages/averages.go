// Package averages accumulates block and run statistics over the
// simulation's observables and renders the fixed-width report table.
// Block means are the primary samples; run averages and their standard
// errors are computed over the block-mean series, so correlations within
// a block never leak into the error bars.
package averages

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/hardsphere-sim/hardsphere-sim/mc"
)

// Column layout. The label column is sized so "Run averages" fills it
// exactly and the value columns stay aligned across every row.
const (
	labelWidth = 12
	valueWidth = 15
)

// Accumulator implements mc.Statistics over an injected writer. The
// caller drives it in the fixed order RunBegin, then per block
// BlkBegin / BlkAdd.. / BlkEnd, then RunEnd; calls out of order are
// logged and dropped.
type Accumulator struct {
	w io.Writer

	names  []string
	blkSum []float64
	blkNrm float64

	series  [][]float64 // per-variable block means, in block order
	summary []mc.Summary
}

// NewAccumulator returns an accumulator reporting to w.
func NewAccumulator(w io.Writer) *Accumulator {
	return &Accumulator{w: w}
}

// RunBegin fixes the variable set for the run and prints the table
// headings. Values in vars are ignored; only the names matter here.
func (a *Accumulator) RunBegin(vars []mc.Observable) {
	a.names = make([]string, len(vars))
	for i, v := range vars {
		a.names[i] = v.Nam
	}
	a.blkSum = make([]float64, len(vars))
	a.series = make([][]float64, len(vars))
	a.summary = nil

	fmt.Fprintln(a.w, "Run begins")
	fmt.Fprintln(a.w)
	fmt.Fprintf(a.w, "%*s", labelWidth, "Block")
	for _, nam := range a.names {
		fmt.Fprintf(a.w, "%*s", valueWidth, nam)
	}
	fmt.Fprintln(a.w)
}

// BlkBegin zeroes the block accumulators.
func (a *Accumulator) BlkBegin() {
	if a.names == nil {
		logrus.Errorf("averages: block started before run")
		return
	}
	for i := range a.blkSum {
		a.blkSum[i] = 0.0
	}
	a.blkNrm = 0.0
}

// BlkAdd folds one step's observables into the open block.
func (a *Accumulator) BlkAdd(vars []mc.Observable) {
	if len(vars) != len(a.blkSum) {
		logrus.Errorf("averages: observable count changed mid-run: got %d, want %d", len(vars), len(a.blkSum))
		return
	}
	for i, v := range vars {
		a.blkSum[i] += v.Val
	}
	a.blkNrm++
}

// BlkEnd prints the block's mean row and records it in the run series.
func (a *Accumulator) BlkEnd(blk int) {
	if a.blkNrm <= 0 {
		logrus.Errorf("averages: block %d closed without samples", blk)
		return
	}
	fmt.Fprintf(a.w, "%*d", labelWidth, blk)
	for i, sum := range a.blkSum {
		mean := sum / a.blkNrm
		a.series[i] = append(a.series[i], mean)
		fmt.Fprintf(a.w, "%*.6f", valueWidth, mean)
	}
	fmt.Fprintln(a.w)
}

// RunEnd prints the run average and standard error rows and freezes the
// summary returned by RunAverages.
func (a *Accumulator) RunEnd() {
	if a.names == nil {
		logrus.Errorf("averages: run ended before it began")
		return
	}
	a.summary = make([]mc.Summary, len(a.names))
	for i, nam := range a.names {
		blocks := a.series[i]
		s := mc.Summary{Nam: nam}
		if len(blocks) > 0 {
			s.Mean = stat.Mean(blocks, nil)
		}
		if len(blocks) > 1 {
			s.Err = stat.StdErr(stat.StdDev(blocks, nil), float64(len(blocks)))
		}
		a.summary[i] = s
	}

	fmt.Fprintln(a.w)
	fmt.Fprintln(a.w, "Run ends")
	fmt.Fprintln(a.w)
	fmt.Fprintf(a.w, "%-*s", labelWidth, "Run averages")
	for _, s := range a.summary {
		fmt.Fprintf(a.w, "%*.6f", valueWidth, s.Mean)
	}
	fmt.Fprintln(a.w)
	fmt.Fprintf(a.w, "%-*s", labelWidth, "Run errors")
	for _, s := range a.summary {
		fmt.Fprintf(a.w, "%*.6f", valueWidth, s.Err)
	}
	fmt.Fprintln(a.w)
}

// RunAverages returns the per-variable run means and standard errors.
// It is nil until RunEnd has been called.
func (a *Accumulator) RunAverages() []mc.Summary {
	return a.summary
}
