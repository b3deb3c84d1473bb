package mc

// Statistics accumulates block and run averages over the simulation's
// observables. The driver calls the methods strictly in the order
// RunBegin, then per block BlkBegin / BlkAdd.. / BlkEnd, then RunEnd.
type Statistics interface {
	// RunBegin starts a run. The variable list fixes the set and order of
	// observables for the whole run; values passed here are not averaged.
	RunBegin(vars []Observable)

	// BlkBegin starts a fresh block.
	BlkBegin()

	// BlkAdd accumulates one step's observables into the open block.
	BlkAdd(vars []Observable)

	// BlkEnd closes the block and reports its averages.
	BlkEnd(blk int)

	// RunEnd closes the run and reports run averages and error estimates.
	RunEnd()
}

// Summary is one observable's run-level result.
type Summary struct {
	Nam  string  `yaml:"name"`
	Mean float64 `yaml:"mean"`
	Err  float64 `yaml:"error"`
}
