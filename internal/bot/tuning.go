package bot

import "runtime"

// Tuning controls how the selector spreads scoring work.
type Tuning struct {
	// Workers bounds concurrent scoring goroutines. Zero or less uses GOMAXPROCS.
	Workers int
}

// DefaultTuning scores with one worker per available CPU.
var DefaultTuning = Tuning{}

func (t Tuning) workers() int {
	if t.Workers > 0 {
		return t.Workers
	}
	return runtime.GOMAXPROCS(0)
}
