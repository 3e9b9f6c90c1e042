package optimizer

import (
	"github.com/hassan/anvil/internal/ir"
	"github.com/tliron/commonlog"
)

// Pass is one optimization pass that can be applied to a Function.
// Passes stay independently testable, reorderable, and composable.
// The canonical pipeline (Optimizer.Run) does not dispatch through
// this interface for DSE/DCE themselves (it calls RunDSE/RunDCE
// directly to get precise changed-flags); Pass exists so a caller can
// AddPass a custom pass onto an Optimizer.
type Pass interface {
	Name() string
	Run(fn *ir.Function) error
}

// Optimizer coordinates the canonical DSE→DCE pipeline according to
// its Config, plus any extra passes a caller appends.
type Optimizer struct {
	config Config
	extra  []Pass
	log    commonlog.Logger
}

// New creates an Optimizer from the given Config.
func New(config Config) *Optimizer {
	return &Optimizer{config: config, log: commonlog.GetLogger("anvil.optimizer")}
}

// AddPass appends a custom pass, run once after the canonical
// DSE/DCE pipeline completes (each iteration, at LevelFixpoint).
func (o *Optimizer) AddPass(p Pass) {
	o.extra = append(o.extra, p)
}

// Run executes the pipeline on fn and returns whether anything
// changed, plus run statistics.
//
// At LevelNone, nothing runs. At LevelConservative, DSE then DCE each
// run exactly once. At LevelFixpoint, DSE→DCE (plus any extra passes)
// repeats until a full round changes nothing or MaxIterations is
// reached, so a store exposed by one round's dead-code removal still
// gets eliminated rather than relying on a single pass happening to
// suffice.
func (o *Optimizer) Run(fn *ir.Function) (bool, *Stats) {
	stats := newStats()
	if fn == nil || o.config.Level == LevelNone {
		return false, stats
	}

	changed := false
	iterations := o.config.MaxIterations
	if o.config.Level == LevelConservative {
		iterations = 1
	}
	if iterations < 1 {
		iterations = 1
	}

	for iter := 0; iter < iterations; iter++ {
		roundChanged := false

		storesRewritten := countNops(fn)
		stats.PassExecutions[DSEPass{}.Name()]++
		if RunDSE(fn) {
			roundChanged = true
		}
		storesRewritten = countNops(fn) - storesRewritten
		stats.StoresRewritten += storesRewritten
		if o.config.Verbose {
			o.log.Infof("%s: rewrote %d store(s) to nop (iteration %d)", DSEPass{}.Name(), storesRewritten, iter)
		}

		before := countInstructions(fn)
		stats.PassExecutions[DCEPass{}.Name()]++
		if RunDCE(fn) {
			roundChanged = true
		}
		removed := before - countInstructions(fn)
		stats.InstructionsRemoved += removed
		if o.config.Verbose {
			o.log.Infof("%s: removed %d instruction(s) (iteration %d)", DCEPass{}.Name(), removed, iter)
		}

		for _, p := range o.extra {
			stats.PassExecutions[p.Name()]++
			if err := p.Run(fn); err != nil {
				if o.config.Verbose {
					o.log.Errorf("pass %s failed: %v", p.Name(), err)
				}
				continue
			}
		}

		if roundChanged {
			changed = true
		}
		if o.config.Level == LevelConservative || !roundChanged {
			break
		}
	}

	return changed, stats
}

func countInstructions(fn *ir.Function) int {
	n := 0
	for b := fn.Entry; b != nil; b = b.Next {
		for i := b.First; i != nil; i = i.Next {
			n++
		}
	}
	return n
}

func countNops(fn *ir.Function) int {
	n := 0
	for b := fn.Entry; b != nil; b = b.Next {
		for i := b.First; i != nil; i = i.Next {
			if i.Op == ir.NOP {
				n++
			}
		}
	}
	return n
}
