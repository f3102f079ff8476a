package generator

import (
	"sync/atomic"

	"github.com/spacemeshos/go-txfactory/factory"
)

// tally counts produced extrinsics by step.
type tally struct {
	steps  [factory.StakingWithdrawUnbonded + 1]atomic.Uint64
	blocks atomic.Uint64
}

func (t *tally) add(step factory.Step) {
	t.steps[step].Add(1)
}

func (t *tally) fill(report *Report) {
	report.Steps = map[string]uint64{}
	for _, step := range factory.Steps() {
		if n := t.steps[step].Load(); n > 0 {
			report.Steps[step.String()] = n
			report.Extrinsics += n
		}
	}
	report.Blocks = t.blocks.Load()
}
