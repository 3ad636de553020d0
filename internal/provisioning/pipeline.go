package provisioning

import (
	"fmt"
	"time"
)

// RunPhases executes phases sequentially and stamps the report when done.
// It stops at the first phase that returns an error.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	err := runPhases(ctx, phases)
	ctx.Report.Finish(err)
	if err == nil {
		ctx.Observer.Printf("Completed in %v", time.Since(start).Round(time.Millisecond))
	}
	return err
}

func runPhases(ctx *Context, phases []Phase) error {
	for _, phase := range phases {
		phaseStart := time.Now()
		LogPhaseStart(ctx.Observer, phase.Name())

		if err := phase.Provision(ctx); err != nil {
			LogPhaseFailed(ctx.Observer, phase.Name(), err)
			return fmt.Errorf("%s stage failed: %w", phase.Name(), err)
		}

		LogPhaseComplete(ctx.Observer, phase.Name(), time.Since(phaseStart))
	}
	return nil
}
