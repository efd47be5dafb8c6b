package runner

import (
	"context"
	"sync"

	"flowci/internal/exec"
	"flowci/internal/logging"
	"flowci/internal/notify"
	"flowci/internal/run"
	"flowci/internal/storage"
	"flowci/internal/workflow"
)

// Runner ties together the executor, log storage and notifier. It fans
// a workflow's independent jobs out in parallel, records a terminal
// outcome for every job instance, and hands the settled run to the
// aggregator.
type Runner struct {
	Executor *exec.Executor
	Logs     *storage.LogStore
	Notifier *notify.Notifier
	Log      *logging.Logger
}

// New returns a Runner with a default executor and no log storage.
func New() *Runner {
	return &Runner{
		Executor: exec.New(),
		Log:      logging.NewLogger(),
	}
}

// Execute runs the workflow and records everything into rn.
// Jobs without dependencies run concurrently and independently; a step
// failure aborts only its own job. The aggregator evaluates strictly
// after every dependency outcome is terminal.
func (r *Runner) Execute(ctx context.Context, def *workflow.Definition, rn *run.Run) error {
	if err := def.Validate(); err != nil {
		return err
	}

	var units []workflow.Instance
	var aggregators []workflow.Job
	for _, job := range def.Jobs {
		if len(job.Needs) > 0 {
			aggregators = append(aggregators, job)
			rn.SetJob(&run.JobResult{Name: job.Name, Outcome: run.OutcomeNotRun})
			continue
		}
		for _, inst := range job.Expand() {
			// populate the outcome map before fan-out
			rn.SetJob(&run.JobResult{Name: inst.Name, Outcome: run.OutcomeNotRun})
			units = append(units, inst)
		}
	}

	var wg sync.WaitGroup
	for _, inst := range units {
		wg.Add(1)
		go func(inst workflow.Instance) {
			defer wg.Done()
			rn.SetJob(r.runJob(ctx, rn, inst, false))
		}(inst)
	}
	wg.Wait()

	if ctx.Err() != nil {
		rn.MarkCancelled()
	}

	// Every dependency outcome is terminal here; cancelled counts as
	// terminal. The notification is per-run, not per-job: evaluate the
	// guard exactly once, before any aggregator step runs, so only
	// dependency outcomes feed it. Delivery problems never fail the
	// run.
	if r.Notifier != nil {
		r.Notifier.Notify(context.WithoutCancel(ctx), rn)
	}

	for _, agg := range aggregators {
		inst := workflow.Instance{Job: agg, Name: agg.Name}
		rn.SetJob(r.runJob(ctx, rn, inst, rn.AnyFailure()))
	}

	if r.Log != nil {
		r.Log.Info("run %s finished: %s", rn.ID, rn.Outcome())
	}
	return nil
}

// runJob executes one job instance fail-fast: the first non-zero step
// marks the job failed and skips every later step whose guard needs
// success. depsFailed feeds the job-level guard; an unsatisfied job
// guard skips all steps and counts as silent success.
func (r *Runner) runJob(ctx context.Context, rn *run.Run, inst workflow.Instance, depsFailed bool) *run.JobResult {
	res := &run.JobResult{Name: inst.Name}

	if !workflow.EvalGuard(inst.Job.If, depsFailed) {
		res.Outcome = run.OutcomeSuccess
		for _, step := range inst.Steps() {
			res.Steps = append(res.Steps, run.StepResult{Name: step.Name, Command: step.Run, Skipped: true})
		}
		return res
	}

	failed := false
	cancelled := false

	for _, step := range inst.Steps() {
		sr := run.StepResult{Name: step.Name, Command: step.Run}
		if cancelled || ctx.Err() != nil {
			cancelled = true
			sr.Skipped = true
			res.Steps = append(res.Steps, sr)
			continue
		}
		if !workflow.EvalGuard(step.If, failed) {
			sr.Skipped = true
			res.Steps = append(res.Steps, sr)
			continue
		}

		output, err := r.Executor.RunStep(ctx, step.Run)
		sr.Output = output
		if err != nil {
			sr.Error = err.Error()
			if ctx.Err() != nil {
				cancelled = true
			} else {
				failed = true
			}
		}
		res.Steps = append(res.Steps, sr)

		if r.Logs != nil {
			if _, lerr := r.Logs.Save(rn.ID, inst.Name, step.Name, output); lerr != nil && r.Log != nil {
				r.Log.Error("cannot save log for %s: %v", inst.Name, lerr)
			}
		}
	}

	switch {
	case failed:
		res.Outcome = run.OutcomeFailure
	case cancelled:
		res.Outcome = run.OutcomeCancelled
	default:
		res.Outcome = run.OutcomeSuccess
	}
	return res
}
