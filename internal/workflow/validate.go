package workflow

import "fmt"

// Validate checks the structural invariants of a definition: job names
// are unique and non-empty, guard expressions are known, every name in
// a Needs list refers to a declared job, and at most one job — the
// aggregator — has dependencies, on every other job in the set.
func (d *Definition) Validate() error {
	if len(d.Jobs) == 0 {
		return fmt.Errorf("workflow %q has no jobs", d.Name)
	}
	names := make(map[string]bool, len(d.Jobs))
	dependents := 0
	for _, j := range d.Jobs {
		if j.Name == "" {
			return fmt.Errorf("workflow %q has a job without a name", d.Name)
		}
		if names[j.Name] {
			return fmt.Errorf("duplicate job name %q", j.Name)
		}
		names[j.Name] = true
		if !validGuard(j.If) {
			return fmt.Errorf("job %q has unknown guard %q", j.Name, j.If)
		}
		for _, s := range j.Steps {
			if !validGuard(s.If) {
				return fmt.Errorf("job %q step %q has unknown guard %q", j.Name, s.Name, s.If)
			}
		}
		if len(j.Needs) > 0 {
			dependents++
		}
	}
	if dependents > 1 {
		return fmt.Errorf("only one job may depend on other jobs, found %d", dependents)
	}
	for _, j := range d.Jobs {
		if len(j.Needs) == 0 {
			continue
		}
		needed := make(map[string]bool, len(j.Needs))
		for _, dep := range j.Needs {
			if dep == j.Name {
				return fmt.Errorf("job %q depends on itself", j.Name)
			}
			if !names[dep] {
				return fmt.Errorf("job %q needs unknown job %q", j.Name, dep)
			}
			needed[dep] = true
		}
		// the aggregator must observe the whole job set
		for name := range names {
			if name != j.Name && !needed[name] {
				return fmt.Errorf("job %q must depend on every other job, missing %q", j.Name, name)
			}
		}
	}
	return nil
}
