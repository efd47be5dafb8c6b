package workflow

import (
	"fmt"
	"strings"
)

// Instance is one concrete execution of a job after matrix expansion.
// For a job without a matrix there is exactly one instance whose name
// equals the job name.
type Instance struct {
	Job    Job
	Name   string
	Python string
	OS     string
}

// Expand produces the job's instances, one per matrix combination.
// Instance names follow the "test (3.8)" convention so every instance
// has a distinct key in the run's outcome map.
func (j Job) Expand() []Instance {
	pythons := j.Matrix.pythonValues()
	oses := j.Matrix.osValues()

	var out []Instance
	for _, osName := range oses {
		for _, py := range pythons {
			inst := Instance{Job: j, Python: py, OS: osName}
			inst.Name = instanceName(j.Name, py, osName, len(oses) > 1)
			out = append(out, inst)
		}
	}
	return out
}

// Steps returns the job's steps with matrix placeholders substituted.
// {{python}} and {{os}} expand to the instance's matrix values.
func (i Instance) Steps() []Step {
	steps := make([]Step, len(i.Job.Steps))
	for n, s := range i.Job.Steps {
		s.Run = strings.ReplaceAll(s.Run, "{{python}}", i.Python)
		s.Run = strings.ReplaceAll(s.Run, "{{os}}", i.OS)
		steps[n] = s
	}
	return steps
}

func (m *Matrix) pythonValues() []string {
	if m == nil || len(m.Python) == 0 {
		return []string{""}
	}
	return m.Python
}

func (m *Matrix) osValues() []string {
	if m == nil || len(m.OS) == 0 {
		return []string{""}
	}
	return m.OS
}

func instanceName(job, py, osName string, multiOS bool) string {
	var dims []string
	if py != "" {
		dims = append(dims, py)
	}
	if osName != "" && multiOS {
		dims = append(dims, osName)
	}
	if len(dims) == 0 {
		return job
	}
	return fmt.Sprintf("%s (%s)", job, strings.Join(dims, ", "))
}
