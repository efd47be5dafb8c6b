package workflow

// Definition is the whole workflow: a fixed set of jobs that fan out
// from one trigger. Jobs are mutually independent; the only ordering is
// the aggregator job's Needs list.
type Definition struct {
	Name string `yaml:"name"`
	Jobs []Job  `yaml:"jobs"`
}

// Job is a named unit of steps. A job with a Matrix expands into one
// instance per matrix value; a job with Needs runs only after every
// listed job reached a terminal outcome. If is a guard evaluated
// against the job's dependency outcomes before any step runs.
type Job struct {
	Name   string   `yaml:"name"`
	RunsOn string   `yaml:"runs-on,omitempty"`
	Needs  []string `yaml:"needs,omitempty"`
	If     string   `yaml:"if,omitempty"`
	Matrix *Matrix  `yaml:"matrix,omitempty"`
	Steps  []Step   `yaml:"steps,omitempty"`
}

// Step is a single shell command inside a job. If is a guard evaluated
// against the job's state so far; the empty guard is success().
type Step struct {
	Name string `yaml:"name,omitempty"`
	Run  string `yaml:"run"`
	If   string `yaml:"if,omitempty"`
}

// Matrix parameterizes a job over interpreter versions and operating
// systems. Empty dimensions are skipped.
type Matrix struct {
	Python []string `yaml:"python,omitempty"`
	OS     []string `yaml:"os,omitempty"`
}

// JobNames returns the declared job names in definition order.
func (d *Definition) JobNames() []string {
	names := make([]string, 0, len(d.Jobs))
	for _, j := range d.Jobs {
		names = append(names, j.Name)
	}
	return names
}
