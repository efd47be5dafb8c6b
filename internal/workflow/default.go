package workflow

// Python versions the test jobs fan out over.
var defaultPythons = []string{"3.7", "3.8", "3.9", "3.10"}

const installDeps = "pip install -r requirements.txt -r dev_requirements.txt"

// Default returns the built-in workflow: lint, four test jobs and the
// coverage gate, all independent, plus a notify job that aggregates
// them.
func Default() *Definition {
	jobs := []Job{
		{
			Name:   "lint",
			RunsOn: "ubuntu-latest",
			Steps: []Step{
				{Name: "Install dependencies", Run: installDeps},
				{Name: "Check style", Run: "flake8 ."},
				{Name: "Check formatting", Run: "black --check ."},
				{Name: "Build docs", Run: "invoke docs"},
			},
		},
		{
			Name:   "test",
			RunsOn: "ubuntu-latest",
			Matrix: &Matrix{Python: defaultPythons},
			Steps: []Step{
				{Name: "Install dependencies", Run: installDeps},
				{Name: "Run tests", Run: "pytest"},
			},
		},
		{
			Name:   "test-minimum-versions",
			RunsOn: "ubuntu-latest",
			Steps: []Step{
				{Name: "Pin dependencies to minimum versions", Run: "flowci pin-minimums requirements.txt optional_requirements.txt"},
				{Name: "Install dependencies", Run: installDeps},
				{Name: "Run tests", Run: "pytest"},
			},
		},
		{
			Name:   "test-windows",
			RunsOn: "windows-latest",
			Matrix: &Matrix{Python: defaultPythons},
			Steps: []Step{
				{Name: "Enable long paths", Run: "git config --system core.longpaths true"},
				{Name: "Install dependencies", Run: installDeps},
				{Name: "Run tests", Run: "pytest"},
			},
		},
		{
			Name:   "test-core-dependencies",
			RunsOn: "ubuntu-latest",
			Steps: []Step{
				{Name: "Install without extras", Run: "pip install ."},
				{Name: "Import package", Run: `python -c "import $(python setup.py --name)"`},
			},
		},
		{
			Name:   "enforce-test-coverage",
			RunsOn: "ubuntu-latest",
			Steps: []Step{
				{Name: "Install dependencies", Run: installDeps},
				{Name: "Measure coverage", Run: "pytest --cov --cov-report=json:coverage.json"},
				{Name: "Enforce thresholds", Run: "flowci coverage --report coverage.json"},
			},
		},
	}

	notify := Job{
		Name:   "notify",
		RunsOn: "ubuntu-latest",
	}
	for _, j := range jobs {
		notify.Needs = append(notify.Needs, j.Name)
	}

	return &Definition{
		Name: "CI",
		Jobs: append(jobs, notify),
	}
}
