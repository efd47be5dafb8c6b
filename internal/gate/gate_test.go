package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundariesAreInclusive(t *testing.T) {
	g := New()
	rep := &Report{
		Files: map[string]float64{
			"toolbox/client.py": 0,
			"toolbox/jobs.py":   0,
		},
		Total: 27,
	}
	assert.Empty(t, g.Check(rep))
}

func TestTotalBelowThreshold(t *testing.T) {
	g := New()
	rep := &Report{
		Files: map[string]float64{"toolbox/client.py": 80},
		Total: 26.9,
	}
	violations := g.Check(rep)
	require.Len(t, violations, 1)
	assert.Equal(t, "total", violations[0].Threshold)
	assert.Contains(t, violations[0].String(), "total coverage 26.9%")
	assert.Contains(t, violations[0].String(), "27%")
}

func TestPerFileViolationsReportedSeparately(t *testing.T) {
	g := Gate{Single: 50, Total: 27}
	rep := &Report{
		Files: map[string]float64{
			"toolbox/a.py": 10,
			"toolbox/b.py": 90,
			"toolbox/c.py": 20,
		},
		Total: 26,
	}
	violations := g.Check(rep)
	require.Len(t, violations, 3)
	assert.Equal(t, Violation{Threshold: "single", File: "toolbox/a.py", Got: 10, Want: 50}, violations[0])
	assert.Equal(t, Violation{Threshold: "single", File: "toolbox/c.py", Got: 20, Want: 50}, violations[1])
	assert.Equal(t, "total", violations[2].Threshold)
}

func TestExcludedPathsAreIgnored(t *testing.T) {
	g := Gate{Single: 50, Total: 0, Excludes: DefaultExcludes}
	rep := &Report{
		Files: map[string]float64{
			"examples/demo.py":     0,
			"doc_src/conf.py":      0,
			"tests/test_client.py": 0,
			"tests/unit/test_a.py": 0,
			"setup.py":             0,
			"tasks.py":             0,
			"install.py":           0,
		},
		Total: 100,
	}
	assert.Empty(t, g.Check(rep))
}

func TestParseReport(t *testing.T) {
	rep, err := ParseReport([]byte(`{"files":{"a.py":12.5},"total":33.3}`))
	require.NoError(t, err)
	assert.Equal(t, 12.5, rep.Files["a.py"])
	assert.Equal(t, 33.3, rep.Total)

	_, err = ParseReport([]byte("not json"))
	assert.Error(t, err)
}
