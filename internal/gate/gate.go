package gate

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
)

// Coverage thresholds, in percent. Both checks are boundary-inclusive:
// a value equal to the minimum passes.
const (
	CoverageSingle = 0
	CoverageTotal  = 27
)

// DefaultExcludes are paths whose coverage is not enforced.
var DefaultExcludes = []string{
	"examples/*",
	"doc_src/*",
	"tests/*",
	"install.py",
	"setup.py",
	"tasks.py",
}

// Report is a coverage measurement: percent covered per file plus the
// total percent.
type Report struct {
	Files map[string]float64 `json:"files"`
	Total float64            `json:"total"`
}

// ParseReport decodes a JSON coverage report.
func ParseReport(data []byte) (*Report, error) {
	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("cannot parse coverage report: %w", err)
	}
	return &rep, nil
}

// LoadReport reads and decodes a coverage report file.
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseReport(data)
}

// Violation is one violated threshold. File is empty for the total
// threshold.
type Violation struct {
	Threshold string // "single" or "total"
	File      string
	Got       float64
	Want      float64
}

func (v Violation) String() string {
	if v.Threshold == "total" {
		return fmt.Sprintf("total coverage %.1f%% is below the required minimum of %.0f%%", v.Got, v.Want)
	}
	return fmt.Sprintf("coverage of %s is %.1f%%, below the per-file minimum of %.0f%%", v.File, v.Got, v.Want)
}

// Gate compares a coverage report against the configured thresholds.
type Gate struct {
	Single   float64
	Total    float64
	Excludes []string
}

// New returns a Gate with the configured defaults.
func New() Gate {
	return Gate{
		Single:   CoverageSingle,
		Total:    CoverageTotal,
		Excludes: DefaultExcludes,
	}
}

// Check evaluates both thresholds independently and returns one
// violation per failed check, per-file violations first. An empty
// result means the gate passes.
func (g Gate) Check(rep *Report) []Violation {
	var out []Violation

	files := make([]string, 0, len(rep.Files))
	for file := range rep.Files {
		files = append(files, file)
	}
	sort.Strings(files)
	for _, file := range files {
		if g.excluded(file) {
			continue
		}
		if pct := rep.Files[file]; pct < g.Single {
			out = append(out, Violation{Threshold: "single", File: file, Got: pct, Want: g.Single})
		}
	}

	if rep.Total < g.Total {
		out = append(out, Violation{Threshold: "total", Got: rep.Total, Want: g.Total})
	}
	return out
}

func (g Gate) excluded(file string) bool {
	for _, pat := range g.Excludes {
		if ok, err := path.Match(pat, file); err == nil && ok {
			return true
		}
		// directory patterns cover nested files too
		if strings.HasSuffix(pat, "/*") && strings.HasPrefix(file, strings.TrimSuffix(pat, "*")) {
			return true
		}
	}
	return false
}
