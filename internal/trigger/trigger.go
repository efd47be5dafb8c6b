package trigger

import (
	"path"

	"flowci/internal/event"
)

// Rules decides whether an incoming event starts a run. Branch entries
// are exact names or globs (release-*). Cron is the single weekly
// schedule the orchestrator fires on.
type Rules struct {
	Branches []string
	Cron     string
}

// DefaultRules matches the configured workflow: pushes and pull
// requests against main, develop and release-* branches, plus a weekly
// schedule at 00:00 UTC on Thursday.
func DefaultRules() Rules {
	return Rules{
		Branches: []string{"main", "develop", "release-*"},
		Cron:     "0 0 * * 4",
	}
}

// Matches reports whether ev should produce a run. Pure decision, no
// side effects.
func (r Rules) Matches(ev *event.Event) bool {
	if ev == nil {
		return false
	}
	switch ev.Kind {
	case event.KindWorkflowDispatch:
		// manual dispatch always runs, regardless of branch
		return true
	case event.KindPush, event.KindPullRequest:
		return r.branchMatches(ev.Branch)
	case event.KindSchedule:
		// Schedule events come from the scheduler that owns our single
		// cron entry, so one without an echoed spec is trusted. When
		// the event does echo a spec it must be ours; a foreign
		// schedule never starts a run.
		return ev.Cron == "" || ev.Cron == r.Cron
	}
	return false
}

func (r Rules) branchMatches(branch string) bool {
	for _, pat := range r.Branches {
		if pat == branch {
			return true
		}
		if ok, err := path.Match(pat, branch); err == nil && ok {
			return true
		}
	}
	return false
}
