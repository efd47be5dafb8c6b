package trigger

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MatchesTime reports whether the configured cron spec fires at t,
// matched to the minute in UTC. The spec is the usual five-field form
// (minute hour day-of-month month day-of-week, 0 = Sunday); fields are
// "*", a number, or a comma list of numbers. Returns an error for a
// spec that does not have five fields or has a non-numeric entry.
func (r Rules) MatchesTime(t time.Time) (bool, error) {
	fields := strings.Fields(r.Cron)
	if len(fields) != 5 {
		return false, fmt.Errorf("cron spec %q: want 5 fields, got %d", r.Cron, len(fields))
	}
	t = t.UTC()
	values := []int{
		t.Minute(),
		t.Hour(),
		t.Day(),
		int(t.Month()),
		int(t.Weekday()),
	}
	for i, field := range fields {
		ok, err := cronFieldMatches(field, values[i])
		if err != nil {
			return false, fmt.Errorf("cron spec %q: %w", r.Cron, err)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func cronFieldMatches(field string, value int) (bool, error) {
	if field == "*" {
		return true, nil
	}
	for _, part := range strings.Split(field, ",") {
		n, err := strconv.Atoi(part)
		if err != nil {
			return false, fmt.Errorf("bad field %q", field)
		}
		if n == value {
			return true, nil
		}
	}
	return false, nil
}
