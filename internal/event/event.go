package event

import (
	"encoding/json"
	"fmt"
)

// Kind identifies which kind of repository event requested a run.
type Kind string

const (
	KindSchedule         Kind = "schedule"
	KindPush             Kind = "push"
	KindPullRequest      Kind = "pull_request"
	KindWorkflowDispatch Kind = "workflow_dispatch"
)

// Event is a single incoming repository event.
// Branch is the target branch for push and pull_request events.
// Cron carries the schedule spec that fired a schedule event, if the
// sender includes one.
type Event struct {
	Kind       Kind   `json:"kind"`
	Branch     string `json:"branch,omitempty"`
	Repository string `json:"repository,omitempty"`
	Cron       string `json:"cron,omitempty"`
}

// InvalidEventError reports a malformed event payload. A run is never
// created for an invalid event.
type InvalidEventError struct {
	Reason string
}

func (e *InvalidEventError) Error() string {
	return "invalid event: " + e.Reason
}

// Parse decodes an event payload and checks it is well formed.
func Parse(data []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, &InvalidEventError{Reason: err.Error()}
	}
	switch ev.Kind {
	case KindSchedule, KindWorkflowDispatch:
		// branch is irrelevant for these
	case KindPush, KindPullRequest:
		if ev.Branch == "" {
			return nil, &InvalidEventError{Reason: fmt.Sprintf("%s event without a branch", ev.Kind)}
		}
	default:
		return nil, &InvalidEventError{Reason: fmt.Sprintf("unknown event kind %q", ev.Kind)}
	}
	return &ev, nil
}
