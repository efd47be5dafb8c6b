package run

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"flowci/internal/event"
)

func TestOutcomeTerminal(t *testing.T) {
	assert.True(t, OutcomeSuccess.Terminal())
	assert.True(t, OutcomeFailure.Terminal())
	assert.True(t, OutcomeCancelled.Terminal())
	assert.False(t, OutcomeNotRun.Terminal())
	assert.False(t, Outcome("").Terminal())
}

func TestAggregateOutcome(t *testing.T) {
	r := New(&event.Event{Kind: event.KindPush, Branch: "main"})
	r.SetJob(&JobResult{Name: "lint", Outcome: OutcomeNotRun})
	r.SetJob(&JobResult{Name: "test", Outcome: OutcomeSuccess})

	assert.False(t, r.Settled())
	assert.Equal(t, OutcomeNotRun, r.Outcome())

	r.SetJob(&JobResult{Name: "lint", Outcome: OutcomeSuccess})
	assert.True(t, r.Settled())
	assert.Equal(t, OutcomeSuccess, r.Outcome())

	r.SetJob(&JobResult{Name: "test", Outcome: OutcomeFailure})
	assert.True(t, r.AnyFailure())
	assert.Equal(t, OutcomeFailure, r.Outcome())

	r.MarkCancelled()
	assert.Equal(t, OutcomeCancelled, r.Outcome())
}

func TestRunURL(t *testing.T) {
	r := New(&event.Event{Kind: event.KindSchedule})
	want := "https://github.com/acme/toolbox/actions/runs/" + r.ID
	assert.Equal(t, want, r.URL("acme/toolbox"))
}
