package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowci/internal/event"
	"flowci/internal/run"
)

func newRun(kind event.Kind, outcomes ...run.Outcome) *run.Run {
	rn := run.New(&event.Event{Kind: kind, Branch: "main"})
	for n, o := range outcomes {
		rn.SetJob(&run.JobResult{Name: string(rune('a' + n)), Outcome: o})
	}
	return rn
}

func TestGuardCombinations(t *testing.T) {
	cases := []struct {
		name string
		kind event.Kind
		jobs []run.Outcome
		want bool
	}{
		{"scheduled with failure", event.KindSchedule, []run.Outcome{run.OutcomeFailure, run.OutcomeSuccess}, true},
		{"scheduled all green", event.KindSchedule, []run.Outcome{run.OutcomeSuccess, run.OutcomeSuccess}, false},
		{"push with failure", event.KindPush, []run.Outcome{run.OutcomeFailure}, false},
		{"push all green", event.KindPush, []run.Outcome{run.OutcomeSuccess}, false},
		{"dispatch with failure", event.KindWorkflowDispatch, []run.Outcome{run.OutcomeFailure}, false},
		{"scheduled with cancelled jobs and a failure", event.KindSchedule, []run.Outcome{run.OutcomeCancelled, run.OutcomeFailure}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Guard(newRun(tc.kind, tc.jobs...)))
		})
	}
}

func TestGuardCancelledRun(t *testing.T) {
	rn := newRun(event.KindSchedule, run.OutcomeFailure)
	rn.MarkCancelled()
	assert.False(t, Guard(rn))
}

func TestNotifySendsExactlyOnePayload(t *testing.T) {
	var calls atomic.Int32
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		body, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	n := &Notifier{WebhookURL: srv.URL, Repository: "acme/toolbox", Client: srv.Client()}
	rn := newRun(event.KindSchedule, run.OutcomeFailure, run.OutcomeSuccess)
	n.Notify(context.Background(), rn)

	require.Equal(t, int32(1), calls.Load())
	var p payload
	require.NoError(t, json.Unmarshal(body, &p))
	assert.True(t, p.Failed)
	assert.Equal(t, rn.URL("acme/toolbox"), p.RunURL)
	assert.Contains(t, p.Text, p.RunURL)
}

func TestNotifySilentWhenGuardFails(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	n := &Notifier{WebhookURL: srv.URL, Repository: "acme/toolbox", Client: srv.Client()}
	n.Notify(context.Background(), newRun(event.KindPush, run.OutcomeFailure))
	n.Notify(context.Background(), newRun(event.KindSchedule, run.OutcomeSuccess))

	assert.Equal(t, int32(0), calls.Load())
}

func TestNotifySwallowsDeliveryErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // unreachable webhook

	n := &Notifier{WebhookURL: srv.URL, Repository: "acme/toolbox"}
	// must not panic or block; the run outcome is unaffected
	rn := newRun(event.KindSchedule, run.OutcomeFailure)
	n.Notify(context.Background(), rn)
	assert.Equal(t, run.OutcomeFailure, rn.Outcome())
}
