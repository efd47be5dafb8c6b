package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKnownKinds(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		kind    Kind
		branch  string
	}{
		{"push", `{"kind":"push","branch":"main","repository":"acme/toolbox"}`, KindPush, "main"},
		{"pull request", `{"kind":"pull_request","branch":"develop"}`, KindPullRequest, "develop"},
		{"schedule", `{"kind":"schedule","cron":"0 0 * * 4"}`, KindSchedule, ""},
		{"dispatch", `{"kind":"workflow_dispatch"}`, KindWorkflowDispatch, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev, err := Parse([]byte(tc.payload))
			require.NoError(t, err)
			assert.Equal(t, tc.kind, ev.Kind)
			assert.Equal(t, tc.branch, ev.Branch)
		})
	}
}

func TestParseRejectsMalformedPayloads(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"not json", `{kind: push}`},
		{"unknown kind", `{"kind":"deployment"}`},
		{"empty kind", `{}`},
		{"push without branch", `{"kind":"push"}`},
		{"pr without branch", `{"kind":"pull_request"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev, err := Parse([]byte(tc.payload))
			assert.Nil(t, ev)
			var invalid *InvalidEventError
			require.ErrorAs(t, err, &invalid)
		})
	}
}
