package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"flowci/internal/event"
	"flowci/internal/logging"
	"flowci/internal/run"
)

// Guard reports whether a finished run warrants a notification: the
// run itself was not cancelled, it was started by the weekly schedule,
// and at least one job failed. Push, pull request and manual dispatch
// failures stay visible only in the run status, on purpose.
func Guard(rn *run.Run) bool {
	if rn == nil || rn.Cancelled() {
		return false
	}
	if rn.Event == nil || rn.Event.Kind != event.KindSchedule {
		return false
	}
	return rn.AnyFailure()
}

// payload is the JSON body posted to the incoming-webhook endpoint.
type payload struct {
	Text   string `json:"text"`
	Failed bool   `json:"failed"`
	RunURL string `json:"run_url"`
}

// Notifier sends at most one Slack message per run. The webhook URL is
// a secret supplied through the environment.
type Notifier struct {
	WebhookURL string
	Repository string
	Client     *http.Client
	Log        *logging.Logger
}

// Notify evaluates the guard and, if it passes, sends exactly one
// webhook message. Delivery failures are logged and swallowed: they
// are never retried and never change the run's outcome.
func (n *Notifier) Notify(ctx context.Context, rn *run.Run) {
	if !Guard(rn) {
		return
	}
	url := rn.URL(n.Repository)
	body, err := json.Marshal(payload{
		Text:   fmt.Sprintf("*Scheduled CI run failed.* <%s|View the run>", url),
		Failed: rn.AnyFailure(),
		RunURL: url,
	})
	if err != nil {
		n.logError("cannot encode notification: %v", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.WebhookURL, bytes.NewReader(body))
	if err != nil {
		n.logError("cannot build notification request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client().Do(req)
	if err != nil {
		n.logError("notification delivery failed: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		n.logError("notification rejected: %s", resp.Status)
	}
}

func (n *Notifier) client() *http.Client {
	if n.Client != nil {
		return n.Client
	}
	return &http.Client{Timeout: 10 * time.Second}
}

func (n *Notifier) logError(format string, args ...interface{}) {
	if n.Log != nil {
		n.Log.Error(format, args...)
	}
}
