package exec

import (
	"bytes"
	"context"
	osexec "os/exec"
	"time"
)

// Executor runs step commands through a shell.
type Executor struct {
	Timeout time.Duration
}

// New returns an Executor with the default per-step timeout.
func New() *Executor {
	return &Executor{Timeout: 5 * time.Minute}
}

// RunStep executes a single step command and returns its combined
// stdout+stderr. A non-zero exit is reported through err.
func (e *Executor) RunStep(ctx context.Context, command string) (string, error) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Run the step in a shell (sh -c "cmd")
	cmd := osexec.CommandContext(ctx, "sh", "-c", command)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	return out.String(), err
}
