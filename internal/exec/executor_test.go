package exec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStepCapturesOutput(t *testing.T) {
	e := New()
	out, err := e.RunStep(context.Background(), "echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestRunStepCombinesStderr(t *testing.T) {
	e := New()
	out, err := e.RunStep(context.Background(), "echo oops 1>&2; exit 3")
	assert.Error(t, err)
	assert.Contains(t, out, "oops")
}

func TestRunStepRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := New()
	_, err := e.RunStep(ctx, "echo never")
	assert.Error(t, err)
}
