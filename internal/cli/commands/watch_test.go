package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStopCause_InterruptIsCleanStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, stopCause(ctx), "Ctrl+C must exit zero")
}

func TestStopCause_RealCausePropagates(t *testing.T) {
	ctx, cancel := context.WithCancelCause(context.Background())
	cancel(errors.New("watcher closed unexpectedly"))

	assert.EqualError(t, stopCause(ctx), "watcher closed unexpectedly")
}
