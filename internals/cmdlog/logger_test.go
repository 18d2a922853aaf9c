package cmdlog

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)
	logger.Debug("hidden")
	assert.Zero(t, buf.Len())

	logger.Info("shown")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	verbose := New(&buf, true)
	verbose.Debug("details")
	assert.Contains(t, buf.String(), "details")
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	NewProgress(New(&buf, false)).Done("installed 3 mods")
	assert.Contains(t, buf.String(), "installed 3 mods (")
}

func TestContextLogger(t *testing.T) {
	logger := New(&bytes.Buffer{}, false)
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
	assert.Same(t, log.Default(), FromContext(context.Background()))
}
