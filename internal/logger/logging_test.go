package logger

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewWithConfigLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "test", log.WarnLevel, false, false, log.TextFormatter)

	l.Info("hidden")
	assert.Zero(t, buf.Len())

	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "test")
}

func TestSetup(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	l := Setup("goodname", true)
	assert.Equal(t, log.DebugLevel, l.GetLevel())
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	l = Setup("goodname", false)
	assert.Equal(t, log.WarnLevel, l.GetLevel())
}
