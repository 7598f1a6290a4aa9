package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRunIDShape(t *testing.T) {
	a := NewRunID()
	b := NewRunID()
	assert.True(t, strings.HasPrefix(a, "run-"))
	assert.Len(t, a, len("run-")+8)
	assert.NotEqual(t, a, b)
}

func TestWithRunIDReachesComponentLoggers(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Output: &buf}).WithRunID("run-1234abcd").Component("session")
	logger.Info("prompt split into %d tokens", 3)

	line := buf.String()
	assert.Contains(t, line, "run_id=run-1234abcd")
	assert.Contains(t, line, "component=session")
	assert.Contains(t, line, `msg="prompt split into 3 tokens"`)
}

func TestWithRunIDEdgeCases(t *testing.T) {
	base := New(Config{})
	assert.Same(t, base, base.WithRunID(""))

	var typedNil *SlogLogger
	assert.Nil(t, typedNil.WithRunID("run-x"))
}
