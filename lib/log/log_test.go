package log

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"gotest.tools/v3/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })
	return &buf
}

func TestWriteln(t *testing.T) {
	buf := capture(t)

	Writeln("Logged in as %s", "arn:aws:sts::1:assumed-role/r/u")
	assert.Equal(t, buf.String(), "AWSHELPER: Logged in as arn:aws:sts::1:assumed-role/r/u\n")
}

func TestTraceln(t *testing.T) {
	buf := capture(t)
	defer func(old bool) { IsTraceEnabled = old }(IsTraceEnabled)

	IsTraceEnabled = false
	Traceln("hidden %d", 1)
	assert.Equal(t, buf.Len(), 0)

	IsTraceEnabled = true
	Traceln("shown %d", 2)
	assert.Equal(t, buf.String(), "AWSHELPER: shown 2\n")
}

func TestExit(t *testing.T) {
	buf := capture(t)

	code := -1
	logger.ExitFunc = func(c int) { code = c }
	defer func() { logger.ExitFunc = os.Exit }()

	Exit(errors.New("Profile not found: dev"))
	assert.Equal(t, code, 1)
	assert.Equal(t, buf.String(), "AWSHELPER: Profile not found: dev\n")
}
