package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Everything goes to stderr: stdout belongs to the wrapped command and to
// the credential_process document.
var logger = &logrus.Logger{
	Out:       os.Stderr,
	Formatter: &prefixFormatter{prefix: "AWSHELPER: "},
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.InfoLevel,
	ExitFunc:  os.Exit,
}

var IsTraceEnabled = false

type prefixFormatter struct {
	prefix string
}

func (f *prefixFormatter) Format(e *logrus.Entry) ([]byte, error) {
	return []byte(f.prefix + e.Message + "\n"), nil
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

func Writeln(format string, msg ...interface{}) {
	logger.Infof(format, msg...)
}

func Traceln(format string, msg ...interface{}) {
	if IsTraceEnabled {
		logger.Infof(format, msg...)
	}
}

// Exit prints err and terminates the process with exit code 1.
func Exit(err error) {
	logger.Fatal(err)
}
