package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stensonb/awshelper/lib/config"
	"github.com/stensonb/awshelper/lib/log"
	"github.com/stensonb/awshelper/lib/types"
)

// ExitError carries a non-zero exit code of the wrapped command.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with code %d", e.Code)
}

// Runner runs the wrapped command through a shell, so pipes, redirections
// and quoting typed by the caller keep working.
type Runner struct {
	Shell  string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func New(shell string) *Runner {
	return &Runner{
		Shell:  shell,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func (r *Runner) shellCommand(line string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.Command("cmd", "/C", line)
	}
	shell := r.Shell
	if shell == "" {
		shell = config.DEFAULT_SHELL
	}
	return exec.Command(shell, "-c", line)
}

// Run joins command with single spaces and runs it with env. A non-zero exit
// is returned as *ExitError. An empty command is a no-op.
func (r *Runner) Run(command []string, env []string) error {
	if len(command) == 0 {
		return nil
	}

	line := strings.Join(command, " ")
	log.Traceln("running: %s", line)

	cmd := r.shellCommand(line)
	cmd.Env = env
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if code < 0 {
				// killed by a signal
				code = 1
			}
			return &ExitError{Code: code}
		}
		return fmt.Errorf("failed to run %q: %w", line, err)
	}
	return nil
}

// Environ builds the wrapped command's environment from base: AWS_PROFILE is
// dropped so it can't select a different profile, and the credentials plus
// the AWSHELPER_* markers are set, replacing any inherited values.
func Environ(base []string, creds aws.Credentials, profile string) []string {
	overlay := append(types.CredentialEnv(creds),
		config.ENV_ACTIVE+"=1",
		config.ENV_ACTIVE_PROFILE+"="+profile,
	)

	drop := map[string]bool{config.ENV_PROFILE: true}
	for _, kv := range overlay {
		k, _, _ := strings.Cut(kv, "=")
		drop[k] = true
	}

	env := make([]string, 0, len(base)+len(overlay))
	for _, kv := range base {
		k, _, _ := strings.Cut(kv, "=")
		if drop[k] {
			continue
		}
		env = append(env, kv)
	}
	return append(env, overlay...)
}
