package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// Runner executes one command line and returns its standard output.
type Runner interface {
	Run(ctx context.Context, command string) ([]byte, error)
}

// CommandRunner hands the command line to the platform shell, the same way a
// user typing it at a prompt would.
type CommandRunner struct {
	shell []string
}

// NewCommandRunner returns a runner for the given shell prefix. An empty
// prefix selects "cmd /C" on Windows and "sh -c" elsewhere.
func NewCommandRunner(shell string) *CommandRunner {
	if fields := strings.Fields(shell); len(fields) > 0 {
		return &CommandRunner{shell: fields}
	}
	if runtime.GOOS == "windows" {
		return &CommandRunner{shell: []string{"cmd", "/C"}}
	}
	return &CommandRunner{shell: []string{"sh", "-c"}}
}

const waitDelay = time.Second

func (r *CommandRunner) Run(ctx context.Context, command string) ([]byte, error) {
	args := append(append([]string{}, r.shell[1:]...), command)
	cmd := exec.CommandContext(ctx, r.shell[0], args...)
	// children of the shell can hold the output pipes open after it is killed
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return stdout.Bytes(), fmt.Errorf("command %q stopped: %w", command, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// netstat and taskkill still print useful text on non-zero exit
			msg := strings.TrimSpace(DecodeWindows1252(stderr.Bytes()))
			return stdout.Bytes(), fmt.Errorf("command %q exited with code %d: %s", command, exitErr.ExitCode(), msg)
		}
		return nil, fmt.Errorf("failed to run %q: %w", command, err)
	}

	return stdout.Bytes(), nil
}

// RunText runs the command and decodes its output as Windows-1252.
func RunText(ctx context.Context, r Runner, command string) (string, error) {
	output, err := r.Run(ctx, command)
	return DecodeWindows1252(output), err
}

// WithTimeout bounds every Run of r. A non-positive timeout returns r as is.
func WithTimeout(r Runner, timeout time.Duration) Runner {
	if timeout <= 0 {
		return r
	}
	return &timeoutRunner{next: r, timeout: timeout}
}

type timeoutRunner struct {
	next    Runner
	timeout time.Duration
}

func (r *timeoutRunner) Run(ctx context.Context, command string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.next.Run(ctx, command)
}
