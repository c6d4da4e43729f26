// Package runner executes external commands synchronously, echoing
// their output through a line sink and converting non-zero exits into
// structured errors.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/danewalkr/django-bootstrapper/internal/logging"
)

// LineSink receives progress lines as a command produces output.
// Implementations must tolerate being called from the goroutine that
// runs the command; no particular thread affinity is assumed.
type LineSink func(line string)

// Runner executes a single external command to completion.
type Runner interface {
	// Run executes name with args in dir (empty dir means the current
	// directory), forwards output lines to sink, and returns captured
	// stdout trimmed of trailing whitespace. A non-zero exit status is
	// returned as a *CommandError. There are no retries.
	Run(ctx context.Context, dir string, sink LineSink, name string, args ...string) (string, error)
}

// CommandError describes a command that exited with a non-zero status.
type CommandError struct {
	Name     string
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
}

// Message returns the captured stderr text, falling back to stdout
// when stderr is empty.
func (e *CommandError) Message() string {
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		return msg
	}
	return strings.TrimSpace(e.Stdout)
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s %s: exit status %d: %s",
		e.Name, strings.Join(e.Args, " "), e.ExitCode, e.Message())
}

// execRunner runs commands through os/exec.
type execRunner struct {
	logger *slog.Logger
}

// New creates a Runner. A nil logger discards log records.
func New(logger *slog.Logger) Runner {
	if logger == nil {
		logger = logging.Discard()
	}
	return &execRunner{logger: logger}
}

// Run executes the command and relays its stdout line by line. Lines
// are relayed after the command completes; callers only rely on order,
// not on real-time delivery.
func (r *execRunner) Run(ctx context.Context, dir string, sink LineSink, name string, args ...string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("look up %s: %w", name, err)
	}

	if sink != nil {
		sink("→ " + name + " " + strings.Join(args, " "))
	}
	r.logger.Info("running command", "name", name, "args", args, "dir", dir)

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "LC_ALL=C")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if sink != nil {
		for line := range strings.SplitSeq(stdout.String(), "\n") {
			if strings.TrimSpace(line) != "" {
				sink("   " + line)
			}
		}
	}

	if runErr != nil {
		cmdErr := &CommandError{
			Name:     name,
			Args:     args,
			ExitCode: -1,
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
		}
		if state := cmd.ProcessState; state != nil {
			cmdErr.ExitCode = state.ExitCode()
		}
		r.logger.Error("command failed",
			"name", name,
			"exit", cmdErr.ExitCode,
			"stderr", strings.TrimSpace(stderr.String()),
		)
		return "", cmdErr
	}

	return strings.TrimRight(stdout.String(), " \t\r\n"), nil
}
