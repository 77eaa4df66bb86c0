// Package process executes worker subprocesses with guaranteed teardown.
//
// Cancelling the context sends SIGTERM to the whole process group, then
// SIGKILL after the grace period, so a cold worker can never outlive its
// job. Stdout and stderr are captured in full.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/skillsenselab/whisperd/logger"
)

// Run executes a subprocess and waits for it to terminate. The returned
// Outcome is non-nil whenever the process was started, including on timeout
// and cancellation, so callers can inspect captured stderr.
func Run(ctx context.Context, cmd Command) (*Outcome, error) {
	if cmd.Binary == "" {
		return nil, fmt.Errorf("process: binary is required")
	}

	gracePeriod := cmd.GracePeriod
	if gracePeriod == 0 {
		gracePeriod = 5 * time.Second
	}

	c := exec.CommandContext(ctx, cmd.Binary, cmd.Args...) //nolint:gosec // dynamic args are the purpose of this package
	c.Dir = cmd.Dir
	c.Env = mergeEnv(cmd.Env)

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	if cmd.Stdin != nil {
		c.Stdin = cmd.Stdin
	}

	// Use a process group so the entire tree can be killed
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	// Cancellation sends SIGTERM first; WaitDelay escalates to SIGKILL.
	c.Cancel = func() error {
		if c.Process == nil {
			return nil
		}
		return syscall.Kill(-c.Process.Pid, syscall.SIGTERM)
	}
	c.WaitDelay = gracePeriod

	logger.WithComponent("process").Debug("exec",
		logger.Fields("argv", cmd.Binary+" "+strings.Join(cmd.Args, " ")))

	start := time.Now()
	err := c.Run()
	duration := time.Since(start)

	exitCode := -1
	if c.ProcessState != nil {
		exitCode = c.ProcessState.ExitCode()
	}
	outcome := &Outcome{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: exitCode,
		Duration: duration,
	}

	if err != nil {
		// Context cancellation is the expected way to kill a worker
		if ctx.Err() != nil {
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				outcome.TimedOut = true
			} else {
				outcome.Cancelled = true
			}
			return outcome, fmt.Errorf("process: killed by context: %w", ctx.Err())
		}
		return outcome, fmt.Errorf("process: exit code %d: %w", outcome.ExitCode, err)
	}

	return outcome, nil
}

// mergeEnv merges additional env vars with the current environment.
func mergeEnv(extra []string) []string {
	if len(extra) == 0 {
		return nil // inherit parent env
	}
	env := os.Environ()
	return append(env, extra...)
}
