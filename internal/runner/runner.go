// Package runner executes external programs with a timeout.
package runner

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

	"github.com/renato0307/lmtt/internal/errs"
	"github.com/renato0307/lmtt/internal/logging"
)

// DefaultTimeout applies when Options.Timeout is zero
const DefaultTimeout = 10 * time.Second

// pipeGrace bounds how long Wait keeps reading output after the command
// exits. Processes it backgrounded may hold stdout/stderr open indefinitely.
const pipeGrace = 100 * time.Millisecond

// Options configures a single command execution
type Options struct {
	Timeout time.Duration // default: DefaultTimeout
	Env     []string      // appended to the current environment
	Dir     string
	Stdin   string
}

// Run executes name with args and returns its stdout.
// A non-zero exit is returned as a Module error carrying stderr; exceeding
// the timeout (or ctx being cancelled) kills the command's process group and
// returns a Timeout error. Processes the command leaves running in the
// background are not waited for.
func Run(ctx context.Context, name string, args []string, opts Options) (string, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, name, args...)
	cmd.Dir = opts.Dir
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}
	if opts.Stdin != "" {
		cmd.Stdin = strings.NewReader(opts.Stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = pipeGrace

	op := "run " + name
	start := time.Now()
	if err := cmd.Start(); err != nil {
		if runCtx.Err() != nil {
			return "", errs.Timeout(op, runCtx.Err())
		}
		if errors.Is(err, exec.ErrNotFound) {
			return "", errs.NotFound(op, err)
		}
		return "", errs.Module(op, err)
	}

	err := cmd.Wait()
	exited := cmd.ProcessState != nil && cmd.ProcessState.Exited()
	if runCtx.Err() != nil && !exited {
		logging.Debug("command killed", "command", name, "elapsed", time.Since(start).String())
		return "", errs.Timeout(op, fmt.Errorf("timed out after %v", timeout))
	}
	if errors.Is(err, exec.ErrWaitDelay) {
		logging.Debug("command left background processes", "command", name)
		err = nil
	}
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return stdout.String(), errs.Module(op, fmt.Errorf("%w: %s", err, msg))
		}
		return stdout.String(), errs.Module(op, err)
	}
	return stdout.String(), nil
}

// Shell runs a command line through "sh -c"
func Shell(ctx context.Context, command string, opts Options) (string, error) {
	return Run(ctx, "sh", []string{"-c", command}, opts)
}

// BestEffort runs a command and only logs failures. Used for reload signals
// where the target application may simply not be running.
func BestEffort(ctx context.Context, name string, args ...string) {
	if _, err := Run(ctx, name, args, Options{}); err != nil {
		logging.Debug("best-effort command failed", "command", name, "args", args, "error", err)
	}
}

// Available reports whether name resolves on PATH
func Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
