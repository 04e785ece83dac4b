// Package pipeline runs external commands one at a time and turns their exit
// status and output into the release error taxonomy.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/indaco/cutrelease/internal/core"
)

// Result is the outcome of one finished process.
type Result struct {
	Success bool
	Stdout  string
	Stderr  string
}

// Runner runs a command and blocks until it exits. The returned error is
// reserved for failures to start the process; a non-zero exit is reported
// through Result.Success.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct {
	// Dir is the working directory for every command; empty means the current one.
	Dir string

	// Echo, when set, is called with the command line before it starts.
	Echo func(line string)

	execCommand func(ctx context.Context, name string, arg ...string) *exec.Cmd
}

// NewExecRunner creates an ExecRunner using exec.CommandContext.
func NewExecRunner(dir string) *ExecRunner {
	return &ExecRunner{
		Dir:         dir,
		execCommand: exec.CommandContext,
	}
}

var _ Runner = (*ExecRunner)(nil)

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	if r.Echo != nil {
		r.Echo(CommandLine(name, args))
	}

	cmd := r.execCommand(ctx, name, args...)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		res.Success = true
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return res, nil
	}
	return res, fmt.Errorf("failed to run %s: %w", name, err)
}

// RunOrFail runs the command and fails with a *core.CommandError carrying the
// trimmed standard error when it exits non-zero.
func RunOrFail(ctx context.Context, r Runner, name string, args ...string) (Result, error) {
	res, err := r.Run(ctx, name, args...)
	if err != nil {
		return res, &core.CommandError{Name: name, Args: args, Err: err}
	}
	if !res.Success {
		return res, &core.CommandError{
			Name:   name,
			Args:   args,
			Stderr: strings.TrimSpace(res.Stderr),
		}
	}
	return res, nil
}

// RunExpectEmptyOutput is RunOrFail plus a *core.OutputError when the
// command printed anything on standard output.
func RunExpectEmptyOutput(ctx context.Context, r Runner, name string, args ...string) error {
	res, err := RunOrFail(ctx, r, name, args...)
	if err != nil {
		return err
	}
	if res.Stdout != "" {
		return &core.OutputError{Name: name, Args: args, Stdout: strings.TrimSpace(res.Stdout)}
	}
	return nil
}

// CommandLine joins a command and its arguments the way a shell would show them.
func CommandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
