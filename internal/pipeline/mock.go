package pipeline

import (
	"context"
	"sync"
)

// MockRunner is a scripted Runner for tests. Responses are keyed by the full
// command line ("git tag --list"); unknown commands succeed with no output.
type MockRunner struct {
	mu        sync.Mutex
	Responses map[string]Result
	Errors    map[string]error
	// RunFn, when set, takes precedence over Responses and Errors.
	RunFn func(name string, args ...string) (Result, error)
	calls []string
}

// NewMockRunner returns an empty MockRunner.
func NewMockRunner() *MockRunner {
	return &MockRunner{
		Responses: make(map[string]Result),
		Errors:    make(map[string]error),
	}
}

var _ Runner = (*MockRunner)(nil)

// On scripts the result for a command line.
func (m *MockRunner) On(line string, res Result) *MockRunner {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[line] = res
	return m
}

// Fail scripts a failing exit with the given stderr.
func (m *MockRunner) Fail(line, stderr string) *MockRunner {
	return m.On(line, Result{Success: false, Stderr: stderr})
}

func (m *MockRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	line := CommandLine(name, args)

	m.mu.Lock()
	m.calls = append(m.calls, line)
	runFn := m.RunFn
	res, hasRes := m.Responses[line]
	err := m.Errors[line]
	m.mu.Unlock()

	if runFn != nil {
		return runFn(name, args...)
	}
	if err != nil {
		return Result{}, err
	}
	if !hasRes {
		return Result{Success: true}, nil
	}
	return res, nil
}

// Calls returns the command lines run so far, in order.
func (m *MockRunner) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Called reports whether line was run at least once.
func (m *MockRunner) Called(line string) bool {
	for _, c := range m.Calls() {
		if c == line {
			return true
		}
	}
	return false
}
