package gdrive

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Runner executes the external drive client binary and returns its stdout.
// Abstracted so the Client can be tested without spawning processes.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// ExecRunner runs the client via os/exec, capturing stdout and folding
// stderr into returned errors.
type ExecRunner struct {
	path string
}

// NewExecRunner resolves the client binary on PATH and returns a runner
// for it. The binary name may also be a direct path.
func NewExecRunner(binary string) (*ExecRunner, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("executable %s not found on PATH (verify it is installed): %w", binary, err)
	}
	return &ExecRunner{path: path}, nil
}

// Path returns the resolved path of the client binary
func (r *ExecRunner) Path() string {
	return r.path
}

// Run executes the client with the given arguments
func (r *ExecRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.path, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return nil, fmt.Errorf("%s %s: %w: %s", filepath.Base(r.path), strings.Join(args, " "), err, detail)
		}
		return nil, fmt.Errorf("%s %s: %w", filepath.Base(r.path), strings.Join(args, " "), err)
	}

	return stdout.Bytes(), nil
}
