package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ErrTimeout is returned when a command outlives its deadline. Partial
// output captured before the kill is still returned alongside it.
var ErrTimeout = errors.New("command timed out")

// Run executes a command with a hard deadline and returns its combined
// stdout and stderr. RAID probes call into vendor CLIs that occasionally
// hang on dead controllers, so every invocation must be bounded.
func Run(ctx context.Context, timeout time.Duration, name string, args ...string) (string, error) {
	var out bytes.Buffer
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	hideWindow(cmd)
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to start command %s: %w", name, err)
	}
	err := cmd.Wait()
	if ctx.Err() == context.DeadlineExceeded {
		return out.String(), ErrTimeout
	}
	return out.String(), err
}
