package llm

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// commandRunner runs a CLI with stdin and returns its stdout.
type commandRunner func(ctx context.Context, stdin string, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, stdin string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%s CLI failed: %s", name, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s CLI failed: %w", name, err)
	}
	return output, nil
}
