package taskkill

import (
	"context"
	"fmt"
	"strings"

	"wincmd/internal/shell"
)

// Options describes one taskkill invocation. At least one of Filters, PIDs or
// ImageNames must select something.
type Options struct {
	Remote     *RemoteSystem
	Filters    []Filter
	PIDs       []ProcessID
	ImageNames []ImageName
	Tree       bool
	Force      bool
}

func BuildCommand(opts Options) (string, error) {
	if len(opts.Filters) == 0 && len(opts.PIDs) == 0 && len(opts.ImageNames) == 0 {
		return "", fmt.Errorf("%w: a filter, PID or image name is required", ErrInvalidParameter)
	}

	parts := []string{"taskkill"}
	if opts.Remote != nil {
		if err := opts.Remote.validate(); err != nil {
			return "", err
		}
		parts = append(parts, opts.Remote.Command())
	}
	for _, f := range opts.Filters {
		// filters built as literals skip NewFilter, so check them again
		if _, err := NewFilter(f.Kind, f.Operator, f.Value); err != nil {
			return "", err
		}
		parts = append(parts, f.Command())
	}
	for _, pid := range opts.PIDs {
		parts = append(parts, pid.Command())
	}
	for _, image := range opts.ImageNames {
		if image == "" {
			return "", fmt.Errorf("%w: image name is empty", ErrInvalidParameter)
		}
		if err := checkOperand("image name", string(image)); err != nil {
			return "", err
		}
		parts = append(parts, image.Command())
	}
	if opts.Tree {
		parts = append(parts, string(KillTree))
	}
	if opts.Force {
		parts = append(parts, string(KillForce))
	}

	return strings.Join(parts, " "), nil
}

type Service struct {
	runner shell.Runner
}

func NewService(runner shell.Runner) *Service {
	return &Service{runner: runner}
}

// Kill runs taskkill and returns what it printed. Options are validated
// before anything is started.
func (s *Service) Kill(ctx context.Context, opts Options) (string, error) {
	command, err := BuildCommand(opts)
	if err != nil {
		return "", err
	}

	output, err := shell.RunText(ctx, s.runner, command)
	if err != nil {
		return output, fmt.Errorf("failed to run taskkill: %w", err)
	}
	return output, nil
}
