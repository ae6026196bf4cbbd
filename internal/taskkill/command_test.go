package taskkill

import (
	"context"
	"errors"
	"testing"
)

func TestBuildCommand(t *testing.T) {
	image, err := ImageNameFilter("eq", "notepad.exe")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}

	tests := []struct {
		name string
		opts Options
		want string
	}{
		{"single pid", Options{PIDs: []ProcessID{1234}}, "taskkill /PID 1234"},
		{"image tree force", Options{ImageNames: []ImageName{"chrome.exe"}, Tree: true, Force: true},
			`taskkill /IM "chrome.exe" /T /F`},
		{
			"remote with filter",
			Options{
				Remote:  &RemoteSystem{System: "srv01", User: &UserContext{Username: "ops", Domain: "corp"}},
				Filters: []Filter{image},
				Force:   true,
			},
			`taskkill /S "srv01" /U "corp\ops" /FI "IMAGENAME eq notepad.exe" /F`,
		},
		{"several pids", Options{PIDs: []ProcessID{1, 2}}, "taskkill /PID 1 /PID 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildCommand(tt.opts)
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestBuildCommandRequiresSelection(t *testing.T) {
	if _, err := BuildCommand(Options{Force: true}); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	if _, err := BuildCommand(Options{Remote: &RemoteSystem{}, PIDs: []ProcessID{1}}); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for empty remote, got %v", err)
	}
}

type recordingRunner struct {
	commands []string
	output   string
}

func (r *recordingRunner) Run(ctx context.Context, command string) ([]byte, error) {
	r.commands = append(r.commands, command)
	return []byte(r.output), nil
}

func TestServiceKill(t *testing.T) {
	runner := &recordingRunner{output: "SUCCESS: The process with PID 1234 has been terminated.\r\n"}
	svc := NewService(runner)

	out, err := svc.Kill(context.Background(), Options{PIDs: []ProcessID{1234}, Force: true})
	if err != nil {
		t.Fatalf("kill: %v", err)
	}
	if out != runner.output {
		t.Fatalf("unexpected output %q", out)
	}
	if len(runner.commands) != 1 || runner.commands[0] != "taskkill /PID 1234 /F" {
		t.Fatalf("unexpected commands %v", runner.commands)
	}

	if _, err := svc.Kill(context.Background(), Options{}); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	if len(runner.commands) != 1 {
		t.Fatalf("taskkill should not run for invalid options")
	}
}

func TestBuildCommandRejectsUnsafeOperands(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"image with ampersand", Options{ImageNames: []ImageName{"x.exe & calc.exe"}}},
		{"image breaking out of quotes", Options{ImageNames: []ImageName{"x.exe\"; echo INJECTED"}}},
		{"empty image", Options{ImageNames: []ImageName{""}}},
		{"remote with pipe", Options{Remote: &RemoteSystem{System: "srv | whoami"}, PIDs: []ProcessID{1}}},
		{"literal filter with quote", Options{Filters: []Filter{{Kind: FilterWindowTitle, Operator: "eq", Value: `a" & echo X & "`}}}},
		{"literal filter with bad operator", Options{Filters: []Filter{{Kind: FilterPID, Operator: "like", Value: "1"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildCommand(tt.opts); !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestServiceKillRejectsInjectionBeforeRunning(t *testing.T) {
	runner := &recordingRunner{}
	svc := NewService(runner)

	_, err := svc.Kill(context.Background(), Options{ImageNames: []ImageName{"x.exe; echo INJECTED"}})
	if err != nil {
		t.Fatalf("semicolon inside a quoted operand is harmless: %v", err)
	}
	if runner.commands[0] != `taskkill /IM "x.exe; echo INJECTED"` {
		t.Fatalf("image name must be quoted, got %q", runner.commands[0])
	}

	if _, err := svc.Kill(context.Background(), Options{ImageNames: []ImageName{"x.exe & echo INJECTED"}}); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	if len(runner.commands) != 1 {
		t.Fatalf("taskkill should not run for unsafe options, ran %v", runner.commands)
	}
}
