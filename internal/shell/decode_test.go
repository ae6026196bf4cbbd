package shell

import (
	"context"
	"errors"
	"testing"
)

func TestDecodeWindows1252(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"empty", nil, ""},
		{"ascii", []byte("Active Routes:\r\n"), "Active Routes:\r\n"},
		{"latin1", []byte{'C', 'a', 'f', 0xE9}, "Café"},
		{"euro sign", []byte{0x80, '5'}, "€5"},
		{"umlaut interface", []byte("Netzwerkger\xe4t"), "Netzwerkgerät"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeWindows1252(tt.in); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

type stubRunner struct {
	output []byte
	err    error
}

func (s stubRunner) Run(ctx context.Context, command string) ([]byte, error) {
	return s.output, s.err
}

func TestRunTextKeepsOutputOnError(t *testing.T) {
	failure := errors.New("exit 1")
	text, err := RunText(context.Background(), stubRunner{output: []byte("ERROR: not found\xe9"), err: failure}, "taskkill /PID 1")
	if !errors.Is(err, failure) {
		t.Fatalf("expected wrapped failure, got %v", err)
	}
	if text != "ERROR: not foundé" {
		t.Fatalf("unexpected text %q", text)
	}
}
