package netstat

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestBusyPorts(t *testing.T) {
	table, err := ParseConnections(connectionsWithPIDOutput)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := []int{135, 1900, 5354, 8080}
	if got := BusyPorts(table); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFreePorts(t *testing.T) {
	free := FreePorts([]int{135, 1024, 5354, 49150, 60000})

	if len(free) != MaxFreePort-MinFreePort+1-3 {
		t.Fatalf("unexpected free port count %d", len(free))
	}
	if free[0] != 1025 || free[len(free)-1] != 49149 {
		t.Fatalf("unexpected bounds %d..%d", free[0], free[len(free)-1])
	}
	for _, p := range free {
		if p == 5354 {
			t.Fatalf("busy port 5354 reported free")
		}
	}
}

func TestMinimumFreePort(t *testing.T) {
	free := []int{1030, 1040, 1050}

	tests := []struct {
		name       string
		candidates []any
		want       int
	}{
		{"no candidates", nil, 1030},
		{"list with one free", []any{[]int{1040, 9999}}, 1040},
		{"single busy port", []any{5000}, 1030},
		{"single free port", []any{1050}, 1050},
		{"smallest free candidate", []any{1050, 1040}, 1040},
		{"set of ports", []any{map[int]struct{}{1050: {}, 1040: {}, 7: {}}}, 1040},
		{"no candidate free", []any{[]int{1, 2, 3}}, 1030},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MinimumFreePort(free, tt.candidates...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestMinimumFreePortRejectsNonInteger(t *testing.T) {
	for _, candidates := range [][]any{{"a"}, {1040, "a"}, {1.5}, {[]string{"8080"}}} {
		if _, err := MinimumFreePort([]int{1030}, candidates...); !errors.Is(err, ErrInvalidPort) {
			t.Fatalf("candidates %v: expected ErrInvalidPort, got %v", candidates, err)
		}
	}
}

func TestMinimumFreePortNoneFree(t *testing.T) {
	if _, err := MinimumFreePort(nil); !errors.Is(err, ErrNoFreePort) {
		t.Fatalf("expected ErrNoFreePort, got %v", err)
	}
}

func TestProcessPorts(t *testing.T) {
	table, err := ParseConnections(connectionsWithPIDOutput)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	got, err := ProcessPorts(table)
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	want := map[int][]int{
		1124: {135},
		4416: {5354},
		5160: {1900},
		7788: {8080},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestProcessPortsRequiresPIDColumn(t *testing.T) {
	table, err := ParseConnections(connectionsWithExecutableOutput)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := ProcessPorts(table); !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
}

func TestServiceLocalhostPorts(t *testing.T) {
	svc, _ := newFakeService()
	ctx := context.Background()

	busy, err := svc.LocalhostBusyPorts(ctx)
	if err != nil {
		t.Fatalf("busy: %v", err)
	}
	if !reflect.DeepEqual(busy, []int{135, 1900, 5354, 8080}) {
		t.Fatalf("unexpected busy ports %v", busy)
	}

	port, err := svc.LocalhostMinimumFreePort(ctx, []int{5354, 8081, 8080})
	if err != nil {
		t.Fatalf("minimum: %v", err)
	}
	if port != 8081 {
		t.Fatalf("expected 8081, got %d", port)
	}

	port, err = svc.LocalhostMinimumFreePort(ctx)
	if err != nil {
		t.Fatalf("minimum: %v", err)
	}
	if port != MinFreePort {
		t.Fatalf("expected %d, got %d", MinFreePort, port)
	}

	byPID, err := svc.LocalhostProcessPorts(ctx)
	if err != nil {
		t.Fatalf("process ports: %v", err)
	}
	if !reflect.DeepEqual(byPID[4416], []int{5354}) {
		t.Fatalf("unexpected ports for 4416: %v", byPID[4416])
	}
}

func TestServiceMinimumFreePortValidatesBeforeRunning(t *testing.T) {
	svc, runner := newFakeService()

	if _, err := svc.LocalhostMinimumFreePort(context.Background(), "a"); !errors.Is(err, ErrInvalidPort) {
		t.Fatalf("expected ErrInvalidPort, got %v", err)
	}
	if runner.callCount() != 0 {
		t.Fatalf("netstat should not run for invalid candidates")
	}
}
