package netstat

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"wincmd/internal/models"
)

// Range searched for free ports: above the well-known ports, below the
// dynamic range Windows hands out for ephemeral sockets.
const (
	MinFreePort = 1024
	MaxFreePort = 49150
)

var loopbackAddressRe = regexp.MustCompile(`^(?:127\.0\.0\.1|\[::1?\]):(\d+)$`)

func loopbackPort(address string) (int, bool) {
	m := loopbackAddressRe.FindStringSubmatch(address)
	if m == nil {
		return 0, false
	}
	port, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return port, true
}

// BusyPorts returns the distinct loopback ports in the table, ascending.
func BusyPorts(table models.ConnectionTable) []int {
	seen := make(map[int]struct{})
	for _, row := range table.Rows {
		if port, ok := loopbackPort(row.Get(models.ColumnLocalAddress)); ok {
			seen[port] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// FreePorts returns every port in [MinFreePort, MaxFreePort] not in busy, ascending.
func FreePorts(busy []int) []int {
	taken := make(map[int]struct{}, len(busy))
	for _, p := range busy {
		taken[p] = struct{}{}
	}

	free := make([]int, 0, MaxFreePort-MinFreePort+1)
	for p := MinFreePort; p <= MaxFreePort; p++ {
		if _, ok := taken[p]; !ok {
			free = append(free, p)
		}
	}
	return free
}

// PortCandidates flattens the values accepted by MinimumFreePort into ports.
// Each value may be an integer or a slice of integers; anything else is an
// ErrInvalidPort.
func PortCandidates(values ...any) ([]int, error) {
	var ports []int
	for _, v := range values {
		switch p := v.(type) {
		case int:
			ports = append(ports, p)
		case int32:
			ports = append(ports, int(p))
		case int64:
			ports = append(ports, int(p))
		case uint16:
			ports = append(ports, int(p))
		case []int:
			ports = append(ports, p...)
		case map[int]struct{}:
			for port := range p {
				ports = append(ports, port)
			}
		default:
			return nil, fmt.Errorf("%w: all ports must be int, got %v (%T)", ErrInvalidPort, v, v)
		}
	}
	return ports, nil
}

// MinimumFreePort returns the smallest candidate that is free, or the smallest
// free port when no candidate is.
func MinimumFreePort(free []int, candidates ...any) (int, error) {
	ports, err := PortCandidates(candidates...)
	if err != nil {
		return 0, err
	}
	if len(free) == 0 {
		return 0, ErrNoFreePort
	}

	available := make(map[int]struct{}, len(free))
	lowest := free[0]
	for _, p := range free {
		available[p] = struct{}{}
		if p < lowest {
			lowest = p
		}
	}

	best, found := 0, false
	for _, p := range ports {
		if _, ok := available[p]; ok && (!found || p < best) {
			best, found = p, true
		}
	}
	if found {
		return best, nil
	}
	return lowest, nil
}

// ProcessPorts groups loopback rows by PID. The table must carry a PID column.
func ProcessPorts(table models.ConnectionTable) (map[int][]int, error) {
	if !table.HasColumn(models.ColumnPID) {
		return nil, sectionNotFound("PID column")
	}

	byPID := make(map[int]map[int]struct{})
	for _, row := range table.Rows {
		port, ok := loopbackPort(row.Get(models.ColumnLocalAddress))
		if !ok {
			continue
		}
		pid, err := strconv.Atoi(row.Get(models.ColumnPID))
		if err != nil {
			return nil, fmt.Errorf("invalid PID %q: %w", row.Get(models.ColumnPID), err)
		}
		if byPID[pid] == nil {
			byPID[pid] = make(map[int]struct{})
		}
		byPID[pid][port] = struct{}{}
	}

	result := make(map[int][]int, len(byPID))
	for pid, ports := range byPID {
		result[pid] = sortedKeys(ports)
	}
	return result, nil
}

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func (s *Service) LocalhostBusyPorts(ctx context.Context) ([]int, error) {
	table, err := s.Connections(ctx, ConnectionOptions{ShowAllPorts: true})
	if err != nil {
		return nil, err
	}
	return BusyPorts(table), nil
}

func (s *Service) LocalhostFreePorts(ctx context.Context) ([]int, error) {
	busy, err := s.LocalhostBusyPorts(ctx)
	if err != nil {
		return nil, err
	}
	return FreePorts(busy), nil
}

// LocalhostMinimumFreePort validates candidates before running netstat.
func (s *Service) LocalhostMinimumFreePort(ctx context.Context, candidates ...any) (int, error) {
	ports, err := PortCandidates(candidates...)
	if err != nil {
		return 0, err
	}

	free, err := s.LocalhostFreePorts(ctx)
	if err != nil {
		return 0, err
	}
	return MinimumFreePort(free, ports)
}

func (s *Service) LocalhostProcessPorts(ctx context.Context) (map[int][]int, error) {
	table, err := s.Connections(ctx, ConnectionOptions{ShowAllPorts: true, ShowPID: true})
	if err != nil {
		return nil, err
	}
	return ProcessPorts(table)
}
