package netstat

import (
	"context"
	"fmt"

	"wincmd/internal/models"
	"wincmd/internal/shell"
)

// Service runs netstat and parses what it prints. Each call runs the tool
// exactly once; nothing is cached between calls.
type Service struct {
	runner shell.Runner
}

func NewService(runner shell.Runner) *Service {
	return &Service{runner: runner}
}

func (s *Service) run(ctx context.Context, command string) (string, error) {
	output, err := shell.RunText(ctx, s.runner, command)
	if err != nil {
		return "", fmt.Errorf("failed to run netstat: %w", err)
	}
	return output, nil
}

// PerProtocolStatistics returns every netstat -s section keyed by SectionIPv4 and friends.
func (s *Service) PerProtocolStatistics(ctx context.Context) (map[string]models.StatisticsTable, error) {
	output, err := s.run(ctx, PerProtocolStatisticsCommand())
	if err != nil {
		return nil, err
	}
	return ParsePerProtocolStatistics(output)
}

func (s *Service) ProtocolStatistics(ctx context.Context, protocol Protocol) (models.StatisticsTable, error) {
	if err := ValidateProtocol(protocol, StatisticsProtocols); err != nil {
		return models.StatisticsTable{}, err
	}

	output, err := s.run(ctx, PerProtocolStatisticsCommand())
	if err != nil {
		return models.StatisticsTable{}, err
	}
	return ParseProtocolStatistics(output, protocol)
}

func (s *Service) RoutingTables(ctx context.Context) (models.RoutingTables, error) {
	output, err := s.run(ctx, RoutingTableCommand())
	if err != nil {
		return models.RoutingTables{}, err
	}
	return ParseRoutingTables(output)
}

func (s *Service) IPv4RoutingTable(ctx context.Context) (models.IPv4RouteTable, error) {
	output, err := s.run(ctx, RoutingTableCommand())
	if err != nil {
		return models.IPv4RouteTable{}, err
	}
	return ParseIPv4RouteTable(output)
}

func (s *Service) IPv6RoutingTable(ctx context.Context) (models.IPv6RouteTable, error) {
	output, err := s.run(ctx, RoutingTableCommand())
	if err != nil {
		return models.IPv6RouteTable{}, err
	}
	return ParseIPv6RouteTable(output)
}

func (s *Service) InterfaceTable(ctx context.Context) ([]models.InterfaceEntry, error) {
	output, err := s.run(ctx, RoutingTableCommand())
	if err != nil {
		return nil, err
	}
	return ParseInterfaceList(output)
}

func (s *Service) Connections(ctx context.Context, opts ConnectionOptions) (models.ConnectionTable, error) {
	command, err := ConnectionsCommand(opts)
	if err != nil {
		return models.ConnectionTable{}, err
	}

	output, err := s.run(ctx, command)
	if err != nil {
		return models.ConnectionTable{}, err
	}
	return ParseConnections(output)
}

func (s *Service) EthernetStatistics(ctx context.Context) ([]models.EthernetStat, error) {
	output, err := s.run(ctx, EthernetStatisticsCommand())
	if err != nil {
		return nil, err
	}
	return ParseEthernetStatistics(output)
}
