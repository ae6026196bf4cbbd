package netstat

import (
	"fmt"
	"regexp"
	"strconv"

	"wincmd/internal/models"
)

// Keys of the map returned by ParsePerProtocolStatistics.
const (
	SectionIPv4   = "IPv4"
	SectionIPv6   = "IPv6"
	SectionICMPv4 = "ICMPv4"
	SectionICMPv6 = "ICMPv6"
	SectionTCPv4  = "TCPv4"
	SectionTCPv6  = "TCPv6"
	SectionUDPv4  = "UDPv4"
	SectionUDPv6  = "UDPv6"
)

type statisticsSection struct {
	key   string
	label string
	// dual sections print "Received  Sent" columns instead of "= value"
	dual  bool
	block *regexp.Regexp
}

var (
	statRowRe     = regexp.MustCompile(`(\w+(?: \w+)*)\s{2,}= (\d+)`)
	dualStatRowRe = regexp.MustCompile(`(\w+(?: \w+)*)\s{2,}(\d+)\s{2,}(\d+)`)

	statisticsSections = []*statisticsSection{
		newStatisticsSection(SectionIPv4, "IPv4 Statistics", false),
		newStatisticsSection(SectionIPv6, "IPv6 Statistics", false),
		newStatisticsSection(SectionICMPv4, "ICMPv4 Statistics", true),
		newStatisticsSection(SectionICMPv6, "ICMPv6 Statistics", true),
		newStatisticsSection(SectionTCPv4, "TCP Statistics for IPv4", false),
		newStatisticsSection(SectionTCPv6, "TCP Statistics for IPv6", false),
		newStatisticsSection(SectionUDPv4, "UDP Statistics for IPv4", false),
		newStatisticsSection(SectionUDPv6, "UDP Statistics for IPv6", false),
	}

	protocolSections = map[Protocol]string{
		ProtocolIP:     SectionIPv4,
		ProtocolIPv6:   SectionIPv6,
		ProtocolICMP:   SectionICMPv4,
		ProtocolICMPv6: SectionICMPv6,
		ProtocolTCP:    SectionTCPv4,
		ProtocolTCPv6:  SectionTCPv6,
		ProtocolUDP:    SectionUDPv4,
		ProtocolUDPv6:  SectionUDPv6,
	}
)

func newStatisticsSection(key, label string, dual bool) *statisticsSection {
	return &statisticsSection{
		key:   key,
		label: label,
		dual:  dual,
		block: regexp.MustCompile(`(?s)` + regexp.QuoteMeta(label) + `(?:\r\n)+(.+?)(?:(?:\r\n){2}|\z)`),
	}
}

func lookupStatisticsSection(key string) (*statisticsSection, error) {
	for _, s := range statisticsSections {
		if s.key == key {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown statistics section %q", ErrInvalidParameter, key)
}

func (s *statisticsSection) parse(output string) (models.StatisticsTable, error) {
	m := s.block.FindStringSubmatch(output)
	if m == nil {
		return models.StatisticsTable{}, sectionNotFound(s.label)
	}

	if s.dual {
		rows, err := parseDualStatRows(m[1])
		if err != nil {
			return models.StatisticsTable{}, fmt.Errorf("%s: %w", s.label, err)
		}
		return models.StatisticsTable{DualRows: rows}, nil
	}

	rows, err := parseStatRows(m[1])
	if err != nil {
		return models.StatisticsTable{}, fmt.Errorf("%s: %w", s.label, err)
	}
	return models.StatisticsTable{Rows: rows}, nil
}

func parseStatRows(block string) ([]models.StatRow, error) {
	matches := statRowRe.FindAllStringSubmatch(block, -1)
	rows := make([]models.StatRow, 0, len(matches))
	for _, m := range matches {
		value, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("invalid value for %q: %w", m[1], err)
		}
		rows = append(rows, models.StatRow{Header: m[1], Value: value})
	}
	return rows, nil
}

func parseDualStatRows(block string) ([]models.DualStatRow, error) {
	matches := dualStatRowRe.FindAllStringSubmatch(block, -1)
	rows := make([]models.DualStatRow, 0, len(matches))
	for _, m := range matches {
		received, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("invalid received count for %q: %w", m[1], err)
		}
		sent, err := strconv.Atoi(m[3])
		if err != nil {
			return nil, fmt.Errorf("invalid sent count for %q: %w", m[1], err)
		}
		rows = append(rows, models.DualStatRow{Header: m[1], Received: received, Sent: sent})
	}
	return rows, nil
}

// ParseStatistics extracts one "Header = Value" section, e.g. "TCP Statistics for IPv4".
func ParseStatistics(output, section string) ([]models.StatRow, error) {
	s, err := lookupStatisticsSection(section)
	if err != nil {
		return nil, err
	}
	if s.dual {
		return nil, fmt.Errorf("%w: %s has received and sent columns", ErrInvalidParameter, s.label)
	}
	table, err := s.parse(output)
	if err != nil {
		return nil, err
	}
	return table.Rows, nil
}

// ParseDualStatistics extracts one of the ICMP sections.
func ParseDualStatistics(output, section string) ([]models.DualStatRow, error) {
	s, err := lookupStatisticsSection(section)
	if err != nil {
		return nil, err
	}
	if !s.dual {
		return nil, fmt.Errorf("%w: %s has a single value column", ErrInvalidParameter, s.label)
	}
	table, err := s.parse(output)
	if err != nil {
		return nil, err
	}
	return table.DualRows, nil
}

// ParseProtocolStatistics extracts the section netstat -s prints for one protocol.
func ParseProtocolStatistics(output string, protocol Protocol) (models.StatisticsTable, error) {
	key, ok := protocolSections[protocol]
	if !ok {
		return models.StatisticsTable{}, ValidateProtocol(protocol, StatisticsProtocols)
	}
	s, err := lookupStatisticsSection(key)
	if err != nil {
		return models.StatisticsTable{}, err
	}
	return s.parse(output)
}

// ParsePerProtocolStatistics extracts all eight sections of netstat -s. Every
// section must be present.
func ParsePerProtocolStatistics(output string) (map[string]models.StatisticsTable, error) {
	tables := make(map[string]models.StatisticsTable, len(statisticsSections))
	for _, s := range statisticsSections {
		table, err := s.parse(output)
		if err != nil {
			return nil, err
		}
		tables[s.key] = table
	}
	return tables, nil
}
