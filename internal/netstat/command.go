package netstat

import (
	"fmt"
	"strings"
)

// Protocol selects one netstat protocol. Statistics accept every value below;
// the connection list only the transport ones.
type Protocol string

const (
	ProtocolTCP    Protocol = "TCP"
	ProtocolUDP    Protocol = "UDP"
	ProtocolTCPv6  Protocol = "TCPv6"
	ProtocolUDPv6  Protocol = "UDPv6"
	ProtocolIP     Protocol = "IP"
	ProtocolIPv6   Protocol = "IPv6"
	ProtocolICMP   Protocol = "ICMP"
	ProtocolICMPv6 Protocol = "ICMPv6"
)

var (
	StatisticsProtocols = []Protocol{
		ProtocolTCP, ProtocolUDP, ProtocolTCPv6, ProtocolUDPv6,
		ProtocolIP, ProtocolIPv6, ProtocolICMP, ProtocolICMPv6,
	}
	ConnectionProtocols = []Protocol{ProtocolTCP, ProtocolTCPv6, ProtocolUDP, ProtocolUDPv6}
)

const netstatBinary = "netstat"

func PerProtocolStatisticsCommand() string {
	return netstatBinary + " -s"
}

func RoutingTableCommand() string {
	return netstatBinary + " -r"
}

func EthernetStatisticsCommand() string {
	return netstatBinary + " -e"
}

// ConnectionOptions mirrors the display switches of the plain netstat listing.
type ConnectionOptions struct {
	ShowAllListeningPorts bool     // -a
	ShowAllPorts          bool     // -q
	ShowOffloadState      bool     // -t
	ShowTemplates         bool     // -y
	ShowExecutable        bool     // -b
	ShowFQDN              bool     // -f
	ShowPID               bool     // -o
	ShowTimeInState       bool     // -i
	Protocol              Protocol // -p, empty for every protocol
}

func ConnectionsCommand(opts ConnectionOptions) (string, error) {
	parts := []string{netstatBinary}

	flags := []struct {
		enabled bool
		flag    string
	}{
		{opts.ShowAllListeningPorts, "-a"},
		{opts.ShowAllPorts, "-q"},
		{opts.ShowOffloadState, "-t"},
		{opts.ShowTemplates, "-y"},
		{opts.ShowExecutable, "-b"},
		{opts.ShowFQDN, "-f"},
		{opts.ShowPID, "-o"},
		{opts.ShowTimeInState, "-i"},
	}
	for _, f := range flags {
		if f.enabled {
			parts = append(parts, f.flag)
		}
	}

	if opts.Protocol != "" {
		if err := ValidateProtocol(opts.Protocol, ConnectionProtocols); err != nil {
			return "", err
		}
		parts = append(parts, "-p", string(opts.Protocol))
	}

	return strings.Join(parts, " "), nil
}

// ValidateProtocol reports an ErrInvalidParameter naming the allowed set when p is not in it.
func ValidateProtocol(p Protocol, allowed []Protocol) error {
	for _, a := range allowed {
		if p == a {
			return nil
		}
	}
	return fmt.Errorf("%w: invalid '%s' protocol, valid protocols %v", ErrInvalidParameter, p, allowed)
}
