package netstat

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"wincmd/internal/models"
)

const (
	ipv4Literal = `\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`

	labelInterfaceList = "Interface List"
	labelIPv4Routes    = "IPv4 Route Table"
	labelIPv6Routes    = "IPv6 Route Table"
)

var (
	interfaceListRe = regexp.MustCompile(`(?s)Interface List(?:\r\n)+(.+?)(?:={3,}|\z)`)
	interfaceRowRe  = regexp.MustCompile(`(\w+(?:(?:\.{3}| )\w+)*) ?\.+([\w#() -]+)\s+`)

	ipv4RouteTableRe = routeTableRe(labelIPv4Routes)
	ipv6RouteTableRe = routeTableRe(labelIPv6Routes)

	ipv4ActiveRouteRe = regexp.MustCompile(
		`(` + ipv4Literal + `)\s+(` + ipv4Literal + `)\s+(` + ipv4Literal + `|On-link)\s+(` + ipv4Literal + `)\s+(\d+)\s+`)
	ipv4PersistentRouteRe = regexp.MustCompile(
		`(` + ipv4Literal + `)\s+(` + ipv4Literal + `)\s+(` + ipv4Literal + `)\s+(\d+)\s+`)
	// long destinations wrap, so the gateway may sit on the following line
	ipv6ActiveRouteRe = regexp.MustCompile(`(\d+)\s+(\d+)\s+(\S+)\s+(On-link|[0-9a-fA-F:.%]+)\s+`)
)

// routeTableRe anchors the Active Routes and Persistent Routes blocks that
// follow a route table label, each ending at a === rule or the end of text.
func routeTableRe(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)` + regexp.QuoteMeta(label) +
		`(?:\r\n)+={3,}\s+Active Routes:(?:\r\n)+(.+?)(?:={3,}|\z)\s+Persistent Routes:(?:\r\n)+(.+?)(?:={3,}|\z)`)
}

// ParseInterfaceList extracts the "Interface List" block of netstat -r.
func ParseInterfaceList(output string) ([]models.InterfaceEntry, error) {
	m := interfaceListRe.FindStringSubmatch(output)
	if m == nil {
		return nil, sectionNotFound(labelInterfaceList)
	}

	matches := interfaceRowRe.FindAllStringSubmatch(m[1], -1)
	interfaces := make([]models.InterfaceEntry, 0, len(matches))
	for _, row := range matches {
		interfaces = append(interfaces, models.InterfaceEntry{
			MAC:       row[1],
			Interface: strings.TrimSpace(row[2]),
		})
	}
	return interfaces, nil
}

func ParseIPv4RouteTable(output string) (models.IPv4RouteTable, error) {
	m := ipv4RouteTableRe.FindStringSubmatch(output)
	if m == nil {
		return models.IPv4RouteTable{}, sectionNotFound(labelIPv4Routes)
	}

	table := models.IPv4RouteTable{
		ActiveRoutes:     []models.IPv4ActiveRoute{},
		PersistentRoutes: []models.IPv4PersistentRoute{},
	}

	for _, row := range ipv4ActiveRouteRe.FindAllStringSubmatch(m[1], -1) {
		metric, err := strconv.Atoi(row[5])
		if err != nil {
			return models.IPv4RouteTable{}, fmt.Errorf("invalid metric for %s: %w", row[1], err)
		}
		table.ActiveRoutes = append(table.ActiveRoutes, models.IPv4ActiveRoute{
			NetworkDestination: row[1],
			Netmask:            row[2],
			Gateway:            row[3],
			Interface:          row[4],
			Metric:             metric,
		})
	}

	for _, row := range ipv4PersistentRouteRe.FindAllStringSubmatch(m[2], -1) {
		metric, err := strconv.Atoi(row[4])
		if err != nil {
			return models.IPv4RouteTable{}, fmt.Errorf("invalid metric for %s: %w", row[1], err)
		}
		table.PersistentRoutes = append(table.PersistentRoutes, models.IPv4PersistentRoute{
			NetworkAddress: row[1],
			Netmask:        row[2],
			GatewayAddress: row[3],
			Metric:         metric,
		})
	}

	return table, nil
}

// ParseIPv6RouteTable extracts the active IPv6 routes. Persistent routes are
// always returned empty.
func ParseIPv6RouteTable(output string) (models.IPv6RouteTable, error) {
	m := ipv6RouteTableRe.FindStringSubmatch(output)
	if m == nil {
		return models.IPv6RouteTable{}, sectionNotFound(labelIPv6Routes)
	}

	table := models.IPv6RouteTable{
		ActiveRoutes:     []models.IPv6ActiveRoute{},
		PersistentRoutes: []models.IPv6PersistentRoute{},
	}

	for _, row := range ipv6ActiveRouteRe.FindAllStringSubmatch(m[1], -1) {
		ifIndex, err := strconv.Atoi(row[1])
		if err != nil {
			return models.IPv6RouteTable{}, fmt.Errorf("invalid interface index for %s: %w", row[3], err)
		}
		metric, err := strconv.Atoi(row[2])
		if err != nil {
			return models.IPv6RouteTable{}, fmt.Errorf("invalid metric for %s: %w", row[3], err)
		}
		table.ActiveRoutes = append(table.ActiveRoutes, models.IPv6ActiveRoute{
			If:                 ifIndex,
			Metric:             metric,
			NetworkDestination: row[3],
			Gateway:            row[4],
		})
	}

	return table, nil
}

// ParseRoutingTables parses everything netstat -r prints.
func ParseRoutingTables(output string) (models.RoutingTables, error) {
	interfaces, err := ParseInterfaceList(output)
	if err != nil {
		return models.RoutingTables{}, err
	}

	ipv4, err := ParseIPv4RouteTable(output)
	if err != nil {
		return models.RoutingTables{}, err
	}

	ipv6, err := ParseIPv6RouteTable(output)
	if err != nil {
		return models.RoutingTables{}, err
	}

	return models.RoutingTables{
		Interfaces: interfaces,
		IPv4:       ipv4,
		IPv6:       ipv6,
	}, nil
}
