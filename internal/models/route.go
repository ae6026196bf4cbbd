package models

type IPv4ActiveRoute struct {
	NetworkDestination string `json:"network_destination"`
	Netmask            string `json:"netmask"`
	Gateway            string `json:"gateway"`
	Interface          string `json:"interface"`
	Metric             int    `json:"metric"`
}

type IPv4PersistentRoute struct {
	NetworkAddress string `json:"network_address"`
	Netmask        string `json:"netmask"`
	GatewayAddress string `json:"gateway_address"`
	Metric         int    `json:"metric"`
}

type IPv6ActiveRoute struct {
	If                 int    `json:"if"`
	Metric             int    `json:"metric"`
	NetworkDestination string `json:"network_destination"`
	Gateway            string `json:"gateway"`
}

// IPv6PersistentRoute is never populated; netstat does not print persistent
// IPv6 routes in a form that can be parsed here.
type IPv6PersistentRoute struct {
	If                 int    `json:"if"`
	Metric             int    `json:"metric"`
	NetworkDestination string `json:"network_destination"`
	Gateway            string `json:"gateway"`
}

type IPv4RouteTable struct {
	ActiveRoutes     []IPv4ActiveRoute     `json:"active_routes"`
	PersistentRoutes []IPv4PersistentRoute `json:"persistent_routes"`
}

type IPv6RouteTable struct {
	ActiveRoutes     []IPv6ActiveRoute     `json:"active_routes"`
	PersistentRoutes []IPv6PersistentRoute `json:"persistent_routes"`
}

type InterfaceEntry struct {
	MAC       string `json:"mac"`
	Interface string `json:"interface"`
}

type RoutingTables struct {
	Interfaces []InterfaceEntry `json:"interface_table"`
	IPv4       IPv4RouteTable   `json:"ipv4_routing_table"`
	IPv6       IPv6RouteTable   `json:"ipv6_routing_table"`
}
