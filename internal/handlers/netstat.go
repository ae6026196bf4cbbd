package handlers

import (
	"net/http"
	"strings"

	"wincmd/internal/netstat"
)

type NetstatHandler struct {
	netstat *netstat.Service
}

func NewNetstatHandler(netstatService *netstat.Service) *NetstatHandler {
	return &NetstatHandler{netstat: netstatService}
}

// Statistics returns every section of `netstat -s`, or only the one for
// ?protocol= when given.
func (h *NetstatHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	if protocol := r.URL.Query().Get("protocol"); protocol != "" {
		table, err := h.netstat.ProtocolStatistics(r.Context(), netstat.Protocol(protocol))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, table)
		return
	}

	tables, err := h.netstat.PerProtocolStatistics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tables)
}

func (h *NetstatHandler) Routes(w http.ResponseWriter, r *http.Request) {
	tables, err := h.netstat.RoutingTables(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tables)
}

func (h *NetstatHandler) IPv4Routes(w http.ResponseWriter, r *http.Request) {
	table, err := h.netstat.IPv4RoutingTable(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (h *NetstatHandler) IPv6Routes(w http.ResponseWriter, r *http.Request) {
	table, err := h.netstat.IPv6RoutingTable(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (h *NetstatHandler) Interfaces(w http.ResponseWriter, r *http.Request) {
	entries, err := h.netstat.InterfaceTable(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *NetstatHandler) Connections(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := netstat.ConnectionOptions{
		ShowAllListeningPorts: queryFlag(q.Get("all")),
		ShowAllPorts:          queryFlag(q.Get("ports")),
		ShowOffloadState:      queryFlag(q.Get("offload")),
		ShowTemplates:         queryFlag(q.Get("templates")),
		ShowExecutable:        queryFlag(q.Get("exe")),
		ShowFQDN:              queryFlag(q.Get("fqdn")),
		ShowPID:               queryFlag(q.Get("pid")),
		ShowTimeInState:       queryFlag(q.Get("time")),
		Protocol:              netstat.Protocol(q.Get("protocol")),
	}

	table, err := h.netstat.Connections(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (h *NetstatHandler) Ethernet(w http.ResponseWriter, r *http.Request) {
	stats, err := h.netstat.EthernetStatistics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func queryFlag(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
