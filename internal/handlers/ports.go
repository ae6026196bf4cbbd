package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"wincmd/internal/models"
	"wincmd/internal/netstat"

	"github.com/go-chi/chi/v5"
	"github.com/shirou/gopsutil/v3/process"
)

// ProcessNamer resolves a PID to its executable name.
type ProcessNamer func(pid int) (string, error)

func processName(pid int) (string, error) {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return "", err
	}
	return p.Name()
}

type PortsHandler struct {
	netstat     *netstat.Service
	processName ProcessNamer
}

// NewPortsHandler uses gopsutil for process names when namer is nil.
func NewPortsHandler(netstatService *netstat.Service, namer ProcessNamer) *PortsHandler {
	if namer == nil {
		namer = processName
	}
	return &PortsHandler{netstat: netstatService, processName: namer}
}

func (h *PortsHandler) Busy(w http.ResponseWriter, r *http.Request) {
	ports, err := h.netstat.LocalhostBusyPorts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]int{"ports": ports})
}

func (h *PortsHandler) Free(w http.ResponseWriter, r *http.Request) {
	ports, err := h.netstat.LocalhostFreePorts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]int{"ports": ports})
}

// Minimum picks the lowest free port, preferring ?candidate= values.
func (h *PortsHandler) Minimum(w http.ResponseWriter, r *http.Request) {
	var candidates []int
	for _, raw := range r.URL.Query()["candidate"] {
		port, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, fmt.Errorf("%w: candidate %q is not an integer", netstat.ErrInvalidPort, raw))
			return
		}
		candidates = append(candidates, port)
	}

	var args []any
	if len(candidates) > 0 {
		args = append(args, candidates)
	}

	port, err := h.netstat.LocalhostMinimumFreePort(r.Context(), args...)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"port": port})
}

// Processes lists the loopback ports held by each PID. Names are best effort:
// processes that exited or are not visible keep an empty name.
func (h *PortsHandler) Processes(w http.ResponseWriter, r *http.Request) {
	byPID, err := h.netstat.LocalhostProcessPorts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	result := make([]models.ProcessPorts, 0, len(byPID))
	for _, pid := range sortedPIDs(byPID) {
		name, err := h.processName(pid)
		if err != nil {
			name = ""
		}
		result = append(result, models.ProcessPorts{PID: pid, Name: name, Ports: byPID[pid]})
	}
	writeJSON(w, http.StatusOK, result)
}

// Process returns the loopback ports of the PID in the URL.
func (h *PortsHandler) Process(w http.ResponseWriter, r *http.Request) {
	pid, err := strconv.Atoi(chi.URLParam(r, "pid"))
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid pid", errBadRequest))
		return
	}

	byPID, err := h.netstat.LocalhostProcessPorts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	name, _ := h.processName(pid)
	ports := byPID[pid]
	if ports == nil {
		ports = []int{}
	}
	writeJSON(w, http.StatusOK, models.ProcessPorts{PID: pid, Name: name, Ports: ports})
}

func sortedPIDs(m map[int][]int) []int {
	pids := make([]int, 0, len(m))
	for pid := range m {
		pids = append(pids, pid)
	}
	sort.Ints(pids)
	return pids
}
