package handlers

import (
	"log"
	"net/http"

	"wincmd/internal/auth"
	"wincmd/internal/middleware"
	"wincmd/internal/taskkill"
)

type filterInput struct {
	Name     string `json:"name"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

type taskKillRequest struct {
	Remote     *taskkill.RemoteSystem `json:"remote,omitempty"`
	Filters    []filterInput          `json:"filters,omitempty"`
	PIDs       []int                  `json:"pids,omitempty"`
	ImageNames []string               `json:"image_names,omitempty"`
	Tree       bool                   `json:"tree"`
	Force      bool                   `json:"force"`
}

func (req taskKillRequest) options() (taskkill.Options, error) {
	opts := taskkill.Options{Remote: req.Remote, Tree: req.Tree, Force: req.Force}
	for _, in := range req.Filters {
		kind, err := taskkill.ParseFilterKind(in.Name)
		if err != nil {
			return taskkill.Options{}, err
		}
		f, err := taskkill.NewFilter(kind, in.Operator, in.Value)
		if err != nil {
			return taskkill.Options{}, err
		}
		opts.Filters = append(opts.Filters, f)
	}
	for _, pid := range req.PIDs {
		opts.PIDs = append(opts.PIDs, taskkill.ProcessID(pid))
	}
	for _, image := range req.ImageNames {
		opts.ImageNames = append(opts.ImageNames, taskkill.ImageName(image))
	}
	return opts, nil
}

type TaskKillHandler struct {
	taskkill    *taskkill.Service
	userService *auth.UserService
}

func NewTaskKillHandler(taskkillService *taskkill.Service, userService *auth.UserService) *TaskKillHandler {
	return &TaskKillHandler{
		taskkill:    taskkillService,
		userService: userService,
	}
}

func (h *TaskKillHandler) Kill(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	var req taskKillRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	opts, err := req.options()
	if err != nil {
		writeError(w, err)
		return
	}
	command, err := taskkill.BuildCommand(redactPassword(opts))
	if err != nil {
		writeError(w, err)
		return
	}

	output, err := h.taskkill.Kill(r.Context(), opts)
	if err != nil {
		log.Printf("taskkill failed: %v", err)
		audit(h.userService, &user.ID, "taskkill_failed", command, r)
		writeJSON(w, statusFor(err), map[string]string{
			"error":   err.Error(),
			"command": command,
			"output":  output,
		})
		return
	}

	audit(h.userService, &user.ID, "taskkill", command, r)
	writeJSON(w, http.StatusOK, map[string]string{
		"command": command,
		"output":  output,
	})
}

// redactPassword keeps /P in the rendered command but drops its value.
func redactPassword(opts taskkill.Options) taskkill.Options {
	if opts.Remote == nil || opts.Remote.User == nil || opts.Remote.User.Password == nil {
		return opts
	}
	masked := "****"
	user := *opts.Remote.User
	user.Password = &masked
	remote := *opts.Remote
	remote.User = &user
	opts.Remote = &remote
	return opts
}
