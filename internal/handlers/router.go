package handlers

import (
	"net/http"

	"wincmd/internal/auth"
	"wincmd/internal/middleware"
	"wincmd/internal/netstat"
	"wincmd/internal/taskkill"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type Dependencies struct {
	Sessions     *auth.SessionManager
	Users        *auth.UserService
	Netstat      *netstat.Service
	TaskKill     *taskkill.Service
	ProcessNamer ProcessNamer
}

func NewRouter(deps Dependencies) http.Handler {
	authHandler := NewAuthHandler(deps.Sessions, deps.Users)
	netstatHandler := NewNetstatHandler(deps.Netstat)
	portsHandler := NewPortsHandler(deps.Netstat, deps.ProcessNamer)
	taskKillHandler := NewTaskKillHandler(deps.TaskKill, deps.Users)
	usersHandler := NewUsersHandler(deps.Users)

	authMiddleware := middleware.NewAuthMiddleware(deps.Sessions, deps.Users)

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)

	r.Post("/login", authHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)

		r.Post("/logout", authHandler.Logout)
		r.Get("/api/me", authHandler.Me)
		r.Post("/api/password", usersHandler.ChangePassword)

		r.Route("/api/netstat", func(r chi.Router) {
			r.Get("/statistics", netstatHandler.Statistics)
			r.Get("/routes", netstatHandler.Routes)
			r.Get("/routes/ipv4", netstatHandler.IPv4Routes)
			r.Get("/routes/ipv6", netstatHandler.IPv6Routes)
			r.Get("/interfaces", netstatHandler.Interfaces)
			r.Get("/connections", netstatHandler.Connections)
			r.Get("/ethernet", netstatHandler.Ethernet)
		})

		r.Route("/api/ports", func(r chi.Router) {
			r.Get("/busy", portsHandler.Busy)
			r.Get("/free", portsHandler.Free)
			r.Get("/minimum", portsHandler.Minimum)
			r.Get("/processes", portsHandler.Processes)
			r.Get("/processes/{pid}", portsHandler.Process)
		})

		// Admin-only routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAdmin)
			r.Post("/api/taskkill", taskKillHandler.Kill)
			r.Get("/api/users", usersHandler.List)
			r.Post("/api/users", usersHandler.Create)
			r.Delete("/api/users/{id}", usersHandler.Delete)
			r.Get("/api/audit", usersHandler.AuditLogs)
		})
	})

	return r
}
