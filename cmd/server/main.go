package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"wincmd/internal/auth"
	"wincmd/internal/config"
	"wincmd/internal/database"
	"wincmd/internal/handlers"
	"wincmd/internal/netstat"
	"wincmd/internal/shell"
	"wincmd/internal/taskkill"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.New(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize services
	userService := auth.NewUserService(db)
	sessionManager := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionMaxAge, cfg.SecureCookies)
	runner := shell.WithTimeout(shell.NewCommandRunner(cfg.Shell), cfg.CommandTimeout)
	netstatService := netstat.NewService(runner)
	taskkillService := taskkill.NewService(runner)

	// Ensure default admin user exists
	if err := userService.EnsureDefaultAdmin(cfg.DefaultAdmin, cfg.DefaultPassword); err != nil {
		log.Printf("Warning: Failed to create default admin: %v", err)
	}

	r := handlers.NewRouter(handlers.Dependencies{
		Sessions: sessionManager,
		Users:    userService,
		Netstat:  netstatService,
		TaskKill: taskkillService,
	})

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Starting wincmd API on %s", addr)
	log.Printf("Command timeout: %v", cfg.CommandTimeout)

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down...")
		db.Close()
		os.Exit(0)
	}()

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
