package main

import (
	"log"

	_ "github.com/meeladheeraj/todolist-Apis/docs"
	"github.com/meeladheeraj/todolist-Apis/internal/config"
	"github.com/meeladheeraj/todolist-Apis/internal/server"
)

// @title           Task Board API
// @version         1.0
// @description     Multi-tenant task board API: projects, statuses, cards, tags, comments and activity log.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("Server initialization failed: %v", err)
	}

	s.Run()
}
